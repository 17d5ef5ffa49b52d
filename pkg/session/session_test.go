package session

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/store"
)

func openStore(t *testing.T, entries ...override.Entry) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), store.NewMemorySink(entries...))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

type brokenStore struct {
	*store.Store
}

var errOffline = errors.New("offline")

func (b brokenStore) Put(override.Entry) error { return errOffline }

func (b brokenStore) Delete(string) error { return errOffline }

func TestNewOverrideScenario(t *testing.T) {
	st := openStore(t)

	s := Open(st, "")
	if !s.IsNew() {
		t.Fatal("expected a new session")
	}
	if !s.Working().IsEmpty() {
		t.Fatalf("expected all NoChange working copy, got %+v", s.Working())
	}
	if s.HasUnsavedChanges() {
		t.Fatal("untouched new session should not be dirty")
	}
	if err := s.Save(); !errors.Is(err, ErrNoApp) {
		t.Fatalf("expected ErrNoApp, got %v", err)
	}

	if err := s.SelectApp("com.example.racer"); err != nil {
		t.Fatalf("select app: %v", err)
	}
	if err := s.SetField(setting.FieldControllerStyle, "xbox"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	if !s.HasUnsavedChanges() {
		t.Fatal("expected dirty session")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.State() != Closed {
		t.Fatalf("expected closed, got %s", s.State())
	}

	got, ok := st.Get("com.example.racer")
	want := override.Entry{AppID: "com.example.racer", ControllerStyle: setting.ControllerXbox, L2R2Style: setting.L2R2NoChange}
	if !ok || !got.Equal(want) {
		t.Fatalf("expected %+v, got %+v (ok=%v)", want, got, ok)
	}
}

func TestDeleteScenario(t *testing.T) {
	st := openStore(t, override.Entry{AppID: "A", ControllerStyle: setting.ControllerOdin})

	s := Open(st, "A")
	if s.IsNew() {
		t.Fatal("expected existing session")
	}
	if err := s.RequestDelete(); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if s.State() != ConfirmingDelete || !s.Snapshot().ShowDeleteConfirm {
		t.Fatalf("expected confirming delete, got %s", s.State())
	}
	if err := s.DismissDelete(); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if s.State() != Editing {
		t.Fatalf("expected editing, got %s", s.State())
	}
	if _, ok := st.Get("A"); !ok {
		t.Fatal("dismiss must not touch the store")
	}

	if err := s.RequestDelete(); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if err := s.ConfirmDelete(); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}
	if _, ok := st.Get("A"); ok {
		t.Fatal("expected A to be deleted")
	}
	if snap := s.Snapshot(); !snap.NavigateBack || snap.State != Closed {
		t.Fatalf("expected navigate back, got %+v", snap)
	}
}

func TestDirtyDetection(t *testing.T) {
	st := openStore(t, override.Entry{AppID: "A", ControllerStyle: setting.ControllerOdin, L2R2Style: setting.L2R2Both})
	s := Open(st, "A")

	if s.HasUnsavedChanges() {
		t.Fatal("freshly opened session should be clean")
	}
	if err := s.SetField(setting.FieldL2R2Style, "digital"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !s.HasUnsavedChanges() {
		t.Fatal("changed value should be dirty")
	}
	if err := s.SetField(setting.FieldL2R2Style, "both"); err != nil {
		t.Fatalf("set back: %v", err)
	}
	if s.HasUnsavedChanges() {
		t.Fatal("restored value should be clean")
	}
	if err := s.Save(); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}
	if s.State() != Editing {
		t.Fatalf("expected to stay editing, got %s", s.State())
	}
}

func TestSetFieldRejectsUnknownKey(t *testing.T) {
	s := Open(openStore(t), "A")
	if err := s.SetField(setting.FieldControllerStyle, "sixaxis"); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	if s.HasUnsavedChanges() {
		t.Fatal("rejected value must not change the working copy")
	}
}

func TestSaveCommitsWorkingCopy(t *testing.T) {
	st := openStore(t, override.Entry{AppID: "A", ControllerStyle: setting.ControllerOdin})
	s := Open(st, "A")
	_ = s.SetField(setting.FieldControllerStyle, "disconnect")
	_ = s.SetField(setting.FieldL2R2Style, "analog")
	want := s.Working()
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := st.Get("A")
	if !got.Equal(want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestCancelLeavesStoreUnchanged(t *testing.T) {
	initial := override.Entry{AppID: "A", ControllerStyle: setting.ControllerXbox}
	st := openStore(t, initial)
	before := st.All()

	s := Open(st, "A")
	_ = s.SetField(setting.FieldControllerStyle, "odin")
	_ = s.SetField(setting.FieldL2R2Style, "digital")
	s.Cancel()

	after := st.All()
	if len(before) != len(after) || !before[0].Equal(after[0]) {
		t.Fatalf("cancel changed the store: %v -> %v", before, after)
	}

	// Cancel is also available while confirming a delete.
	s = Open(st, "A")
	_ = s.RequestDelete()
	s.Cancel()
	if _, ok := st.Get("A"); !ok {
		t.Fatal("cancel during confirm must not delete")
	}
}

func TestStoreFailureKeepsState(t *testing.T) {
	st := brokenStore{Store: openStore(t, override.Entry{AppID: "A", ControllerStyle: setting.ControllerOdin})}

	s := Open(st, "A")
	_ = s.SetField(setting.FieldControllerStyle, "xbox")
	if err := s.Save(); !errors.Is(err, errOffline) {
		t.Fatalf("expected store error, got %v", err)
	}
	if s.State() != Editing || !s.HasUnsavedChanges() {
		t.Fatalf("expected dirty editing session after failed save, got %s", s.State())
	}

	_ = s.RequestDelete()
	if err := s.ConfirmDelete(); !errors.Is(err, errOffline) {
		t.Fatalf("expected store error, got %v", err)
	}
	if s.State() != ConfirmingDelete {
		t.Fatalf("expected to stay confirming, got %s", s.State())
	}
}

func TestInvalidTransitions(t *testing.T) {
	st := openStore(t, override.Entry{AppID: "A"})

	fresh := Open(st, "B")
	if err := fresh.RequestDelete(); !errors.Is(err, ErrNotDeletable) {
		t.Fatalf("expected ErrNotDeletable, got %v", err)
	}
	if err := fresh.SelectApp("C"); !errors.Is(err, ErrAppFixed) {
		t.Fatalf("expected ErrAppFixed, got %v", err)
	}

	s := Open(st, "A")
	if err := s.DismissDelete(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := s.ConfirmDelete(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	_ = s.RequestDelete()
	if err := s.SetField(setting.FieldControllerStyle, "xbox"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := s.Save(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	picker := Open(st, "")
	if err := picker.SelectApp("A"); !errors.Is(err, ErrAlreadyOverridden) {
		t.Fatalf("expected ErrAlreadyOverridden, got %v", err)
	}
}

func TestClosedSessionPanics(t *testing.T) {
	s := Open(openStore(t), "A")
	s.Cancel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on closed session")
		}
	}()
	_ = s.SetField(setting.FieldControllerStyle, "xbox")
}

func TestObserverReceivesSnapshots(t *testing.T) {
	st := openStore(t, override.Entry{AppID: "A", ControllerStyle: setting.ControllerOdin})
	var snaps []Snapshot
	s := Open(st, "A", WithObserver(func(snap Snapshot) { snaps = append(snaps, snap) }))

	_ = s.SetField(setting.FieldControllerStyle, "xbox")
	_ = s.Save()

	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	if snaps[0].HasUnsavedChanges || snaps[0].Original == nil {
		t.Fatalf("unexpected opening snapshot %+v", snaps[0])
	}
	if !snaps[1].HasUnsavedChanges {
		t.Fatal("expected dirty snapshot after edit")
	}
	if !snaps[2].NavigateBack {
		t.Fatal("expected navigate back after save")
	}

	// Snapshots are copies.
	snaps[0].Original.ControllerStyle = setting.ControllerDisconnect
	if s.Snapshot().Original.ControllerStyle != setting.ControllerXbox {
		t.Fatal("snapshot mutation leaked into the session")
	}
}
