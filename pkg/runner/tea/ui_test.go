package teaui

import (
	"context"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"tableflip.dev/appoverrides/pkg/app"
	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/overview"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/store"
)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newTestModel(t *testing.T, entries ...override.Entry) (Model, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), store.NewMemorySink(entries...))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	svc := &app.Service{
		Store:    st,
		Apps:     apps.StaticProvider{{ID: "racer", DisplayName: "Racer"}, {ID: "puzzle", DisplayName: "Puzzle"}},
		Defaults: override.Defaults{ControllerStyle: setting.ControllerOdin, L2R2Style: setting.L2R2Analog},
	}
	m := New(svc)
	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	m.setOverview(ov)
	return m, st
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.handleKey(k, nil)
		m = next.(Model)
	}
	return m
}

func TestEditAndSave(t *testing.T) {
	m, st := newTestModel(t, override.Entry{AppID: "racer", ControllerStyle: setting.ControllerOdin})

	m = press(t, m, "enter")
	if m.mode != modeEdit || m.edit.snap.AppID != "racer" {
		t.Fatalf("expected editor for racer, got mode %d", m.mode)
	}
	m = press(t, m, "right")
	if !m.edit.snap.HasUnsavedChanges {
		t.Fatal("expected unsaved changes after cycling a value")
	}
	if !strings.Contains(stripANSI(m.View()), "unsaved") {
		t.Fatalf("expected unsaved marker in view:\n%s", m.View())
	}
	m = press(t, m, "s")
	if m.mode != modeList {
		t.Fatalf("expected to return to the list, got mode %d", m.mode)
	}
	e, _ := st.Get("racer")
	if e.ControllerStyle != setting.ControllerXbox {
		t.Fatalf("expected racer saved as xbox, got %q", e.ControllerStyle)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, st := newTestModel(t, override.Entry{AppID: "racer", L2R2Style: setting.L2R2Both})

	m = press(t, m, "enter", "d")
	if !m.edit.snap.ShowDeleteConfirm {
		t.Fatal("expected delete confirmation")
	}
	m = press(t, m, "n")
	if _, ok := st.Get("racer"); !ok || m.mode != modeEdit {
		t.Fatal("dismiss must keep the override and the editor")
	}
	m = press(t, m, "d", "y")
	if _, ok := st.Get("racer"); ok {
		t.Fatal("expected racer deleted")
	}
	if m.mode != modeList {
		t.Fatalf("expected list mode, got %d", m.mode)
	}
}

func TestAddFromCandidates(t *testing.T) {
	m, st := newTestModel(t)

	m = press(t, m, "a")
	if m.mode != modePick {
		t.Fatalf("expected pick mode, got %d", m.mode)
	}
	m = press(t, m, "enter")
	if m.mode != modeEdit || !m.edit.snap.IsNew {
		t.Fatal("expected a new override session")
	}
	appID := m.edit.snap.AppID
	m = press(t, m, "s")
	if !strings.Contains(m.status, "no unsaved changes") {
		t.Fatalf("expected save to be refused for an untouched override, got %q", m.status)
	}
	m = press(t, m, "down", "left", "s")
	e, ok := st.Get(appID)
	if !ok || e.L2R2Style != setting.L2R2Both {
		t.Fatalf("expected %s saved with both, got %+v (ok=%v)", appID, e, ok)
	}
}

func TestCancelLeavesStoreAlone(t *testing.T) {
	m, st := newTestModel(t, override.Entry{AppID: "racer", ControllerStyle: setting.ControllerOdin})
	m = press(t, m, "enter", "right", "right", "esc")
	if m.mode != modeList || m.edit != nil {
		t.Fatal("expected editor closed")
	}
	if e, _ := st.Get("racer"); e.ControllerStyle != setting.ControllerOdin {
		t.Fatalf("cancel changed the store: %+v", e)
	}
}

func TestPickWithoutStoreReportsError(t *testing.T) {
	m := New(&app.Service{Apps: apps.StaticProvider{{ID: "racer", DisplayName: "Racer"}}})
	m.setOverview(overview.BuildOverview(nil, []apps.App{{ID: "racer", DisplayName: "Racer"}}, override.Defaults{}))

	m = press(t, m, "a", "enter")
	if m.edit != nil || m.mode != modePick {
		t.Fatalf("expected to stay in the picker, got mode %d", m.mode)
	}
	if !strings.HasPrefix(m.status, "ERR: ") {
		t.Fatalf("expected an error status, got %q", m.status)
	}
}
