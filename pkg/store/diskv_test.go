package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/setting"
)

func TestDiskSinkRoundTrip(t *testing.T) {
	base := t.TempDir()
	sink, err := Load(StaticConfig{Base: base})
	if err != nil {
		t.Fatalf("load sink: %v", err)
	}

	want := override.Entry{AppID: "com.example.racer", ControllerStyle: setting.ControllerXbox, L2R2Style: setting.L2R2Digital}
	if err := sink.Write(want); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Write(override.Entry{AppID: "org.emu/with:odd*chars"}); err != nil {
		t.Fatalf("write odd id: %v", err)
	}

	// A fresh sink must see what the first one persisted.
	again, err := Load(StaticConfig{Base: base})
	if err != nil {
		t.Fatalf("reload sink: %v", err)
	}
	all, err := again.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if !all[0].Equal(want) {
		t.Fatalf("unexpected first row %+v", all[0])
	}
	if all[1].AppID != "org.emu/with:odd*chars" || !all[1].IsEmpty() {
		t.Fatalf("unexpected second row %+v", all[1])
	}
}

func TestDiskSinkEraseMissingIsNoop(t *testing.T) {
	sink, err := Load(StaticConfig{Base: t.TempDir()})
	if err != nil {
		t.Fatalf("load sink: %v", err)
	}
	if err := sink.Erase("missing"); err != nil {
		t.Fatalf("erase missing: %v", err)
	}
	if err := sink.Write(override.Entry{AppID: "a"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Erase("a"); err != nil {
		t.Fatalf("erase: %v", err)
	}
	all, err := sink.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty sink, got %v", all)
	}
}

func TestDiskSinkRecoversMalformedRows(t *testing.T) {
	base := t.TempDir()
	sink, err := Load(StaticConfig{Base: base})
	if err != nil {
		t.Fatalf("load sink: %v", err)
	}
	var diag bytes.Buffer
	sink.Diagnostics = &diag

	dir := filepath.Join(base, overridesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	unknownKey := []byte(`{"app_id":"com.example.old","controller_style":"sixaxis","l2r2_style":"both"}`)
	if err := os.WriteFile(filepath.Join(dir, toKey("com.example.old")), unknownKey, 0o644); err != nil {
		t.Fatalf("write row: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, toKey("broken")), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write row: %v", err)
	}

	all, err := sink.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected the broken row to be skipped, got %d rows", len(all))
	}
	if all[0].ControllerStyle != setting.ControllerNoChange || all[0].L2R2Style != setting.L2R2Both {
		t.Fatalf("unexpected recovered row %+v", all[0])
	}
	if !strings.Contains(diag.String(), "store: ") {
		t.Fatalf("expected a diagnostic for the broken row, got %q", diag.String())
	}
}

func TestStoreOverDiskSink(t *testing.T) {
	base := t.TempDir()
	sink, err := Load(StaticConfig{Base: base})
	if err != nil {
		t.Fatalf("load sink: %v", err)
	}
	s, err := Open(context.Background(), sink)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(override.Entry{AppID: "a", ControllerStyle: setting.ControllerDisconnect}); err != nil {
		t.Fatalf("put: %v", err)
	}

	reopenedSink, _ := Load(StaticConfig{Base: base})
	reopened, err := Open(context.Background(), reopenedSink)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.Get("a")
	if !ok || got.ControllerStyle != setting.ControllerDisconnect {
		t.Fatalf("expected durable put, got %+v (ok=%v)", got, ok)
	}
}
