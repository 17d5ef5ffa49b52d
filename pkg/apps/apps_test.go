package apps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestProviderRereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	p := ManifestProvider{Path: path}

	got, err := p.ListInstalledApps(context.Background())
	if err != nil {
		t.Fatalf("missing manifest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no apps, got %v", got)
	}

	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}

	write(`{"apps":[{"id":"b","name":"Beta"},{"id":"a","name":"Alpha","icon":"a.png"},{"id":"a","name":"Shadow"}]}`)
	got, err = p.ListInstalledApps(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected duplicates dropped, got %v", got)
	}
	if got[1].DisplayName != "Alpha" || got[1].Icon != "a.png" {
		t.Fatalf("expected first duplicate to win, got %+v", got[1])
	}

	write(`[{"id":"c","name":"Gamma"}]`)
	got, err = p.ListInstalledApps(context.Background())
	if err != nil {
		t.Fatalf("list array: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected the updated manifest, got %v", got)
	}
}

func TestManifestProviderBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := (ManifestProvider{Path: path}).ListInstalledApps(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestStaticProviderAndIndex(t *testing.T) {
	p := StaticProvider{{ID: "a", DisplayName: "Alpha"}, {ID: ""}, {ID: "b"}}
	got, err := p.ListInstalledApps(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected empty id dropped, got %v", got)
	}
	idx := Index(got)
	if idx["b"].Name() != "b" {
		t.Fatalf("expected name to fall back to id, got %q", idx["b"].Name())
	}
	if idx["a"].Name() != "Alpha" {
		t.Fatalf("unexpected name %q", idx["a"].Name())
	}
}

func TestManifestProviderYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	body := `apps:
- id: com.example.racer
  name: Racer
- id: com.example.puzzle
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	got, err := ManifestProvider{Path: path}.ListInstalledApps(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name() != "Racer" || got[1].Name() != "com.example.puzzle" {
		t.Fatalf("unexpected apps: %+v", got)
	}
}
