// Package apps enumerates the applications installed on the device.
package apps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// App is the display metadata of one installed application.
type App struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Icon        string `json:"icon,omitempty"`
}

// Name returns the display name, falling back to the id.
func (a App) Name() string {
	if strings.TrimSpace(a.DisplayName) == "" {
		return a.ID
	}
	return a.DisplayName
}

// Provider lists installed applications. The result reflects the installed
// set at call time and may change between calls.
type Provider interface {
	ListInstalledApps(ctx context.Context) ([]App, error)
}

// StaticProvider serves a fixed list.
type StaticProvider []App

func (p StaticProvider) ListInstalledApps(_ context.Context) ([]App, error) {
	return dedupe(p), nil
}

// ManifestProvider reads a JSON manifest of installed apps. The file is read
// again on every call.
//
//	{"apps": [{"id": "com.example.racer", "name": "Racer", "icon": "racer.png"}]}
//
// A bare JSON array of apps is accepted too, and a .yaml or .yml path is read
// as YAML with the same keys. A missing file means nothing is installed.
type ManifestProvider struct {
	Path string
}

type manifest struct {
	Apps []App `json:"apps"`
}

func (p ManifestProvider) ListInstalledApps(ctx context.Context) ([]App, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Path == "" {
		return nil, errors.New("apps: manifest path unknown")
	}
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("apps: read manifest: %w", err)
	}
	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".yaml", ".yml":
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("apps: decode %s: %w", p.Path, err)
		}
	}
	list, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("apps: decode %s: %w", p.Path, err)
	}
	return dedupe(list), nil
}

func decode(data []byte) ([]App, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []App
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m.Apps, nil
}

// dedupe drops empty ids and keeps the first app for each id.
func dedupe(list []App) []App {
	out := make([]App, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, a := range list {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			continue
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Index maps apps by id.
func Index(list []App) map[string]App {
	idx := make(map[string]App, len(list))
	for _, a := range list {
		if _, ok := idx[a.ID]; ok {
			continue
		}
		idx[a.ID] = a
	}
	return idx
}
