package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/appoverrides/pkg/override"
)

// overridesDir is the diskv bucket holding one file per application.
const overridesDir = "overrides"

// Sink is the durable keyed map beneath the override store.
type Sink interface {
	LoadAll(ctx context.Context) ([]override.Entry, error)
	Write(e override.Entry) error
	Erase(appID string) error
}

// Watcher is implemented by sinks that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// DiskSink is a Sink backed by diskv.
type DiskSink struct {
	d        *diskv.Diskv
	basePath string
	// Diagnostics receives warnings about rows that could not be read.
	Diagnostics io.Writer
}

// Load creates a DiskSink rooted at cfg.BasePath(). When cfg is nil the
// configuration is read with LoadConfig.
func Load(cfg Config) (*DiskSink, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &DiskSink{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath:    basePath,
		Diagnostics: os.Stderr,
	}, nil
}

// BasePath is the directory the sink writes into.
func (s *DiskSink) BasePath() string {
	return s.basePath
}

func (s *DiskSink) warnf(format string, args ...any) {
	if s.Diagnostics == nil {
		return
	}
	fmt.Fprintf(s.Diagnostics, "store: "+format+"\n", args...)
}

func (s *DiskSink) read(key string) (override.Entry, error) {
	val, err := s.d.Read(key)
	if err != nil {
		return override.Entry{}, err
	}
	var e override.Entry
	if err := json.Unmarshal(val, &e); err != nil {
		return override.Entry{}, err
	}
	if e.AppID == "" {
		e.AppID = fromKey(key)
	}
	return e, nil
}

// LoadAll reads every stored row. Rows that fail to decode are skipped.
func (s *DiskSink) LoadAll(ctx context.Context) ([]override.Entry, error) {
	all := make([]override.Entry, 0)
	seen := make(map[string]struct{})
	for key := range s.d.Keys(ctx.Done()) {
		e, err := s.read(key)
		if err != nil {
			s.warnf("%s: %s", key, err)
			continue
		}
		if _, dup := seen[e.AppID]; dup {
			s.warnf("%s: duplicate row for %q ignored", key, e.AppID)
			continue
		}
		seen[e.AppID] = struct{}{}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AppID < all[j].AppID })
	return all, nil
}

func (s *DiskSink) Write(e override.Entry) error {
	if e.AppID == "" {
		return ErrInvalidEntry
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.d.Write(toKey(e.AppID), data)
}

// Erase removes the row for appID. A missing row is not an error.
func (s *DiskSink) Erase(appID string) error {
	err := s.d.Erase(toKey(appID))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{overridesDir},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

// toKey encodes appID so any package name is a safe file name.
func toKey(appID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(appID))
}

func fromKey(key string) string {
	b, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return ""
	}
	return string(b)
}

// pathToAppID maps a file path inside the sink back to an application id.
func (s *DiskSink) pathToAppID(path string) string {
	rel, err := filepath.Rel(filepath.Join(s.basePath, overridesDir), path)
	if err != nil || rel == "." || filepath.Dir(rel) != "." {
		return ""
	}
	return fromKey(filepath.Base(rel))
}
