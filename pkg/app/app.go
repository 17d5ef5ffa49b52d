package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/appoverrides/pkg/apps"
	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/overview"
	"tableflip.dev/appoverrides/pkg/session"
	"tableflip.dev/appoverrides/pkg/setting"
	"tableflip.dev/appoverrides/pkg/store"
)

// Service provides high-level operations over overrides and installed apps.
// It wraps the store and app provider so UIs and CLIs can share logic.
type Service struct {
	Store    *store.Store
	Apps     apps.Provider
	Defaults override.Defaults
}

var (
	errNoStore = errors.New("app: no store configured")
	// ErrUnknownApp is returned when an app is not installed.
	ErrUnknownApp = errors.New("app: unknown app")
)

func (s *Service) installed(ctx context.Context) ([]apps.App, error) {
	if s.Apps == nil {
		return nil, nil
	}
	list, err := s.Apps.ListInstalledApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: list installed apps: %w", err)
	}
	return list, nil
}

// Overview lists existing overrides and the apps that can still get one.
func (s *Service) Overview(ctx context.Context) (overview.Overview, error) {
	if s.Store == nil {
		return overview.Overview{}, errNoStore
	}
	installed, err := s.installed(ctx)
	if err != nil {
		return overview.Overview{}, err
	}
	return overview.BuildOverview(s.Store.All(), installed, s.Defaults), nil
}

// Candidates lists installed apps without an override.
func (s *Service) Candidates(ctx context.Context) ([]apps.App, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	installed, err := s.installed(ctx)
	if err != nil {
		return nil, err
	}
	return overview.ResolveCandidates(installed, s.Store), nil
}

// Lookup returns installed metadata for appID.
func (s *Service) Lookup(ctx context.Context, appID string) (apps.App, bool, error) {
	installed, err := s.installed(ctx)
	if err != nil {
		return apps.App{}, false, err
	}
	a, ok := apps.Index(installed)[appID]
	return a, ok, nil
}

// Edit opens an edit session for appID. An empty appID starts a new override
// whose app is chosen with SelectApp.
func (s *Service) Edit(appID string, opts ...session.Option) (*session.Session, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	return session.Open(s.Store, appID, opts...), nil
}

// Apply sets the given fields on appID and saves. It returns the working
// entry and whether anything was stored.
func (s *Service) Apply(appID string, values map[setting.Field]string) (override.Entry, bool, error) {
	if appID == "" {
		return override.Entry{}, false, session.ErrNoApp
	}
	sess, err := s.Edit(appID)
	if err != nil {
		return override.Entry{}, false, err
	}
	return commit(sess, values)
}

// Add creates an override for an installed app that has none yet.
func (s *Service) Add(ctx context.Context, appID string, values map[setting.Field]string) (override.Entry, bool, error) {
	_, ok, err := s.Lookup(ctx, appID)
	if err != nil {
		return override.Entry{}, false, err
	}
	if !ok {
		return override.Entry{}, false, fmt.Errorf("%w: %s is not installed", ErrUnknownApp, appID)
	}
	sess, err := s.Edit("")
	if err != nil {
		return override.Entry{}, false, err
	}
	if err := sess.SelectApp(appID); err != nil {
		sess.Cancel()
		return override.Entry{}, false, err
	}
	return commit(sess, values)
}

// commit applies values in field order and saves when the working copy
// differs from what is stored. The session is always closed on return.
func commit(sess *session.Session, values map[setting.Field]string) (override.Entry, bool, error) {
	fields := make([]setting.Field, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	for _, f := range fields {
		if err := sess.SetField(f, values[f]); err != nil {
			sess.Cancel()
			return override.Entry{}, false, err
		}
	}

	working := sess.Working()
	if err := sess.Save(); err != nil {
		sess.Cancel()
		if errors.Is(err, session.ErrNothingToSave) {
			return working, false, nil
		}
		return override.Entry{}, false, err
	}
	return working, true, nil
}

// Delete removes the override for appID through a confirmed delete. It
// reports false when there was nothing to delete.
func (s *Service) Delete(appID string) (bool, error) {
	sess, err := s.Edit(appID)
	if err != nil {
		return false, err
	}
	if err := sess.RequestDelete(); err != nil {
		sess.Cancel()
		if errors.Is(err, session.ErrNotDeletable) {
			return false, nil
		}
		return false, err
	}
	if err := sess.ConfirmDelete(); err != nil {
		sess.Cancel()
		return false, err
	}
	return true, nil
}

// Effective resolves appID against the global defaults.
func (s *Service) Effective(appID string) (override.Effective, error) {
	if s.Store == nil {
		return override.Effective{}, errNoStore
	}
	e, ok := s.Store.Get(appID)
	return override.ResolveApp(s.Defaults, appID, e, ok), nil
}

// Watch subscribes to store change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	return s.Store.Watch(ctx)
}
