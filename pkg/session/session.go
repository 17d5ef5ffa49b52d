// Package session is the editing context for a single application's
// override. A Session keeps a working copy next to the last saved entry and
// moves through Editing, ConfirmingDelete and Closed.
//
// A Session is not safe for concurrent use. Once Closed it must be discarded;
// calling any transition on a closed session panics.
package session

import (
	"errors"
	"fmt"

	"tableflip.dev/appoverrides/pkg/override"
	"tableflip.dev/appoverrides/pkg/setting"
)

var (
	ErrInvalidTransition = errors.New("session: transition not allowed in current state")
	ErrNotDeletable      = errors.New("session: a new override cannot be deleted")
	ErrNothingToSave     = errors.New("session: no unsaved changes")
	ErrNoApp             = errors.New("session: no app selected")
	ErrAlreadyOverridden = errors.New("session: app already has an override")
	ErrAppFixed          = errors.New("session: app cannot be changed for this session")
)

// State of a session.
type State int

const (
	Editing State = iota + 1
	ConfirmingDelete
	Closed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case ConfirmingDelete:
		return "confirming_delete"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Store is the part of the override store a session writes through.
type Store interface {
	Get(appID string) (override.Entry, bool)
	Put(e override.Entry) error
	Delete(appID string) error
}

// Snapshot is a copy of the session state. Original is nil for a new override.
type Snapshot struct {
	AppID             string
	Working           override.Entry
	Original          *override.Entry
	IsNew             bool
	HasUnsavedChanges bool
	ShowDeleteConfirm bool
	NavigateBack      bool
	State             State
}

// Option customises a Session.
type Option func(*Session)

// WithObserver registers fn to receive a snapshot after every transition,
// including the one that opened the session.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Session) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

type Session struct {
	store Store

	state    State
	original *override.Entry
	working  override.Entry
	isNew    bool
	// selectable is true while a brand-new session may still pick its app.
	selectable bool

	observers []func(Snapshot)
}

// Open starts editing appID. When appID has no stored entry, or is empty, the
// session edits a new all-NoChange entry. An empty appID also allows the app
// to be picked later with SelectApp.
func Open(store Store, appID string, opts ...Option) *Session {
	s := &Session{store: store, state: Editing}
	for _, opt := range opts {
		opt(s)
	}

	if appID != "" {
		if e, ok := store.Get(appID); ok {
			orig := e
			s.original = &orig
			s.working = e
			s.notify()
			return s
		}
	}
	s.isNew = true
	s.selectable = appID == ""
	s.working = override.New(appID)
	s.notify()
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// AppID returns the app being edited, empty while none is selected.
func (s *Session) AppID() string {
	return s.working.AppID
}

// Working returns the working copy.
func (s *Session) Working() override.Entry {
	return s.working
}

// IsNew reports whether the app had no entry when the session opened.
func (s *Session) IsNew() bool {
	return s.isNew
}

// HasUnsavedChanges compares the working copy with the last saved entry. A
// new session compares against an all-NoChange entry.
func (s *Session) HasUnsavedChanges() bool {
	return !s.working.Equal(s.baseline())
}

func (s *Session) baseline() override.Entry {
	if s.original != nil {
		return *s.original
	}
	return override.New(s.working.AppID)
}

// Snapshot returns the current state. It may be called on a closed session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		AppID:             s.working.AppID,
		Working:           s.working,
		IsNew:             s.isNew,
		HasUnsavedChanges: s.HasUnsavedChanges(),
		ShowDeleteConfirm: s.state == ConfirmingDelete,
		NavigateBack:      s.state == Closed,
		State:             s.state,
	}
	if s.original != nil {
		orig := *s.original
		snap.Original = &orig
	}
	return snap
}

// SelectApp picks the app for a new session opened without one.
func (s *Session) SelectApp(appID string) error {
	s.mustBeOpen("SelectApp")
	if s.state != Editing {
		return ErrInvalidTransition
	}
	if !s.selectable {
		return ErrAppFixed
	}
	if appID == "" {
		return ErrNoApp
	}
	if _, ok := s.store.Get(appID); ok {
		return fmt.Errorf("%w: %s", ErrAlreadyOverridden, appID)
	}
	s.working.AppID = appID
	s.notify()
	return nil
}

// SetField sets field on the working copy to the value named by key.
func (s *Session) SetField(field setting.Field, key string) error {
	s.mustBeOpen("SetField")
	if s.state != Editing {
		return ErrInvalidTransition
	}
	next, err := s.working.With(field, key)
	if err != nil {
		return err
	}
	s.working = next
	s.notify()
	return nil
}

// RequestDelete asks for confirmation before deleting a stored override.
func (s *Session) RequestDelete() error {
	s.mustBeOpen("RequestDelete")
	if s.state != Editing {
		return ErrInvalidTransition
	}
	if s.isNew {
		return ErrNotDeletable
	}
	s.state = ConfirmingDelete
	s.notify()
	return nil
}

// DismissDelete returns to editing without deleting.
func (s *Session) DismissDelete() error {
	s.mustBeOpen("DismissDelete")
	if s.state != ConfirmingDelete {
		return ErrInvalidTransition
	}
	s.state = Editing
	s.notify()
	return nil
}

// ConfirmDelete removes the override and closes the session. If the store
// fails the session stays in ConfirmingDelete.
func (s *Session) ConfirmDelete() error {
	s.mustBeOpen("ConfirmDelete")
	if s.state != ConfirmingDelete {
		return ErrInvalidTransition
	}
	if err := s.store.Delete(s.original.AppID); err != nil {
		return fmt.Errorf("session: delete %s: %w", s.original.AppID, err)
	}
	s.state = Closed
	s.notify()
	return nil
}

// Save stores the working copy and closes the session. If the store fails
// the session stays in Editing.
func (s *Session) Save() error {
	s.mustBeOpen("Save")
	if s.state != Editing {
		return ErrInvalidTransition
	}
	if s.working.AppID == "" {
		return ErrNoApp
	}
	if !s.HasUnsavedChanges() {
		return ErrNothingToSave
	}
	if err := s.store.Put(s.working); err != nil {
		return fmt.Errorf("session: save %s: %w", s.working.AppID, err)
	}
	saved := s.working
	s.original = &saved
	s.state = Closed
	s.notify()
	return nil
}

// Cancel discards the working copy and closes the session.
func (s *Session) Cancel() {
	s.mustBeOpen("Cancel")
	s.state = Closed
	s.notify()
}

func (s *Session) mustBeOpen(op string) {
	if s.state == Closed {
		panic(fmt.Sprintf("session: %s called on a closed session for %q", op, s.working.AppID))
	}
}

func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}
