package marsool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type EditState byte

const (
	Viewing EditState = iota
	Editing
)

var (
	ErrSaveInFlight   = errors.New("save already in flight")
	ErrLoadSuperseded = errors.New("load superseded")
)

// Notifier receives the user-visible outcome of a save. The UI hooks its
// toast layer in here; outside of a UI the LogNotifier is enough.
type Notifier interface {
	SaveSucceeded()

	SaveFailed(err error)
}

type LogNotifier struct{}

func (LogNotifier) SaveSucceeded() {
	logrus.Debugln("Profile saved.")
}

func (LogNotifier) SaveFailed(err error) {
	logrus.WithError(err).Warningln("Profile save failed.")
}

// ProfileEditor holds the authoritative copy of the profile fields under
// edit and mediates between edit actions and a single injected backend.
//
// State machine: Viewing -BeginEdit-> Editing -Save ok-> Viewing,
// Editing -Cancel-> Viewing (drops edits, restores the last loaded or
// saved snapshot), Editing -Save error-> Editing (retry allowed).
type ProfileEditor struct {
	backend  ProfileBackend
	notifier Notifier

	mutex    sync.Mutex
	state    EditState
	fields   ProfileFields
	snapshot ProfileFields
	saving   bool

	// Bumped by every newer load, successful save and cancel. A load
	// completing against an older value is stale and must not apply.
	generation uint64
}

func NewProfileEditor(backend ProfileBackend, notifier Notifier) *ProfileEditor {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ProfileEditor{backend: backend, notifier: notifier}
}

// Load populates the fields from the backend. A Failed result leaves the
// previous fields in place (the page renders stale or default values, no
// user-facing error), but the outcome is returned so the caller can tell
// "no data" from "fetch failed". A load superseded while in flight returns
// ErrLoadSuperseded and applies nothing.
func (e *ProfileEditor) Load(ctx context.Context) LoadResult {
	e.mutex.Lock()
	e.generation++
	generation := e.generation
	e.mutex.Unlock()

	result := e.backend.Load(ctx)

	e.mutex.Lock()
	defer e.mutex.Unlock()
	if generation != e.generation {
		return FailedResult(ErrLoadSuperseded)
	}
	switch result.Status {
	case LoadLoaded:
		e.fields = result.Fields
		e.snapshot = result.Fields
	case LoadEmpty:
		e.fields = ProfileFields{}
		e.snapshot = ProfileFields{}
	case LoadFailed:
		logrus.WithError(result.Err).Warningln("Profile load failed.")
	}
	return result
}

func (e *ProfileEditor) BeginEdit() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.state = Editing
}

// Update mutates one field in memory. No side effects, no validation.
func (e *ProfileEditor) Update(field Field, value string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fields.Set(field, value)
}

// Cancel discards edits by restoring the last loaded or saved snapshot.
// No backend call is made.
func (e *ProfileEditor) Cancel() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fields = e.snapshot
	e.state = Viewing
	e.generation++
}

// Save writes the whole record through the backend. Success transitions to
// Viewing; failure keeps Editing and keeps the typed fields untouched so
// the user can retry. At most one save is in flight at a time.
func (e *ProfileEditor) Save(ctx context.Context) error {
	e.mutex.Lock()
	if e.saving {
		e.mutex.Unlock()
		return ErrSaveInFlight
	}
	e.saving = true
	fields := e.fields
	e.mutex.Unlock()

	err := e.backend.Save(ctx, fields)

	e.mutex.Lock()
	e.saving = false
	if err != nil {
		e.mutex.Unlock()
		e.notifier.SaveFailed(err)
		return fmt.Errorf("backend save: %w", err)
	}
	e.snapshot = fields
	e.state = Viewing
	e.generation++
	e.mutex.Unlock()
	e.notifier.SaveSucceeded()
	return nil
}

func (e *ProfileEditor) State() EditState {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.state
}

func (e *ProfileEditor) Fields() ProfileFields {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.fields
}
