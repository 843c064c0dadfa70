package session

import "errors"

// Local validation errors. These are resolved at the caller, never sent to
// the backend, and never leave session state partially mutated.
var (
	// ErrIndexOutOfRange is returned by index-based operations given an
	// exercise or set index outside the current lists.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrDuplicateExercise is returned when an exercise id is added to a
	// session that already holds it. Extra sets belong on the existing
	// entry, not on a second copy.
	ErrDuplicateExercise = errors.New("exercise already in session")

	// ErrInvalidTemplateName is returned by template capture when the name
	// is empty or whitespace.
	ErrInvalidTemplateName = errors.New("template name must not be empty")

	// ErrNothingToSave is returned by finish when no set in the session is
	// completed. The session is kept so the user can complete one and retry.
	ErrNothingToSave = errors.New("no completed sets to save")

	// ErrSessionActive is returned by start while a session exists; it must
	// be finished or discarded first.
	ErrSessionActive = errors.New("a session is already active")

	// ErrNoActiveSession is returned by operations that need a session when
	// none has been started.
	ErrNoActiveSession = errors.New("no active session")
)
