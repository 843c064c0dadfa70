package session

import (
	"fmt"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// SetField names the editable value fields of a set.
type SetField int

const (
	SetWeight SetField = iota
	SetReps
	SetDuration
	SetDistance
)

// RemovePrompt is the confirmation token returned when removing an exercise
// that already has completed sets. Confirming it performs the removal.
type RemovePrompt struct {
	Index        int
	ExerciseName string
}

// Tracker is the sole mutable owner of the active workout session. All
// mutations go through its methods and run synchronously on the caller's
// goroutine; failed operations leave the session untouched.
type Tracker struct {
	session *Session
	now     func() time.Time

	// onSetCompleted fires when a set transitions to completed. The rest
	// timer subscribes to it.
	onSetCompleted func()
}

// NewTracker creates a Tracker with no active session.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// SetClock overrides the time source, for tests.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// OnSetCompleted registers the completion listener. Only one listener is
// kept; the session screen wires the rest timer here.
func (t *Tracker) OnSetCompleted(fn func()) { t.onSetCompleted = fn }

// Active reports whether a session is in progress.
func (t *Tracker) Active() bool { return t.session != nil }

// Session returns the active session, or nil.
func (t *Tracker) Session() *Session { return t.session }

// Start creates a new empty session. An empty name defaults to
// "Training <date>". Fails if a session is already active.
func (t *Tracker) Start(name string) (*Session, error) {
	return t.StartWith(name, nil)
}

// StartWith creates a session pre-populated with exercises, as produced by
// template resolution. The exercise list is adopted as-is after renumbering.
func (t *Tracker) StartWith(name string, exercises []Exercise) (*Session, error) {
	if t.session != nil {
		return nil, ErrSessionActive
	}
	now := t.now()
	if name == "" {
		name = fmt.Sprintf("Training %s", now.Format("02.01.2006"))
	}
	s := &Session{
		Name:      name,
		StartTime: now.Truncate(time.Second),
		Exercises: exercises,
	}
	renumberExercises(s.Exercises)
	for i := range s.Exercises {
		renumberSets(s.Exercises[i].Sets)
	}
	t.session = s
	return s, nil
}

// AddExercise appends an exercise to the session, snapshotting the catalog
// fields the screen needs. seed becomes the initial set list, all marked
// not completed. A session holds at most one entry per exercise id.
func (t *Tracker) AddExercise(def models.ExerciseDefinition, seed []SetEntry) error {
	if t.session == nil {
		return ErrNoActiveSession
	}
	for i := range t.session.Exercises {
		if t.session.Exercises[i].ExerciseID == def.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateExercise, def.Name)
		}
	}
	sets := make([]SetEntry, len(seed))
	copy(sets, seed)
	for i := range sets {
		sets[i].SetNumber = i + 1
		sets[i].Completed = false
	}
	t.session.Exercises = append(t.session.Exercises, Exercise{
		ExerciseID:    def.ID,
		ExerciseName:  def.Name,
		ExerciseType:  def.ExerciseType,
		EquipmentType: def.EquipmentType,
		WeightPerSide: def.WeightPerSide,
		OrderIndex:    len(t.session.Exercises),
		Sets:          sets,
	})
	return nil
}

// RequestRemoveExercise removes the exercise at index immediately when it
// has no completed sets. When completed sets exist it returns a prompt
// instead; the removal happens only via ConfirmRemoveExercise.
func (t *Tracker) RequestRemoveExercise(index int) (*RemovePrompt, error) {
	if t.session == nil {
		return nil, ErrNoActiveSession
	}
	if index < 0 || index >= len(t.session.Exercises) {
		return nil, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, index)
	}
	ex := &t.session.Exercises[index]
	if ex.CompletedSets() > 0 {
		return &RemovePrompt{Index: index, ExerciseName: ex.ExerciseName}, nil
	}
	t.removeExercise(index)
	return nil, nil
}

// ConfirmRemoveExercise performs the removal a prompt warned about.
func (t *Tracker) ConfirmRemoveExercise(p *RemovePrompt) error {
	if t.session == nil {
		return ErrNoActiveSession
	}
	if p == nil || p.Index < 0 || p.Index >= len(t.session.Exercises) {
		return fmt.Errorf("%w: remove confirmation", ErrIndexOutOfRange)
	}
	t.removeExercise(p.Index)
	return nil
}

func (t *Tracker) removeExercise(index int) {
	s := t.session
	s.Exercises = append(s.Exercises[:index], s.Exercises[index+1:]...)
	renumberExercises(s.Exercises)
}

// MoveExercise relocates one exercise within the ordered list, keeping the
// relative order of the others. Equal indices are a no-op.
func (t *Tracker) MoveExercise(from, to int) error {
	if t.session == nil {
		return ErrNoActiveSession
	}
	n := len(t.session.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d", ErrIndexOutOfRange, from, to)
	}
	if from == to {
		return nil
	}
	exs := t.session.Exercises
	moved := exs[from]
	exs = append(exs[:from], exs[from+1:]...)
	exs = append(exs[:to], append([]Exercise{moved}, exs[to:]...)...)
	t.session.Exercises = exs
	renumberExercises(t.session.Exercises)
	return nil
}

// AddEmptySet appends a set with all value fields unset.
func (t *Tracker) AddEmptySet(exercise int) error {
	ex, err := t.exercise(exercise)
	if err != nil {
		return err
	}
	ex.Sets = append(ex.Sets, SetEntry{SetNumber: len(ex.Sets) + 1})
	return nil
}

// RemoveLastUncompletedSet removes the highest-numbered set that is not
// completed and renumbers the rest. Completed sets are never implicitly
// removed; when every set is completed it reports false.
func (t *Tracker) RemoveLastUncompletedSet(exercise int) (bool, error) {
	ex, err := t.exercise(exercise)
	if err != nil {
		return false, err
	}
	for i := len(ex.Sets) - 1; i >= 0; i-- {
		if !ex.Sets[i].Completed {
			ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
			renumberSets(ex.Sets)
			return true, nil
		}
	}
	return false, nil
}

// UpdateSet replaces one value field with raw user input. Invalid numeric
// text is tolerated as a transient edit state until the set is completed.
func (t *Tracker) UpdateSet(exercise, set int, field SetField, raw string) error {
	entry, err := t.set(exercise, set)
	if err != nil {
		return err
	}
	f := FieldFromString(raw)
	switch field {
	case SetWeight:
		entry.Weight = f
	case SetReps:
		entry.Reps = f
	case SetDuration:
		entry.DurationSeconds = f
	case SetDistance:
		entry.DistanceKm = f
	}
	return nil
}

// ToggleSetCompleted flips the completed flag and returns the new value. On
// the transition to completed, an empty strength weight is coerced to 0 —
// the bodyweight marker — and the completion event fires. Un-completing
// does not revert the coercion and does not cancel a running timer.
func (t *Tracker) ToggleSetCompleted(exercise, set int) (bool, error) {
	ex, err := t.exercise(exercise)
	if err != nil {
		return false, err
	}
	if set < 0 || set >= len(ex.Sets) {
		return false, fmt.Errorf("%w: set %d", ErrIndexOutOfRange, set)
	}
	entry := &ex.Sets[set]
	entry.Completed = !entry.Completed
	if entry.Completed {
		if ex.ExerciseType == models.ExerciseStrength && entry.Weight.IsEmpty() {
			entry.Weight = FieldOf(0)
		}
		if t.onSetCompleted != nil {
			t.onSetCompleted()
		}
	}
	return entry.Completed, nil
}

// UpdateExerciseComment replaces the free-text note for an exercise.
func (t *Tracker) UpdateExerciseComment(exercise int, text string) error {
	ex, err := t.exercise(exercise)
	if err != nil {
		return err
	}
	ex.Comment = text
	return nil
}

// Discard drops the session and all entered data. The caller is responsible
// for the explicit user confirmation; this is irreversible.
func (t *Tracker) Discard() {
	t.session = nil
}

func (t *Tracker) exercise(index int) (*Exercise, error) {
	if t.session == nil {
		return nil, ErrNoActiveSession
	}
	if index < 0 || index >= len(t.session.Exercises) {
		return nil, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, index)
	}
	return &t.session.Exercises[index], nil
}

func (t *Tracker) set(exercise, set int) (*SetEntry, error) {
	ex, err := t.exercise(exercise)
	if err != nil {
		return nil, err
	}
	if set < 0 || set >= len(ex.Sets) {
		return nil, fmt.Errorf("%w: set %d", ErrIndexOutOfRange, set)
	}
	return &ex.Sets[set], nil
}

func renumberExercises(exs []Exercise) {
	for i := range exs {
		exs[i].OrderIndex = i
	}
}

func renumberSets(sets []SetEntry) {
	for i := range sets {
		sets[i].SetNumber = i + 1
	}
}
