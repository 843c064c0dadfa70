package session

import (
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// SetEntry is one performed or planned unit of work. Value fields stay in
// their edit state until the set is completed; which pair is meaningful
// follows the owning exercise's type.
type SetEntry struct {
	SetNumber       int
	Weight          Field
	Reps            Field
	DurationSeconds Field
	DistanceKm      Field
	Completed       bool
}

// Exercise is one exercise's data within the active session. Catalog fields
// are copied at add-time on purpose: the session must survive catalog edits
// without retroactively changing past entries.
type Exercise struct {
	ExerciseID    int64
	ExerciseName  string
	ExerciseType  models.ExerciseType
	EquipmentType models.EquipmentType
	WeightPerSide bool
	OrderIndex    int
	Sets          []SetEntry
	Comment       string

	// LastComment is the free-text note from the most recent performance,
	// shown as read-only context. It is never copied into Comment.
	LastComment string
}

// CompletedSets counts the sets marked done.
func (e *Exercise) CompletedSets() int {
	n := 0
	for _, s := range e.Sets {
		if s.Completed {
			n++
		}
	}
	return n
}

// Session is the single active in-progress workout.
type Session struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time // zero until finished
	Exercises []Exercise
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}

// Summary is the completion overview of a session.
type Summary struct {
	Exercises     int
	TotalSets     int
	CompletedSets int
}

// Summarize computes the completion overview.
func (s *Session) Summarize() Summary {
	sum := Summary{Exercises: len(s.Exercises)}
	for i := range s.Exercises {
		sum.TotalSets += len(s.Exercises[i].Sets)
		sum.CompletedSets += s.Exercises[i].CompletedSets()
	}
	return sum
}
