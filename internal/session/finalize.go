package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// WorkoutSaver persists a finished workout.
type WorkoutSaver interface {
	SaveWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error)
}

// Finalizer validates the active session, transforms it into the persisted
// wire format and issues the save. The session is cleared only after the
// backend confirms the save: a failed request must never silently discard
// completed work, so the caller can retry or explicitly discard.
type Finalizer struct {
	saver WorkoutSaver
	now   func() time.Time
}

// NewFinalizer creates a Finalizer.
func NewFinalizer(saver WorkoutSaver) *Finalizer {
	return &Finalizer{saver: saver, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (f *Finalizer) SetClock(now func() time.Time) { f.now = now }

// Finish persists the completed portion of the active session. Exercises
// without a single completed set are dropped; within the rest only
// completed sets are sent. When nothing is completed it fails with
// ErrNothingToSave and leaves the session active. On success the session
// and the rest timer are cleared.
func (f *Finalizer) Finish(ctx context.Context, tracker *Tracker, timer *RestTimer, userID int64) (*models.Workout, error) {
	s := tracker.Session()
	if s == nil {
		return nil, ErrNoActiveSession
	}

	req := BuildSaveRequest(s, userID, f.now())
	if len(req.Exercises) == 0 {
		return nil, ErrNothingToSave
	}

	workout, err := f.saver.SaveWorkout(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("saving workout: %w", err)
	}

	tracker.Discard()
	if timer != nil {
		timer.Skip()
	}
	return workout, nil
}

// BuildSaveRequest builds the save-complete payload from a session without
// mutating it. endTime is truncated to the wire convention's second
// resolution.
func BuildSaveRequest(s *Session, userID int64, endTime time.Time) models.WorkoutSaveRequest {
	req := models.WorkoutSaveRequest{
		UserID:    userID,
		Name:      s.Name,
		StartTime: models.NewLocalTime(s.StartTime),
		EndTime:   models.NewLocalTime(endTime),
	}

	for _, ex := range s.Exercises {
		var sets []models.SetData
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			sets = append(sets, models.SetData{
				SetNumber:       set.SetNumber,
				Weight:          set.Weight.Ptr(),
				Reps:            set.Reps.IntPtr(),
				DurationSeconds: set.DurationSeconds.IntPtr(),
				DistanceKm:      set.DistanceKm.Ptr(),
				Completed:       true,
			})
		}
		if len(sets) == 0 {
			continue
		}
		var comment *string
		if ex.Comment != "" {
			c := ex.Comment
			comment = &c
		}
		req.Exercises = append(req.Exercises, models.ExerciseData{
			ExerciseID: ex.ExerciseID,
			OrderIndex: ex.OrderIndex,
			Comment:    comment,
			Sets:       sets,
		})
	}
	return req
}
