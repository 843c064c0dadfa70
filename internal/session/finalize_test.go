package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/google/uuid"
)

// fakeSaver records the last save request and can be told to fail.
type fakeSaver struct {
	saved *models.WorkoutSaveRequest
	err   error
}

func (f *fakeSaver) SaveWorkout(_ context.Context, req models.WorkoutSaveRequest) (*models.Workout, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = &req
	return &models.Workout{
		ID: uuid.New(), UserID: req.UserID, Name: req.Name,
		StartTime: req.StartTime, EndTime: req.EndTime,
	}, nil
}

// TestFinishSingleCompletedSet walks the minimal happy path: start, add an
// exercise, three empty sets, fill and complete the first, finish. The
// payload must hold exactly one exercise with one set numbered 1.
func TestFinishSingleCompletedSet(t *testing.T) {
	tr := startedTracker(t)
	if err := tr.AddExercise(squatDef, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := tr.AddEmptySet(0); err != nil {
			t.Fatalf("addEmptySet: %v", err)
		}
	}
	if err := tr.UpdateSet(0, 0, SetWeight, "100"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := tr.UpdateSet(0, 0, SetReps, "5"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := tr.ToggleSetCompleted(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	saver := &fakeSaver{}
	timer := NewRestTimer(60)
	f := NewFinalizer(saver)

	workout, err := f.Finish(context.Background(), tr, timer, 1)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if workout == nil {
		t.Fatal("no workout returned")
	}

	req := saver.saved
	if len(req.Exercises) != 1 {
		t.Fatalf("payload exercises = %d, want 1", len(req.Exercises))
	}
	sets := req.Exercises[0].Sets
	if len(sets) != 1 {
		t.Fatalf("payload sets = %d, want 1", len(sets))
	}
	if sets[0].SetNumber != 1 {
		t.Errorf("setNumber = %d, want 1", sets[0].SetNumber)
	}
	if sets[0].Weight == nil || *sets[0].Weight != 100 {
		t.Errorf("weight = %v, want 100", sets[0].Weight)
	}
	if sets[0].Reps == nil || *sets[0].Reps != 5 {
		t.Errorf("reps = %v, want 5", sets[0].Reps)
	}

	if tr.Active() {
		t.Error("session not cleared after successful save")
	}
	if timer.Active() {
		t.Error("rest timer not cleared after successful save")
	}
}

// TestFinishRoundTripAllCompleted verifies the payload carries every
// exercise and set when everything is completed, with comments attached.
func TestFinishRoundTripAllCompleted(t *testing.T) {
	tr := startedTracker(t)
	for _, def := range []models.ExerciseDefinition{squatDef, benchDef} {
		if err := tr.AddExercise(def, nil); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	for ex := 0; ex < 2; ex++ {
		for set := 0; set < 2; set++ {
			if err := tr.AddEmptySet(ex); err != nil {
				t.Fatalf("addEmptySet: %v", err)
			}
			if err := tr.UpdateSet(ex, set, SetWeight, "60"); err != nil {
				t.Fatalf("update: %v", err)
			}
			if _, err := tr.ToggleSetCompleted(ex, set); err != nil {
				t.Fatalf("toggle: %v", err)
			}
		}
	}
	if err := tr.UpdateExerciseComment(1, "felt heavy"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	saver := &fakeSaver{}
	f := NewFinalizer(saver)
	if _, err := f.Finish(context.Background(), tr, nil, 7); err != nil {
		t.Fatalf("finish: %v", err)
	}

	req := saver.saved
	if req.UserID != 7 {
		t.Errorf("userId = %d, want 7", req.UserID)
	}
	if len(req.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(req.Exercises))
	}
	for i, ex := range req.Exercises {
		if ex.OrderIndex != i {
			t.Errorf("exercises[%d].orderIndex = %d, want %d", i, ex.OrderIndex, i)
		}
		if len(ex.Sets) != 2 {
			t.Errorf("exercises[%d] sets = %d, want 2", i, len(ex.Sets))
		}
	}
	if req.Exercises[0].Comment != nil {
		t.Errorf("exercises[0].comment = %q, want null", *req.Exercises[0].Comment)
	}
	if req.Exercises[1].Comment == nil || *req.Exercises[1].Comment != "felt heavy" {
		t.Errorf("exercises[1].comment = %v, want %q", req.Exercises[1].Comment, "felt heavy")
	}
}

// TestFinishDropsIncompleteWork verifies incomplete sets are filtered and
// exercises with zero completed sets are dropped entirely.
func TestFinishDropsIncompleteWork(t *testing.T) {
	tr := startedTracker(t)
	for _, def := range []models.ExerciseDefinition{squatDef, benchDef} {
		if err := tr.AddExercise(def, nil); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	// Squat: one completed, one not. Bench: nothing completed.
	for set := 0; set < 2; set++ {
		if err := tr.AddEmptySet(0); err != nil {
			t.Fatalf("addEmptySet: %v", err)
		}
	}
	if err := tr.AddEmptySet(1); err != nil {
		t.Fatalf("addEmptySet: %v", err)
	}
	if _, err := tr.ToggleSetCompleted(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	saver := &fakeSaver{}
	if _, err := NewFinalizer(saver).Finish(context.Background(), tr, nil, 1); err != nil {
		t.Fatalf("finish: %v", err)
	}

	req := saver.saved
	if len(req.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1 (bench dropped)", len(req.Exercises))
	}
	if req.Exercises[0].ExerciseID != squatDef.ID {
		t.Errorf("surviving exercise = %d, want squat", req.Exercises[0].ExerciseID)
	}
	if len(req.Exercises[0].Sets) != 1 {
		t.Errorf("sets = %d, want 1 (incomplete set dropped)", len(req.Exercises[0].Sets))
	}
}

// TestFinishNothingToSave verifies finishing with no completed set fails
// without a backend call and keeps the session.
func TestFinishNothingToSave(t *testing.T) {
	tr := startedTracker(t)
	if err := tr.AddExercise(squatDef, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tr.AddEmptySet(0); err != nil {
		t.Fatalf("addEmptySet: %v", err)
	}

	saver := &fakeSaver{}
	_, err := NewFinalizer(saver).Finish(context.Background(), tr, nil, 1)
	if !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("err = %v, want ErrNothingToSave", err)
	}
	if saver.saved != nil {
		t.Error("backend was called despite nothing to save")
	}
	if !tr.Active() {
		t.Error("session cleared on NothingToSave; user must be able to go back")
	}
}

// TestFinishSaveFailureKeepsSession verifies the retry guarantee: a failed
// save surfaces the error and preserves all completed work.
func TestFinishSaveFailureKeepsSession(t *testing.T) {
	tr := startedTracker(t)
	if err := tr.AddExercise(squatDef, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tr.AddEmptySet(0); err != nil {
		t.Fatalf("addEmptySet: %v", err)
	}
	if _, err := tr.ToggleSetCompleted(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	saver := &fakeSaver{err: errors.New("network down")}
	timer := NewRestTimer(60)
	_, err := NewFinalizer(saver).Finish(context.Background(), tr, timer, 1)
	if err == nil {
		t.Fatal("expected save error")
	}
	if !tr.Active() {
		t.Fatal("session cleared on failed save; completed work lost")
	}
	if got := tr.Session().Exercises[0].CompletedSets(); got != 1 {
		t.Errorf("completed sets after failed save = %d, want 1", got)
	}

	// Retry after the backend recovers.
	saver.err = nil
	if _, err := NewFinalizer(saver).Finish(context.Background(), tr, timer, 1); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if tr.Active() {
		t.Error("session not cleared after successful retry")
	}
}

// TestBuildSaveRequestTimestamps verifies the local-civil wire convention,
// truncated to the second.
func TestBuildSaveRequestTimestamps(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 30, 12, 999_000_000, time.Local)
	end := start.Truncate(time.Second).Add(47*time.Minute + 500*time.Millisecond)
	s := &Session{Name: "Training", StartTime: start.Truncate(time.Second)}

	req := BuildSaveRequest(s, 1, end)
	if got := req.StartTime.String(); got != "2026-03-14T18:30:12" {
		t.Errorf("startTime = %q", got)
	}
	if got := req.EndTime.String(); got != "2026-03-14T19:17:12" {
		t.Errorf("endTime = %q", got)
	}
}
