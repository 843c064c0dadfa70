package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/google/uuid"
)

// fakeSource is an in-memory DataSource for handler tests.
type fakeSource struct {
	exercises []models.ExerciseDefinition
	workouts  []models.Workout
	details   map[uuid.UUID]*models.Workout
}

func (f *fakeSource) ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error) {
	return f.exercises, nil
}

func (f *fakeSource) QueryUserWorkouts(ctx context.Context, userID int64) ([]models.Workout, error) {
	return f.workouts, nil
}

func (f *fakeSource) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int64) (*models.Workout, error) {
	return f.details[workoutID], nil
}

func (f *fakeSource) LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error) {
	return nil, nil
}

func (f *fakeSource) ListUserTemplates(ctx context.Context, userID int64) ([]models.Template, error) {
	return nil, nil
}

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 30 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 719 || diff.Hours() > 721 { // ~720 hours = 30 days
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	start, end, err = defaultTimeRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Year() != 2026 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2026-01-31", end)
	}

	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

func workoutAt(t *testing.T, day int) models.Workout {
	t.Helper()
	start := time.Date(2026, 3, day, 18, 0, 0, 0, time.Local)
	return models.Workout{
		ID:        uuid.New(),
		UserID:    1,
		Name:      "Training",
		StartTime: models.NewLocalTime(start),
		EndTime:   models.NewLocalTime(start.Add(time.Hour)),
	}
}

// TestWorkoutsInRange verifies the date filter keeps only workouts whose
// start falls inside [start, end).
func TestWorkoutsInRange(t *testing.T) {
	early := workoutAt(t, 1)
	inside := workoutAt(t, 10)
	late := workoutAt(t, 25)
	src := &fakeSource{workouts: []models.Workout{late, inside, early}}
	h := &handlers{ds: src, log: discardLog()}

	start := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.Local)
	got, err := h.workoutsInRange(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].ID != inside.ID {
		t.Errorf("kept workout = %v, want the one inside the range", got[0].ID)
	}
}

// TestBuildTrainingSummary verifies set, rep, tonnage, and cardio totals
// across strength and cardio exercises.
func TestBuildTrainingSummary(t *testing.T) {
	w := workoutAt(t, 10)
	weight := 100.0
	reps := 5
	duration := 600
	distance := 2.5
	detail := *mirror(w)
	detail.Exercises = []models.ExerciseData{
		{ExerciseID: 1, OrderIndex: 0, Sets: []models.SetData{
			{SetNumber: 1, Weight: &weight, Reps: &reps, Completed: true},
			{SetNumber: 2, Weight: &weight, Reps: &reps, Completed: true},
		}},
		{ExerciseID: 2, OrderIndex: 1, Sets: []models.SetData{
			{SetNumber: 1, DurationSeconds: &duration, DistanceKm: &distance, Completed: true},
		}},
	}
	src := &fakeSource{
		exercises: []models.ExerciseDefinition{
			{ID: 1, Name: "Squat", ExerciseType: models.ExerciseStrength},
			{ID: 2, Name: "Running", ExerciseType: models.ExerciseCardio},
		},
		workouts: []models.Workout{w},
		details:  map[uuid.UUID]*models.Workout{w.ID: &detail},
	}
	h := &handlers{ds: src, log: discardLog()}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)
	summary, err := h.buildTrainingSummary(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.WorkoutCount != 1 {
		t.Errorf("WorkoutCount = %d, want 1", summary.WorkoutCount)
	}
	if summary.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3", summary.TotalSets)
	}
	if summary.TotalReps != 10 {
		t.Errorf("TotalReps = %d, want 10", summary.TotalReps)
	}
	if summary.TonnageKg != 1000 {
		t.Errorf("TonnageKg = %v, want 1000", summary.TonnageKg)
	}
	if summary.CardioSeconds != 600 {
		t.Errorf("CardioSeconds = %d, want 600", summary.CardioSeconds)
	}
	if summary.CardioKm != 2.5 {
		t.Errorf("CardioKm = %v, want 2.5", summary.CardioKm)
	}
	if len(summary.ExerciseVolumes) != 2 {
		t.Fatalf("len(ExerciseVolumes) = %d, want 2", len(summary.ExerciseVolumes))
	}
	if summary.ExerciseVolumes[0].ExerciseName != "Squat" {
		t.Errorf("ExerciseVolumes[0].ExerciseName = %q, want %q", summary.ExerciseVolumes[0].ExerciseName, "Squat")
	}
}

func mirror(w models.Workout) *models.Workout {
	dup := w
	return &dup
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
