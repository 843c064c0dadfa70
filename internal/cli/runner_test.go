package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/Brati10/fitness-tracker/internal/outbox"
	"github.com/Brati10/fitness-tracker/internal/session"
	"github.com/google/uuid"
)

// fakeBackend satisfies session.Backend and Lister for runner tests.
type fakeBackend struct {
	exercises []models.ExerciseDefinition
	saveErr   error
	saved     []models.WorkoutSaveRequest
}

func (f *fakeBackend) LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error) {
	return nil, nil
}

func (f *fakeBackend) SaveWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, req)
	return &models.Workout{ID: uuid.New(), Name: req.Name, UserID: req.UserID, Exercises: req.Exercises}, nil
}

func (f *fakeBackend) CreateTemplate(ctx context.Context, req models.TemplateSaveRequest) (*models.Template, error) {
	return &models.Template{ID: 1, UserID: req.UserID, Name: req.Name}, nil
}

func (f *fakeBackend) ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error) {
	return f.exercises, nil
}

func (f *fakeBackend) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	return nil, errors.New("no such template")
}

func (f *fakeBackend) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	return models.DefaultPreferences(userID), nil
}

func (f *fakeBackend) ListWorkouts(ctx context.Context, userID int64) ([]models.Workout, error) {
	return nil, nil
}

func (f *fakeBackend) ListTemplates(ctx context.Context, userID int64) ([]models.Template, error) {
	return nil, nil
}

func testRunner(t *testing.T, backend *fakeBackend, spool *outbox.Outbox) (*Runner, *bytes.Buffer) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := models.User{ID: 7, Username: "alice", Role: models.RoleUser}
	svc := session.NewService(backend, user, log)
	out := &bytes.Buffer{}
	r := NewRunner(svc, backend, spool, strings.NewReader(""), out)
	r.catalog = backend.exercises
	return r, out
}

func run(t *testing.T, r *Runner, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := r.Execute(context.Background(), line); err != nil {
			t.Fatalf("Execute(%q): %v", line, err)
		}
	}
}

func strengthCatalog() []models.ExerciseDefinition {
	return []models.ExerciseDefinition{
		{ID: 1, Name: "Squat", ExerciseType: models.ExerciseStrength},
		{ID: 2, Name: "Bench Press", ExerciseType: models.ExerciseStrength},
	}
}

// TestStartAndStatus verifies starting a session and showing it.
func TestStartAndStatus(t *testing.T) {
	r, out := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start Leg Day", "status")

	if !strings.Contains(out.String(), "Leg Day") {
		t.Errorf("output missing session name, got:\n%s", out.String())
	}
}

// TestAddByNameAndId verifies catalog lookup by case-insensitive name and by
// numeric id.
func TestAddByNameAndId(t *testing.T) {
	r, _ := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start", "add squat", "add 2")

	exs := r.service.Tracker().Session().Exercises
	if len(exs) != 2 {
		t.Fatalf("len(exercises) = %d, want 2", len(exs))
	}
	if exs[0].ExerciseName != "Squat" || exs[1].ExerciseName != "Bench Press" {
		t.Errorf("exercises = %q, %q; want Squat, Bench Press", exs[0].ExerciseName, exs[1].ExerciseName)
	}
}

// TestAddUnknownExercise verifies an unknown name is an error, not a crash.
func TestAddUnknownExercise(t *testing.T) {
	r, _ := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start")

	if _, err := r.Execute(context.Background(), "add deadlift"); err == nil {
		t.Fatal("expected error for unknown exercise")
	}
}

// TestSetAndDoneFlow verifies editing values and completing a set through
// the command surface, using 1-based positions.
func TestSetAndDoneFlow(t *testing.T) {
	r, _ := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start", "add squat", "addset 1", "set 1 1 weight 82,5", "set 1 1 reps 8", "done 1 1")

	set := r.service.Tracker().Session().Exercises[0].Sets[0]
	if !set.Completed {
		t.Error("set not completed")
	}
	if set.Weight.Value() != 82.5 {
		t.Errorf("weight = %v, want 82.5", set.Weight.Value())
	}
	if !r.service.Timer().Active() {
		t.Error("rest timer did not start on completion")
	}
}

// TestRemoveConfirmation verifies the two-step removal: the command prompts
// when completed sets exist and the next input decides.
func TestRemoveConfirmation(t *testing.T) {
	r, out := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start", "add squat", "addset 1", "set 1 1 weight 100", "set 1 1 reps 5", "done 1 1")

	run(t, r, "remove 1")
	if !strings.Contains(out.String(), "Remove anyway?") {
		t.Fatalf("expected confirmation prompt, got:\n%s", out.String())
	}
	if len(r.service.Tracker().Session().Exercises) != 1 {
		t.Fatal("exercise removed before confirmation")
	}

	run(t, r, "n")
	if len(r.service.Tracker().Session().Exercises) != 1 {
		t.Fatal("exercise removed after declining")
	}

	run(t, r, "remove 1", "y")
	if len(r.service.Tracker().Session().Exercises) != 0 {
		t.Error("exercise not removed after confirming")
	}
}

// TestFinishSavesWorkout verifies the happy path ends the session.
func TestFinishSavesWorkout(t *testing.T) {
	backend := &fakeBackend{exercises: strengthCatalog()}
	r, _ := testRunner(t, backend, nil)
	run(t, r, "start", "add squat", "addset 1", "set 1 1 weight 100", "set 1 1 reps 5", "done 1 1", "finish")

	if len(backend.saved) != 1 {
		t.Fatalf("len(saved) = %d, want 1", len(backend.saved))
	}
	if r.service.Tracker().Active() {
		t.Error("session still active after save")
	}
}

// TestFinishSpoolsOnFailure verifies a server failure moves the payload to
// the outbox and ends the session instead of losing the workout.
func TestFinishSpoolsOnFailure(t *testing.T) {
	spool, err := outbox.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open outbox: %v", err)
	}
	defer spool.Close()

	backend := &fakeBackend{exercises: strengthCatalog(), saveErr: errors.New("connection refused")}
	r, out := testRunner(t, backend, spool)
	run(t, r, "start", "add squat", "addset 1", "set 1 1 weight 100", "set 1 1 reps 5", "done 1 1", "finish")

	if r.service.Tracker().Active() {
		t.Error("session still active after spooling")
	}
	if !strings.Contains(out.String(), "spooled locally") {
		t.Errorf("expected spool notice, got:\n%s", out.String())
	}

	entries, err := spool.Pending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Payload.UserID != 7 {
		t.Errorf("spooled UserID = %d, want 7", entries[0].Payload.UserID)
	}
}

// TestFinishWithoutSpoolKeepsSession verifies that with no outbox a failed
// save keeps the session for a retry.
func TestFinishWithoutSpoolKeepsSession(t *testing.T) {
	backend := &fakeBackend{exercises: strengthCatalog(), saveErr: errors.New("connection refused")}
	r, _ := testRunner(t, backend, nil)
	run(t, r, "start", "add squat", "addset 1", "set 1 1 weight 100", "set 1 1 reps 5", "done 1 1")

	if _, err := r.Execute(context.Background(), "finish"); err == nil {
		t.Fatal("expected finish error without a spool")
	}
	if !r.service.Tracker().Active() {
		t.Error("session discarded despite failed save")
	}
}

// TestQuitBlockedWhileActive verifies quit refuses to drop an active
// session silently.
func TestQuitBlockedWhileActive(t *testing.T) {
	r, out := testRunner(t, &fakeBackend{exercises: strengthCatalog()}, nil)
	run(t, r, "start")

	quit, err := r.Execute(context.Background(), "quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quit {
		t.Error("quit succeeded with an active session")
	}
	if !strings.Contains(out.String(), "finish") {
		t.Errorf("expected hint to finish or discard, got:\n%s", out.String())
	}

	run(t, r, "discard")
	quit, err = r.Execute(context.Background(), "quit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quit {
		t.Error("quit blocked with no active session")
	}
}

// TestUnknownCommand verifies unknown input produces a helpful error.
func TestUnknownCommand(t *testing.T) {
	r, _ := testRunner(t, &fakeBackend{}, nil)
	if _, err := r.Execute(context.Background(), "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
