package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// Backend is the slice of the persistence API the session screen consumes.
type Backend interface {
	HistoryFetcher
	WorkoutSaver
	TemplateCreator
	ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error)
	GetTemplate(ctx context.Context, id int64) (*models.Template, error)
	GetPreferences(ctx context.Context, userID int64) (models.Preferences, error)
}

// Service owns the single active session and its rest timer for one
// logged-in user. Nothing else mutates them; every user action flows
// through a Service method on the caller's goroutine, so operations are
// strictly serialized.
type Service struct {
	backend Backend
	user    models.User
	log     *slog.Logger

	tracker   *Tracker
	timer     *RestTimer
	resolver  *Resolver
	finalizer *Finalizer
	capture   *Capture
}

// NewService wires the session components for one user. Completing a set
// starts the rest timer.
func NewService(backend Backend, user models.User, log *slog.Logger) *Service {
	s := &Service{
		backend:   backend,
		user:      user,
		log:       log,
		tracker:   NewTracker(),
		timer:     NewRestTimer(DefaultRestSeconds),
		resolver:  NewResolver(backend, log),
		finalizer: NewFinalizer(backend),
		capture:   NewCapture(backend),
	}
	s.tracker.OnSetCompleted(s.timer.Start)
	return s
}

// Tracker exposes the session state machine.
func (s *Service) Tracker() *Tracker { return s.tracker }

// Timer exposes the rest timer.
func (s *Service) Timer() *RestTimer { return s.timer }

// User returns the owning user.
func (s *Service) User() models.User { return s.user }

// Backend returns the persistence API the service was wired with.
func (s *Service) Backend() Backend { return s.backend }

// LoadPreferences applies the user's stored rest duration. A fetch failure
// keeps the defaults; preferences are a nicety, not a precondition.
func (s *Service) LoadPreferences(ctx context.Context) models.Preferences {
	prefs, err := s.backend.GetPreferences(ctx, s.user.ID)
	if err != nil {
		s.log.Warn("preferences fetch failed, using defaults", "error", err)
		prefs = models.DefaultPreferences(s.user.ID)
	}
	s.timer.SetDefaultDuration(prefs.DefaultRestTime)
	return prefs
}

// Catalog lists the available exercise definitions. A fetch failure leaves
// the picker empty rather than blocking the session.
func (s *Service) Catalog(ctx context.Context) []models.ExerciseDefinition {
	defs, err := s.backend.ListExercises(ctx)
	if err != nil {
		s.log.Warn("exercise catalog fetch failed", "error", err)
		return nil
	}
	return defs
}

// StartTraining begins a new empty session.
func (s *Service) StartTraining(name string) (*Session, error) {
	return s.tracker.Start(name)
}

// StartFromTemplate fetches the template, merges its targets with each
// exercise's last performance and begins the pre-populated session. The
// session becomes visible only after every history fetch has completed.
func (s *Service) StartFromTemplate(ctx context.Context, templateID int64) (*Session, error) {
	if s.tracker.Active() {
		return nil, ErrSessionActive
	}
	tmpl, err := s.backend.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading template %d: %w", templateID, err)
	}
	exercises, err := s.resolver.Resolve(ctx, tmpl, s.user.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving template %q: %w", tmpl.Name, err)
	}
	name := fmt.Sprintf("%s - %s", tmpl.Name, time.Now().Format("02.01.2006"))
	return s.tracker.StartWith(name, exercises)
}

// AddExercise appends an exercise to the session, seeded with a 1:1 copy of
// its last performance. A failed history fetch degrades to an empty set
// list. The last comment is kept as read-only context only.
func (s *Service) AddExercise(ctx context.Context, def models.ExerciseDefinition) error {
	snap, err := s.backend.LastPerformance(ctx, def.ID, s.user.ID)
	if err != nil {
		s.log.Warn("last performance fetch failed, starting empty",
			"exercise", def.Name, "error", err)
		snap = nil
	}
	if err := s.tracker.AddExercise(def, SeedFromSnapshot(snap)); err != nil {
		return err
	}
	if snap != nil && snap.Comment != "" {
		exs := s.tracker.Session().Exercises
		exs[len(exs)-1].LastComment = snap.Comment
	}
	return nil
}

// Finish persists the completed portion of the session. See Finalizer.
func (s *Service) Finish(ctx context.Context) (*models.Workout, error) {
	return s.finalizer.Finish(ctx, s.tracker, s.timer, s.user.ID)
}

// SaveAsTemplate captures the current session as a reusable template
// without touching the live session.
func (s *Service) SaveAsTemplate(ctx context.Context, name string) (*models.Template, error) {
	return s.capture.SaveAsTemplate(ctx, s.tracker, s.user.ID, name)
}

// Discard drops the session and stops the rest timer. The caller has
// already obtained the user's explicit confirmation.
func (s *Service) Discard() {
	s.tracker.Discard()
	s.timer.Skip()
}
