package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/Brati10/fitness-tracker/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB satisfies
// it; tests substitute a fake.
type Store interface {
	ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error)
	GetExercise(ctx context.Context, id int64) (*models.ExerciseDefinition, error)
	InsertExercise(ctx context.Context, def models.ExerciseDefinition) (*models.ExerciseDefinition, error)

	SaveCompleteWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error)
	QueryUserWorkouts(ctx context.Context, userID int64) ([]models.Workout, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int64) (*models.Workout, error)
	LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error)

	CreateTemplate(ctx context.Context, req models.TemplateSaveRequest) (*models.Template, error)
	GetTemplate(ctx context.Context, templateID, userID int64) (*models.Template, error)
	ListUserTemplates(ctx context.Context, userID int64) ([]models.Template, error)
	UpdateTemplate(ctx context.Context, templateID int64, req models.TemplateSaveRequest) (*models.Template, error)
	DeleteTemplate(ctx context.Context, templateID, userID int64) (bool, error)

	GetPreferences(ctx context.Context, userID int64) (models.Preferences, error)
	UpsertPreferences(ctx context.Context, p models.Preferences) error

	InsertWeightMeasurement(ctx context.Context, userID int64, weightKg float64, measuredAt time.Time) (*models.WeightMeasurement, error)
	ListWeightMeasurements(ctx context.Context, userID int64) ([]models.WeightMeasurement, error)

	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role models.Role) (bool, error)
}

// Compile-time check: the real database satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	log      *slog.Logger
	adminKey string
	router   chi.Router
}

// New creates a new Server with all routes configured. adminKey is the
// bootstrap key mapped to the admin role; empty disables it.
func New(store Store, adminKey string, log *slog.Logger) *Server {
	s := &Server{
		store:    store,
		log:      log,
		adminKey: adminKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.APIKeyAuth)

		r.Get("/me", s.handleMe)

		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Post("/exercises", s.handleCreateExercise)

		r.Post("/workouts/save-complete", s.handleSaveCompleteWorkout)
		r.Get("/workouts/user/{userId}", s.handleListWorkouts)
		r.Get("/workouts/exercises/{exerciseId}/last", s.handleLastPerformance)
		r.Get("/workouts/{id}", s.handleGetWorkout)

		r.Post("/templates", s.handleCreateTemplate)
		r.Get("/templates/user/{userId}", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Put("/templates/{id}", s.handleUpdateTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)

		r.Get("/preferences/user/{userId}", s.handleGetPreferences)
		r.Put("/preferences/user/{userId}", s.handlePutPreferences)

		r.Post("/weight", s.handleCreateWeightMeasurement)
		r.Get("/weight/user/{userId}", s.handleListWeightMeasurements)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.RequireAdmin)
			r.Get("/users", s.handleListUsers)
			r.Put("/users/{userId}/role", s.handleUpdateUserRole)
		})
	})
}
