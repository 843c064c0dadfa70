package mcp

import (
	"context"
	"log/slog"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/Brati10/fitness-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DataSource abstracts the data layer for MCP tools. *storage.DB satisfies
// it; tests use a fake.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error)
	QueryUserWorkouts(ctx context.Context, userID int64) ([]models.Workout, error)
	GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int64) (*models.Workout, error)
	LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error)
	ListUserTemplates(ctx context.Context, userID int64) ([]models.Template, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("fittrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Fitness tracking server. Query the exercise catalog, saved workouts, last performances, and training volume. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkoutDetail, Handler: h.getWorkoutDetail},
		server.ServerTool{Tool: toolGetLastPerformance, Handler: h.getLastPerformance},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resTemplates, Handler: h.templates},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"fittrack://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resTemplates = mcp.NewResource(
	"fittrack://templates",
	"Workout Templates",
	mcp.WithResourceDescription("The user's saved workout templates"),
	mcp.WithMIMEType("application/json"),
)
