package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// Client talks to the fittrack server over HTTP. It satisfies the
// session.Backend interface, so the tracker CLI plugs it straight into a
// session.Service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given server URL and per-user API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Me resolves the user the API key belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/api/v1/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListExercises retrieves the shared exercise catalog.
func (c *Client) ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error) {
	var defs []models.ExerciseDefinition
	if err := c.get(ctx, "/api/v1/exercises", &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// LastPerformance retrieves the most recent saved performance of an
// exercise. Returns nil without error when the user has no history for it.
func (c *Client) LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error) {
	path := fmt.Sprintf("/api/v1/workouts/exercises/%d/last?userId=%d", exerciseID, userID)
	var snap models.PerformanceSnapshot
	err := c.get(ctx, path, &snap)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveWorkout persists a finished workout.
func (c *Client) SaveWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error) {
	var workout models.Workout
	if err := c.post(ctx, "/api/v1/workouts/save-complete", req, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListWorkouts retrieves a user's saved workouts, newest first.
func (c *Client) ListWorkouts(ctx context.Context, userID int64) ([]models.Workout, error) {
	var workouts []models.Workout
	path := fmt.Sprintf("/api/v1/workouts/user/%d", userID)
	if err := c.get(ctx, path, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetTemplate retrieves one template with full exercise definitions. The
// server scopes the lookup to the authenticated user.
func (c *Client) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	var tmpl models.Template
	if err := c.get(ctx, fmt.Sprintf("/api/v1/templates/%d", id), &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ListTemplates retrieves a user's templates without exercise detail.
func (c *Client) ListTemplates(ctx context.Context, userID int64) ([]models.Template, error) {
	var templates []models.Template
	path := fmt.Sprintf("/api/v1/templates/user/%d", userID)
	if err := c.get(ctx, path, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate stores a new template.
func (c *Client) CreateTemplate(ctx context.Context, req models.TemplateSaveRequest) (*models.Template, error) {
	var tmpl models.Template
	if err := c.post(ctx, "/api/v1/templates", req, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GetPreferences retrieves a user's preferences.
func (c *Client) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	var prefs models.Preferences
	path := fmt.Sprintf("/api/v1/preferences/user/%d", userID)
	if err := c.get(ctx, path, &prefs); err != nil {
		return models.Preferences{}, err
	}
	return prefs, nil
}

// statusError carries the HTTP status of a failed request so callers can
// distinguish missing data from transport trouble.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.status, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &statusError{status: resp.StatusCode, body: string(bytes.TrimSpace(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
