package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// TemplateCreator persists a new workout template.
type TemplateCreator interface {
	CreateTemplate(ctx context.Context, req models.TemplateSaveRequest) (*models.Template, error)
}

// Capture extracts a reusable template from the live session: the plan
// (exercise order and set counts) plus a representative target per
// exercise, taken from the first set. It never mutates the session.
type Capture struct {
	creator TemplateCreator
}

// NewCapture creates a Capture.
func NewCapture(creator TemplateCreator) *Capture {
	return &Capture{creator: creator}
}

// SaveAsTemplate builds and persists a template from the active session.
// Every exercise is captured regardless of completion state. The name must
// not be empty or whitespace.
func (c *Capture) SaveAsTemplate(ctx context.Context, tracker *Tracker, userID int64, name string) (*models.Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTemplateName
	}
	s := tracker.Session()
	if s == nil {
		return nil, ErrNoActiveSession
	}

	req := models.TemplateSaveRequest{UserID: userID, Name: name}
	for i, ex := range s.Exercises {
		entry := models.TemplateExerciseData{
			ExerciseID: ex.ExerciseID,
			OrderIndex: i,
			SetsCount:  len(ex.Sets),
		}
		if len(ex.Sets) > 0 {
			first := ex.Sets[0]
			switch ex.ExerciseType {
			case models.ExerciseCardio:
				entry.TargetDurationSeconds = first.DurationSeconds.IntPtr()
				entry.TargetDistanceKm = first.DistanceKm.Ptr()
			default:
				entry.TargetWeight = first.Weight.Ptr()
				entry.TargetReps = first.Reps.IntPtr()
			}
		}
		req.Exercises = append(req.Exercises, entry)
	}

	tmpl, err := c.creator.CreateTemplate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}
	return tmpl, nil
}
