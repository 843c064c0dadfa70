package mcp

import (
	"context"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation("2006-01-02", s, time.Local)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the shared exercise catalog: name, type (STRENGTH/CARDIO), equipment, and primary muscle group."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query saved workouts in a date range. Returns workout summaries (name, start/end time) without set detail."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkoutDetail = mcp.NewTool("get_workout_detail",
	mcp.WithDescription("Retrieve one workout with all exercises and their sets (weight, reps, duration, distance)."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolGetLastPerformance = mcp.NewTool("get_last_performance",
	mcp.WithDescription("The most recent saved performance of an exercise: its sets and the free-text comment. Useful for progression questions."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID from list_exercises")),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Aggregated training volume over a date range: workout count, set and rep totals, strength tonnage, cardio duration and distance, plus a per-exercise breakdown."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(defs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.workoutsInRange(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}
	workoutID, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout_id: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workout, err := h.ds.GetWorkout(ctx, workoutID, uid)
	if err != nil {
		h.log.Error("mcp get_workout_detail", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireFloat("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	snap, err := h.ds.LastPerformance(ctx, int64(exerciseID), uid)
	if err != nil {
		h.log.Error("mcp get_last_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if snap == nil {
		return mcp.NewToolResultText("no performance history for this exercise"), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	summary, err := h.buildTrainingSummary(ctx, uid, start, end)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// workoutsInRange filters the user's workouts to [start, end).
func (h *handlers) workoutsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Workout, error) {
	all, err := h.ds.QueryUserWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	var result []models.Workout
	for _, w := range all {
		if w.StartTime.Before(start) || !w.StartTime.Before(end) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

// TrainingSummary is the aggregate the get_training_summary tool returns.
type TrainingSummary struct {
	Start           string           `json:"start"`
	End             string           `json:"end"`
	WorkoutCount    int              `json:"workoutCount"`
	TotalSets       int              `json:"totalSets"`
	TotalReps       int              `json:"totalReps"`
	TonnageKg       float64          `json:"tonnageKg"`
	CardioSeconds   int              `json:"cardioSeconds"`
	CardioKm        float64          `json:"cardioKm"`
	ExerciseVolumes []ExerciseVolume `json:"exercises"`
}

// ExerciseVolume is the per-exercise slice of a TrainingSummary.
type ExerciseVolume struct {
	ExerciseID   int64   `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName,omitempty"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	TonnageKg    float64 `json:"tonnageKg"`
	Seconds      int     `json:"seconds"`
	Km           float64 `json:"km"`
}

func (h *handlers) buildTrainingSummary(ctx context.Context, userID int64, start, end time.Time) (*TrainingSummary, error) {
	workouts, err := h.workoutsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	if defs, err := h.ds.ListExercises(ctx); err == nil {
		for _, d := range defs {
			names[d.ID] = d.Name
		}
	}

	summary := &TrainingSummary{
		Start:        start.Format("2006-01-02"),
		End:          end.Format("2006-01-02"),
		WorkoutCount: len(workouts),
	}
	volumes := map[int64]*ExerciseVolume{}
	var order []int64

	for _, w := range workouts {
		detail, err := h.ds.GetWorkout(ctx, w.ID, userID)
		if err != nil {
			return nil, err
		}
		for _, ex := range detail.Exercises {
			v := volumes[ex.ExerciseID]
			if v == nil {
				v = &ExerciseVolume{ExerciseID: ex.ExerciseID, ExerciseName: names[ex.ExerciseID]}
				volumes[ex.ExerciseID] = v
				order = append(order, ex.ExerciseID)
			}
			for _, set := range ex.Sets {
				summary.TotalSets++
				v.Sets++
				if set.Reps != nil {
					summary.TotalReps += *set.Reps
					v.Reps += *set.Reps
					if set.Weight != nil {
						tonnage := *set.Weight * float64(*set.Reps)
						summary.TonnageKg += tonnage
						v.TonnageKg += tonnage
					}
				}
				if set.DurationSeconds != nil {
					summary.CardioSeconds += *set.DurationSeconds
					v.Seconds += *set.DurationSeconds
				}
				if set.DistanceKm != nil {
					summary.CardioKm += *set.DistanceKm
					v.Km += *set.DistanceKm
				}
			}
		}
	}

	for _, id := range order {
		summary.ExerciseVolumes = append(summary.ExerciseVolumes, *volumes[id])
	}
	return summary, nil
}
