package models

import "github.com/google/uuid"

// SetData is one completed set in the save-complete payload. Strength sets
// carry weight/reps; cardio sets carry duration/distance. The unused pair is
// null on the wire.
type SetData struct {
	SetNumber       int      `json:"setNumber"`
	Weight          *float64 `json:"weight,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	DistanceKm      *float64 `json:"distanceKm,omitempty"`
	Completed       bool     `json:"completed"`
}

// ExerciseData is one exercise's share of the save-complete payload.
type ExerciseData struct {
	ExerciseID int64     `json:"exerciseId"`
	OrderIndex int       `json:"orderIndex"`
	Comment    *string   `json:"comment"`
	Sets       []SetData `json:"sets"`
}

// WorkoutSaveRequest is the POST /workouts/save-complete body. It contains
// only completed sets; exercises without a completed set are never sent.
type WorkoutSaveRequest struct {
	UserID    int64          `json:"userId"`
	Name      string         `json:"name"`
	StartTime LocalTime      `json:"startTime"`
	EndTime   LocalTime      `json:"endTime"`
	Exercises []ExerciseData `json:"exercises"`
}

// Workout is a persisted workout record.
type Workout struct {
	ID        uuid.UUID      `json:"id"`
	UserID    int64          `json:"userId"`
	Name      string         `json:"name"`
	StartTime LocalTime      `json:"startTime"`
	EndTime   LocalTime      `json:"endTime"`
	Exercises []ExerciseData `json:"exercises,omitempty"`
}

// PerformedSet is one historical set inside a PerformanceSnapshot.
type PerformedSet struct {
	SetNumber       int      `json:"setNumber"`
	Weight          *float64 `json:"weight,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	DistanceKm      *float64 `json:"distanceKm,omitempty"`
}

// PerformanceSnapshot is the most recent completed performance of one
// exercise for one user. Read-only seed data: the session copies values out
// of it but never writes back.
type PerformanceSnapshot struct {
	ExerciseID  int64          `json:"exerciseId"`
	WorkoutID   uuid.UUID      `json:"workoutId"`
	PerformedAt LocalTime      `json:"performedAt"`
	Sets        []PerformedSet `json:"sets"`
	Comment     string         `json:"comment,omitempty"`
}
