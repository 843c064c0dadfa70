package models

// TemplateExercise is one ordered target entry within a template. The full
// exercise definition is embedded so resolving a template needs no catalog
// round-trip per exercise.
type TemplateExercise struct {
	Exercise              ExerciseDefinition `json:"exercise"`
	OrderIndex            int                `json:"orderIndex"`
	SetsCount             int                `json:"setsCount"`
	TargetWeight          *float64           `json:"targetWeight,omitempty"`
	TargetReps            *int               `json:"targetReps,omitempty"`
	TargetDurationSeconds *int               `json:"targetDurationSeconds,omitempty"`
	TargetDistanceKm      *float64           `json:"targetDistanceKm,omitempty"`
}

// Template is a named, reusable workout prescription.
type Template struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"userId"`
	Name      string             `json:"name"`
	Exercises []TemplateExercise `json:"exercises"`
}

// TemplateExerciseData is one entry of a template-creation request.
type TemplateExerciseData struct {
	ExerciseID            int64    `json:"exerciseId"`
	OrderIndex            int      `json:"orderIndex"`
	SetsCount             int      `json:"setsCount"`
	TargetWeight          *float64 `json:"targetWeight,omitempty"`
	TargetReps            *int     `json:"targetReps,omitempty"`
	TargetDurationSeconds *int     `json:"targetDurationSeconds,omitempty"`
	TargetDistanceKm      *float64 `json:"targetDistanceKm,omitempty"`
}

// TemplateSaveRequest is the POST /templates body.
type TemplateSaveRequest struct {
	UserID    int64                  `json:"userId"`
	Name      string                 `json:"name"`
	Exercises []TemplateExerciseData `json:"exercises"`
}
