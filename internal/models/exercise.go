package models

// ExerciseType distinguishes the set fields an exercise records.
type ExerciseType string

const (
	ExerciseStrength ExerciseType = "STRENGTH"
	ExerciseCardio   ExerciseType = "CARDIO"
)

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	return t == ExerciseStrength || t == ExerciseCardio
}

// EquipmentType classifies the equipment a strength exercise uses.
type EquipmentType string

const (
	EquipmentBarbell     EquipmentType = "BARBELL"
	EquipmentDumbbell    EquipmentType = "DUMBBELL"
	EquipmentMachine     EquipmentType = "MACHINE"
	EquipmentCable       EquipmentType = "CABLE"
	EquipmentPlateLoaded EquipmentType = "PLATE_LOADED"
	EquipmentBodyweight  EquipmentType = "BODYWEIGHT"
	EquipmentOther       EquipmentType = "OTHER"
)

// MuscleGroup is the primary muscle group of a strength exercise.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "CHEST"
	MuscleBack      MuscleGroup = "BACK"
	MuscleLegs      MuscleGroup = "LEGS"
	MuscleShoulders MuscleGroup = "SHOULDERS"
	MuscleBiceps    MuscleGroup = "BICEPS"
	MuscleTriceps   MuscleGroup = "TRICEPS"
	MuscleCore      MuscleGroup = "CORE"
	MuscleOther     MuscleGroup = "OTHER"
)

// ExerciseDefinition is a catalog entry. Definitions are shared between
// users; sessions snapshot the fields they need at add-time, so later
// catalog edits never rewrite recorded history.
type ExerciseDefinition struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	ExerciseType       ExerciseType  `json:"exerciseType"`
	EquipmentType      EquipmentType `json:"equipmentType,omitempty"`
	PrimaryMuscleGroup MuscleGroup   `json:"primaryMuscleGroup,omitempty"`
	// WeightPerSide marks exercises where the entered weight is the load
	// per side (e.g. plates on a barbell), display-only semantics.
	WeightPerSide bool `json:"weightPerSide"`
	CreatedBy     int64 `json:"createdBy,omitempty"`
}
