package storage

import (
	"context"
	"fmt"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// ListExercises retrieves the full exercise catalog ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.ExerciseDefinition, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, exercise_type, COALESCE(equipment_type, ''),
		 COALESCE(primary_muscle_group, ''), weight_per_side, COALESCE(created_by, 0)
		 FROM exercises
		 ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseDefinition
	for rows.Next() {
		var def models.ExerciseDefinition
		if err := rows.Scan(&def.ID, &def.Name, &def.ExerciseType, &def.EquipmentType,
			&def.PrimaryMuscleGroup, &def.WeightPerSide, &def.CreatedBy); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, def)
	}
	return result, rows.Err()
}

// GetExercise retrieves one catalog entry by id.
func (db *DB) GetExercise(ctx context.Context, id int64) (*models.ExerciseDefinition, error) {
	var def models.ExerciseDefinition
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, exercise_type, COALESCE(equipment_type, ''),
		 COALESCE(primary_muscle_group, ''), weight_per_side, COALESCE(created_by, 0)
		 FROM exercises
		 WHERE id = $1`, id).
		Scan(&def.ID, &def.Name, &def.ExerciseType, &def.EquipmentType,
			&def.PrimaryMuscleGroup, &def.WeightPerSide, &def.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("querying exercise %d: %w", id, err)
	}
	return &def, nil
}

// InsertExercise adds a catalog entry. Names are unique and case-sensitive;
// a conflict surfaces as a database error to the caller.
func (db *DB) InsertExercise(ctx context.Context, def models.ExerciseDefinition) (*models.ExerciseDefinition, error) {
	var equipment, muscle *string
	if def.EquipmentType != "" {
		e := string(def.EquipmentType)
		equipment = &e
	}
	if def.PrimaryMuscleGroup != "" {
		m := string(def.PrimaryMuscleGroup)
		muscle = &m
	}
	var createdBy *int64
	if def.CreatedBy != 0 {
		createdBy = &def.CreatedBy
	}

	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, exercise_type, equipment_type, primary_muscle_group, weight_per_side, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		def.Name, def.ExerciseType, equipment, muscle, def.WeightPerSide, createdBy).Scan(&def.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return &def, nil
}
