package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreateTemplate inserts a template with its exercise entries in one
// transaction and returns the fully resolved result.
func (db *DB) CreateTemplate(ctx context.Context, req models.TemplateSaveRequest) (*models.Template, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning template transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var templateID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO templates (user_id, name) VALUES ($1, $2) RETURNING id`,
		req.UserID, req.Name).Scan(&templateID)
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}

	for _, ex := range req.Exercises {
		_, err := tx.Exec(ctx,
			`INSERT INTO template_exercises
			   (template_id, exercise_id, order_index, sets_count,
			    target_weight, target_reps, target_duration_seconds, target_distance_km)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			templateID, ex.ExerciseID, ex.OrderIndex, ex.SetsCount,
			ex.TargetWeight, ex.TargetReps, ex.TargetDurationSeconds, ex.TargetDistanceKm)
		if err != nil {
			return nil, fmt.Errorf("inserting template exercise %d: %w", ex.ExerciseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing template: %w", err)
	}
	return db.GetTemplate(ctx, templateID, req.UserID)
}

// GetTemplate retrieves a template with each entry's full exercise
// definition embedded. Returns nil when no such template exists for the user.
func (db *DB) GetTemplate(ctx context.Context, templateID, userID int64) (*models.Template, error) {
	var t models.Template
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name FROM templates WHERE id = $1 AND user_id = $2`,
		templateID, userID).Scan(&t.ID, &t.UserID, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT e.id, e.name, e.exercise_type,
		        COALESCE(e.equipment_type, ''), COALESCE(e.primary_muscle_group, ''),
		        e.weight_per_side, COALESCE(e.created_by, 0),
		        te.order_index, te.sets_count,
		        te.target_weight, te.target_reps, te.target_duration_seconds, te.target_distance_km
		 FROM template_exercises te
		 JOIN exercises e ON e.id = te.exercise_id
		 WHERE te.template_id = $1
		 ORDER BY te.order_index ASC`, templateID)
	if err != nil {
		return nil, fmt.Errorf("querying template exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var te models.TemplateExercise
		err := rows.Scan(
			&te.Exercise.ID, &te.Exercise.Name, &te.Exercise.ExerciseType,
			&te.Exercise.EquipmentType, &te.Exercise.PrimaryMuscleGroup,
			&te.Exercise.WeightPerSide, &te.Exercise.CreatedBy,
			&te.OrderIndex, &te.SetsCount,
			&te.TargetWeight, &te.TargetReps, &te.TargetDurationSeconds, &te.TargetDistanceKm)
		if err != nil {
			return nil, fmt.Errorf("scanning template exercise: %w", err)
		}
		t.Exercises = append(t.Exercises, te)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListUserTemplates retrieves a user's templates without exercise detail.
func (db *DB) ListUserTemplates(ctx context.Context, userID int64) ([]models.Template, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name FROM templates WHERE user_id = $1 ORDER BY name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// UpdateTemplate replaces a template's name and entries. The entry list is
// rewritten wholesale; partial edits are a client concern.
func (db *DB) UpdateTemplate(ctx context.Context, templateID int64, req models.TemplateSaveRequest) (*models.Template, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning template update: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE templates SET name = $1 WHERE id = $2 AND user_id = $3`,
		req.Name, templateID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM template_exercises WHERE template_id = $1`, templateID); err != nil {
		return nil, fmt.Errorf("clearing template exercises: %w", err)
	}
	for _, ex := range req.Exercises {
		_, err := tx.Exec(ctx,
			`INSERT INTO template_exercises
			   (template_id, exercise_id, order_index, sets_count,
			    target_weight, target_reps, target_duration_seconds, target_distance_km)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			templateID, ex.ExerciseID, ex.OrderIndex, ex.SetsCount,
			ex.TargetWeight, ex.TargetReps, ex.TargetDurationSeconds, ex.TargetDistanceKm)
		if err != nil {
			return nil, fmt.Errorf("inserting template exercise %d: %w", ex.ExerciseID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing template update: %w", err)
	}
	return db.GetTemplate(ctx, templateID, req.UserID)
}

// DeleteTemplate removes a template and, via cascade, its entries. Reports
// whether a row was deleted.
func (db *DB) DeleteTemplate(ctx context.Context, templateID, userID int64) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM templates WHERE id = $1 AND user_id = $2`, templateID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
