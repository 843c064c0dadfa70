package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveCompleteWorkout inserts a workout with all exercises and sets in one
// transaction. The payload is trusted to contain only completed sets; the
// client filters before sending.
func (db *DB) SaveCompleteWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	workoutID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5)`,
		workoutID, req.UserID, req.Name, req.StartTime.Time, req.EndTime.Time)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}

	for _, ex := range req.Exercises {
		var workoutExerciseID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_id, order_index, comment)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			workoutID, ex.ExerciseID, ex.OrderIndex, ex.Comment).Scan(&workoutExerciseID)
		if err != nil {
			return nil, fmt.Errorf("inserting workout exercise %d: %w", ex.ExerciseID, err)
		}

		for _, set := range ex.Sets {
			_, err := tx.Exec(ctx,
				`INSERT INTO exercise_sets (workout_exercise_id, set_number, weight, reps, duration_seconds, distance_km)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				workoutExerciseID, set.SetNumber, set.Weight, set.Reps, set.DurationSeconds, set.DistanceKm)
			if err != nil {
				return nil, fmt.Errorf("inserting set %d: %w", set.SetNumber, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing workout save: %w", err)
	}

	return &models.Workout{
		ID:        workoutID,
		UserID:    req.UserID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Exercises: req.Exercises,
	}, nil
}

// QueryUserWorkouts retrieves a user's workouts, newest first, without
// exercise detail.
func (db *DB) QueryUserWorkouts(ctx context.Context, userID int64) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, start_time, end_time
		 FROM workouts
		 WHERE user_id = $1
		 ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		var start, end time.Time
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.StartTime = models.LocalTime{Time: start}
		w.EndTime = models.LocalTime{Time: end}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves one workout with its exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int64) (*models.Workout, error) {
	var w models.Workout
	var start, end time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, start_time, end_time
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`, workoutID, userID).
		Scan(&w.ID, &w.UserID, &w.Name, &start, &end)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	w.StartTime = models.LocalTime{Time: start}
	w.EndTime = models.LocalTime{Time: end}

	rows, err := db.Pool.Query(ctx,
		`SELECT we.id, we.exercise_id, we.order_index, we.comment
		 FROM workout_exercises we
		 WHERE we.workout_id = $1
		 ORDER BY we.order_index ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	type exRow struct {
		rowID int64
		data  models.ExerciseData
	}
	var exs []exRow
	for rows.Next() {
		var r exRow
		if err := rows.Scan(&r.rowID, &r.data.ExerciseID, &r.data.OrderIndex, &r.data.Comment); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		exs = append(exs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exs {
		sets, err := db.querySets(ctx, exs[i].rowID)
		if err != nil {
			return nil, err
		}
		exs[i].data.Sets = sets
		w.Exercises = append(w.Exercises, exs[i].data)
	}
	return &w, nil
}

func (db *DB) querySets(ctx context.Context, workoutExerciseID int64) ([]models.SetData, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT set_number, weight, reps, duration_seconds, distance_km
		 FROM exercise_sets
		 WHERE workout_exercise_id = $1
		 ORDER BY set_number ASC`, workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var sets []models.SetData
	for rows.Next() {
		s := models.SetData{Completed: true}
		if err := rows.Scan(&s.SetNumber, &s.Weight, &s.Reps, &s.DurationSeconds, &s.DistanceKm); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// LastPerformance retrieves the most recent persisted performance of an
// exercise for a user: its ordered sets plus the free-text comment. Returns
// nil when the user has never performed the exercise.
func (db *DB) LastPerformance(ctx context.Context, exerciseID, userID int64) (*models.PerformanceSnapshot, error) {
	var snap models.PerformanceSnapshot
	var workoutExerciseID int64
	var comment *string
	var performedAt time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT we.id, we.comment, w.id, w.start_time
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.exercise_id = $1 AND w.user_id = $2
		 ORDER BY w.start_time DESC
		 LIMIT 1`, exerciseID, userID).
		Scan(&workoutExerciseID, &comment, &snap.WorkoutID, &performedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last performance: %w", err)
	}
	snap.ExerciseID = exerciseID
	snap.PerformedAt = models.LocalTime{Time: performedAt}
	if comment != nil {
		snap.Comment = *comment
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT set_number, weight, reps, duration_seconds, distance_km
		 FROM exercise_sets
		 WHERE workout_exercise_id = $1
		 ORDER BY set_number ASC`, workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying last performance sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.PerformedSet
		if err := rows.Scan(&s.SetNumber, &s.Weight, &s.Reps, &s.DurationSeconds, &s.DistanceKm); err != nil {
			return nil, fmt.Errorf("scanning last performance set: %w", err)
		}
		snap.Sets = append(snap.Sets, s)
	}
	return &snap, rows.Err()
}
