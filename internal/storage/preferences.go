package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetPreferences retrieves a user's preferences, falling back to defaults
// when no row exists.
func (db *DB) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	var p models.Preferences
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, default_rest_time, weight_unit
		 FROM user_preferences WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.DefaultRestTime, &p.WeightUnit)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("querying preferences: %w", err)
	}
	return p, nil
}

// UpsertPreferences stores a user's preferences, creating the row on first
// write.
func (db *DB) UpsertPreferences(ctx context.Context, p models.Preferences) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO user_preferences (user_id, default_rest_time, weight_unit)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET default_rest_time = EXCLUDED.default_rest_time,
		     weight_unit = EXCLUDED.weight_unit`,
		p.UserID, p.DefaultRestTime, p.WeightUnit)
	if err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	return nil
}
