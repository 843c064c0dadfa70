package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
)

// InsertWeightMeasurement records one body-weight entry.
func (db *DB) InsertWeightMeasurement(ctx context.Context, userID int64, weightKg float64, measuredAt time.Time) (*models.WeightMeasurement, error) {
	m := models.WeightMeasurement{UserID: userID, WeightKg: weightKg, MeasuredAt: measuredAt}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO weight_measurements (user_id, weight_kg, measured_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		userID, weightKg, measuredAt).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("inserting weight measurement: %w", err)
	}
	return &m, nil
}

// ListWeightMeasurements retrieves a user's body-weight history, newest
// first.
func (db *DB) ListWeightMeasurements(ctx context.Context, userID int64) ([]models.WeightMeasurement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, weight_kg, measured_at
		 FROM weight_measurements
		 WHERE user_id = $1
		 ORDER BY measured_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying weight measurements: %w", err)
	}
	defer rows.Close()

	var result []models.WeightMeasurement
	for rows.Next() {
		var m models.WeightMeasurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.WeightKg, &m.MeasuredAt); err != nil {
			return nil, fmt.Errorf("scanning weight measurement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
