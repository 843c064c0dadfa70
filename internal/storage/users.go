package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brati10/fitness-tracker/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetUserByAPIKey resolves an API key to its account. Returns nil when the
// key is unknown.
func (db *DB) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, username, role FROM users WHERE api_key = $1`, apiKey).
		Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by api key: %w", err)
	}
	return &u, nil
}

// GetUser retrieves an account by id. Returns nil when no such user exists.
func (db *DB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, username, role FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// ListUsers retrieves all accounts, for the admin overview.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, username, role FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// UpdateUserRole changes an account's role. Reports whether a row changed.
func (db *DB) UpdateUserRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE users SET role = $1 WHERE id = $2`, role, userID)
	if err != nil {
		return false, fmt.Errorf("updating user role: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
