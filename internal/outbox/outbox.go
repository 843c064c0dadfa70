// Package outbox spools finished workouts whose upload failed. The payload
// is written to a local SQLite database before the session is discarded, so
// a dead server or flaky network never loses a recorded workout; spooled
// entries are retried on the next run.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Brati10/fitness-tracker/internal/models"
	_ "modernc.org/sqlite"
)

// Entry is one spooled workout save.
type Entry struct {
	ID        int64
	Payload   models.WorkoutSaveRequest
	SpooledAt time.Time
	Attempts  int
}

// Outbox is the local spool database.
type Outbox struct {
	db *sql.DB
}

// Open opens (or creates) the spool database at dir/outbox.db.
func Open(dir string) (*Outbox, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating outbox dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "outbox.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening outbox db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pending_workouts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		payload    TEXT NOT NULL,
		spooled_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		attempts   INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating outbox table: %w", err)
	}

	return &Outbox{db: db}, nil
}

// Spool stores a workout payload for a later retry.
func (o *Outbox) Spool(req models.WorkoutSaveRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling workout payload: %w", err)
	}
	if _, err := o.db.Exec(
		`INSERT INTO pending_workouts (payload) VALUES (?)`, string(data)); err != nil {
		return fmt.Errorf("spooling workout: %w", err)
	}
	return nil
}

// Pending returns all spooled entries, oldest first. Entries whose payload
// no longer parses are skipped rather than wedging the whole spool.
func (o *Outbox) Pending() ([]Entry, error) {
	rows, err := o.db.Query(
		`SELECT id, payload, spooled_at, attempts FROM pending_workouts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying outbox: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload string
		if err := rows.Scan(&e.ID, &payload, &e.SpooledAt, &e.Attempts); err != nil {
			return nil, fmt.Errorf("scanning outbox entry: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes a spooled entry after a successful upload.
func (o *Outbox) Remove(id int64) error {
	if _, err := o.db.Exec(`DELETE FROM pending_workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("removing outbox entry %d: %w", id, err)
	}
	return nil
}

// MarkAttempt bumps the attempt counter on a failed retry.
func (o *Outbox) MarkAttempt(id int64) error {
	if _, err := o.db.Exec(
		`UPDATE pending_workouts SET attempts = attempts + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("marking outbox attempt %d: %w", id, err)
	}
	return nil
}

// Flush retries every spooled entry against the saver. Successfully saved
// entries are removed; failures stay for the next run. Returns the number
// saved.
func (o *Outbox) Flush(ctx context.Context, saver WorkoutSaver) (int, error) {
	entries, err := o.Pending()
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, e := range entries {
		if _, err := saver.SaveWorkout(ctx, e.Payload); err != nil {
			if markErr := o.MarkAttempt(e.ID); markErr != nil {
				return saved, markErr
			}
			continue
		}
		if err := o.Remove(e.ID); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

// WorkoutSaver is the upload surface Flush retries against.
type WorkoutSaver interface {
	SaveWorkout(ctx context.Context, req models.WorkoutSaveRequest) (*models.Workout, error)
}

// Close closes the spool database.
func (o *Outbox) Close() error {
	return o.db.Close()
}
