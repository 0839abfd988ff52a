package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS model_predictions (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	model_type          TEXT NOT NULL,
	test_dataset        TEXT NOT NULL,
	mean_absolute_error REAL NOT NULL,
	phase               TEXT NOT NULL,
	created_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS survey_sessions (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL,
	participant  TEXT NOT NULL,
	sample_size  INTEGER NOT NULL,
	sample_count INTEGER NOT NULL,
	responses    TEXT NOT NULL DEFAULT '{}'
);
`

// EnsureSchema creates the tables this service writes to.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Timestamps are stored as RFC 3339 text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
