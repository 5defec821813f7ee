package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			owner       TEXT NOT NULL DEFAULT '',
			source      TEXT NOT NULL DEFAULT '',
			start_at    TEXT NOT NULL,
			end_at      TEXT NOT NULL,
			all_day     INTEGER NOT NULL DEFAULT 0 CHECK(all_day IN (0, 1)),
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK(end_at >= start_at)
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
		CREATE INDEX IF NOT EXISTS idx_events_end ON events(end_at);
		CREATE INDEX IF NOT EXISTS idx_events_source ON events(source);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
