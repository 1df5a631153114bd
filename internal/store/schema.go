package store

import (
	"database/sql"
)

const currentSchemaVersion = 2

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS timing_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			sequence_order INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			position_hint REAL,
			loop_marker INTEGER NOT NULL DEFAULT 0,
			recorded_at INTEGER,
			UNIQUE(subject_id, target_id),
			UNIQUE(subject_id, sequence_order)
		);

		CREATE INDEX IF NOT EXISTS idx_timing_entries_subject
			ON timing_entries(subject_id, sequence_order);

		CREATE TABLE IF NOT EXISTS subject_settings (
			subject_id TEXT PRIMARY KEY,
			total_duration_ms INTEGER
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	if err != nil {
		return err
	}

	// Migration: add recorded_at column if missing
	_, _ = db.Exec(`ALTER TABLE timing_entries ADD COLUMN recorded_at INTEGER`)

	return nil
}
