package store

import (
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix milliseconds (UTC).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id         TEXT PRIMARY KEY,
		sequence   INTEGER NOT NULL,
		taken_at   INTEGER NOT NULL,
		primary_id TEXT NOT NULL,
		second_id  TEXT NOT NULL,
		scores     TEXT NOT NULL,
		answers    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_taken_at ON assessments (taken_at)`,

	`CREATE TABLE IF NOT EXISTS meditations (
		id          TEXT PRIMARY KEY,
		sequence    INTEGER NOT NULL,
		center      TEXT NOT NULL,
		mode        TEXT NOT NULL,
		started_at  INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		cycles      INTEGER NOT NULL DEFAULT 0,
		note        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meditations_started_at ON meditations (started_at)`,

	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
