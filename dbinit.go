package main

import (
	"database/sql"
	"fmt"
)

const dbVersionCurrent = 1

// dbInit creates or migrates the schema. It is safe to call on every start.
func dbInit(db *sql.DB) error {
	var dbVersion int
	err := db.QueryRow("SELECT version FROM db_version WHERE name='gcalplan'").Scan(&dbVersion)
	if err != nil {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS db_version (
			name TEXT PRIMARY KEY,
			version INTEGER
		)`)
		if err != nil {
			return fmt.Errorf("error creating db_version table: %w", err)
		}
		_, err = db.Exec(`INSERT OR IGNORE INTO db_version (name, version) VALUES ('gcalplan', 0)`)
		if err != nil {
			return fmt.Errorf("error initializing db_version table: %w", err)
		}
		dbVersion = 0
	}

	if dbVersion == 0 {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tokens (
		account_name TEXT PRIMARY KEY,
		token TEXT)`)
		if err != nil {
			return fmt.Errorf("error creating tokens table: %w", err)
		}

		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sync_journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			action TEXT NOT NULL,
			course_id TEXT NOT NULL,
			calendar_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`)
		if err != nil {
			return fmt.Errorf("error creating sync_journal table: %w", err)
		}

		dbVersion = dbVersionCurrent
		_, err = db.Exec(`UPDATE db_version SET version = ? WHERE name = 'gcalplan'`, dbVersion)
		if err != nil {
			return fmt.Errorf("error updating db_version table: %w", err)
		}
	}

	return nil
}
