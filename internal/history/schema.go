package history

import "database/sql"

type migration struct {
	version int
	up      []string
}

var migrations = []migration{
	{
		version: 1,
		up: []string{
			`CREATE TABLE downloads (
				id INTEGER PRIMARY KEY AUTOINCREMENT,

				-- Video identity
				video_id TEXT NOT NULL UNIQUE,
				title TEXT NOT NULL,
				channel TEXT,
				url TEXT,
				score REAL NOT NULL DEFAULT 0,

				-- Which library item this belongs to
				media_type TEXT NOT NULL CHECK(media_type IN ('series', 'movie')),
				media_id INTEGER NOT NULL,
				media_title TEXT NOT NULL,

				-- Where the file landed
				path TEXT NOT NULL,

				downloaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			`CREATE INDEX idx_downloads_media ON downloads(media_type, media_id)`,
			`CREATE INDEX idx_downloads_time ON downloads(downloaded_at DESC)`,

			`CREATE TABLE schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,

			`INSERT INTO schema_version (version) VALUES (1)`,
		},
	},
}

func applyMigrations(db *sql.DB) error {
	var currentVersion int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&currentVersion)
	if err != nil {
		// schema_version doesn't exist yet - fresh database
		currentVersion = 0
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}

		for _, stmt := range m.up {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}
