// Package history records downloaded videos in SQLite so repeat scans
// never fetch the same video twice, even after the NFO sidecars are
// gone.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the download history database handle.
type Store struct {
	db   *sql.DB
	path string
}

// Download is one recorded fetch.
type Download struct {
	ID           int64
	VideoID      string
	Title        string
	Channel      string
	URL          string
	Score        float64
	MediaType    string // "series" or "movie"
	MediaID      int
	MediaTitle   string
	Path         string
	DownloadedAt time.Time
}

// Open opens or creates the history database at the default location.
func Open() (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}
	return OpenPath(filepath.Join(configDir, "extrarr", "history.db"))
}

// OpenPath opens or creates the history database at a specific path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for concurrent daemon + CLI access
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// OpenInMemory opens an in-memory history database for testing.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_cache=shared")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping in-memory database: %w", err)
	}

	s := &Store{db: db, path: ":memory:"}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate in-memory database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path to the database file.
func (s *Store) Path() string {
	return s.path
}

// Has reports whether a video ID was already downloaded.
func (s *Store) Has(videoID string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM downloads WHERE video_id = ?", videoID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking video %s: %w", videoID, err)
	}
	return n > 0, nil
}

// Record stores a completed download. Re-recording the same video ID
// updates the existing row rather than duplicating it.
func (s *Store) Record(d *Download) error {
	_, err := s.db.Exec(`
		INSERT INTO downloads (video_id, title, channel, url, score, media_type, media_id, media_title, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			score = excluded.score,
			path = excluded.path`,
		d.VideoID, d.Title, d.Channel, d.URL, d.Score,
		d.MediaType, d.MediaID, d.MediaTitle, d.Path)
	if err != nil {
		return fmt.Errorf("recording download %s: %w", d.VideoID, err)
	}
	return nil
}

// Recent returns the newest downloads, most recent first.
func (s *Store) Recent(limit int) ([]Download, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, video_id, title, channel, url, score, media_type, media_id, media_title, path, downloaded_at
		FROM downloads
		ORDER BY downloaded_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing downloads: %w", err)
	}
	defer rows.Close()

	var downloads []Download
	for rows.Next() {
		var d Download
		if err := rows.Scan(&d.ID, &d.VideoID, &d.Title, &d.Channel, &d.URL, &d.Score,
			&d.MediaType, &d.MediaID, &d.MediaTitle, &d.Path, &d.DownloadedAt); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}

// CountByMedia returns how many videos were downloaded for one series
// or movie.
func (s *Store) CountByMedia(mediaType string, mediaID int) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM downloads WHERE media_type = ? AND media_id = ?",
		mediaType, mediaID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting downloads for %s %d: %w", mediaType, mediaID, err)
	}
	return n, nil
}

// Total returns the number of recorded downloads.
func (s *Store) Total() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM downloads").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting downloads: %w", err)
	}
	return n, nil
}
