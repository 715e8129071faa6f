// Package store provides the SQLite-backed storage layer for track play counts.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"
)

//go:embed schema.sql
var schema string

var (
	// ErrDriverNotRegistered is returned when no database/sql driver exists under the requested name.
	ErrDriverNotRegistered = errors.New("sql driver not registered")

	// ErrDriverUnavailable is returned when the driver is registered but cannot work in this binary,
	// e.g. the cgo sqlite3 driver compiled with CGO_ENABLED=0.
	ErrDriverUnavailable = errors.New("sql driver unavailable")
)

// TrackStat is a track identifier paired with its play count.
type TrackStat struct {
	TrackID   string
	PlayCount int
}

// Store manages the play-count SQLite database.
type Store struct {
	db      *sql.DB
	path    string
	created bool
}

// New opens the SQLite database at the given path using the named driver.
// If the file does not exist (or is empty) it is created and the schema is applied,
// otherwise it is opened as it is.
func New(driver, path string, busyTimeout time.Duration) (*Store, error) {
	if !slices.Contains(sql.Drivers(), driver) {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotRegistered, driver)
	}

	create, err := isMissing(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s at %s: %w", driver, path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		if requiresCgo(err) {
			return nil, fmt.Errorf("%w: %w", ErrDriverUnavailable, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if create {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply base schema: %w", err)
		}
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if busyTimeout > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeout.Milliseconds())); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}
	return &Store{db: db, path: path, created: create}, nil
}

func isMissing(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	case info.IsDir():
		return false, fmt.Errorf("%s is a directory", path)
	default:
		return info.Size() == 0, nil
	}
}

// dsn returns the path as a "file:" URI, so that characters like '?' or '#' in it are
// not taken as the start of connection parameters by the drivers.
func dsn(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath()
}

// requiresCgo reports whether the error comes from the go-sqlite3 stub compiled without cgo.
func requiresCgo(err error) bool {
	return strings.Contains(err.Error(), "CGO_ENABLED=0")
}

// Path returns the path of the database file.
func (s *Store) Path() string {
	return s.path
}

// Created reports whether the database file was created (and the schema applied) by [New].
func (s *Store) Created() bool {
	return s.created
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Has reports whether a play count exists for the given track.
func (s *Store) Has(ctx context.Context, track string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM statstracker WHERE track = ?)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, track).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if track exists: %w", err)
	}
	return exists, nil
}

// Count returns the play count of the given track, or 0 if it has never been played.
func (s *Store) Count(ctx context.Context, track string) (int, error) {
	query := `SELECT playcount FROM statstracker WHERE track = ? ORDER BY rowid LIMIT 1`
	var count int
	err := s.db.QueryRowContext(ctx, query, track).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get play count: %w", err)
	}
	return count, nil
}

// Increment adds one play to the given track, creating it with a count of 1 if needed.
// It returns the updated count.
//
// The increment is computed by SQLite inside a single transaction, and does not rely on
// a unique constraint on the track column, which older databases lack.
func (s *Store) Increment(ctx context.Context, track string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE statstracker SET playcount = playcount + 1 WHERE track = ?`, track)
	if err != nil {
		return 0, fmt.Errorf("failed to update play count: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if updated == 0 {
		if _, err := tx.ExecContext(ctx, `INSERT INTO statstracker (track, playcount) VALUES (?, 1)`, track); err != nil {
			return 0, fmt.Errorf("failed to insert play count: %w", err)
		}
	}

	var count int
	query := `SELECT playcount FROM statstracker WHERE track = ? ORDER BY rowid LIMIT 1`
	if err := tx.QueryRowContext(ctx, query, track).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to read play count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

// Top returns up to n tracks ordered by play count, highest first.
// Tracks with the same count are ordered by insertion.
func (s *Store) Top(ctx context.Context, n int) ([]TrackStat, error) {
	if n <= 0 {
		return nil, nil
	}

	query := `SELECT track, playcount FROM statstracker ORDER BY playcount DESC, rowid ASC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top tracks: %w", err)
	}
	defer rows.Close()

	stats := make([]TrackStat, 0, min(n, 64))
	for rows.Next() {
		var stat TrackStat
		if err := rows.Scan(&stat.TrackID, &stat.PlayCount); err != nil {
			return nil, fmt.Errorf("failed to scan top tracks: %w", err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top tracks: %w", err)
	}
	return stats, nil
}

// Size returns the number of tracks with a play count.
func (s *Store) Size(ctx context.Context) (int, error) {
	var size int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statstracker`).Scan(&size); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return size, nil
}

// Reset removes the play counts of all tracks, returning how many were removed.
func (s *Store) Reset(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM statstracker`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset play counts: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return removed, nil
}
