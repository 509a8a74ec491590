package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/travelplanner/service-trip/internal/domain/place"

	_ "modernc.org/sqlite"
)

const sqlitePlaceSchema = `
CREATE TABLE IF NOT EXISTS places (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT    NOT NULL UNIQUE,
	lat  REAL    NOT NULL,
	lon  REAL    NOT NULL
);`

// SQLitePlaceRepository stores the place table in a SQLite file.
type SQLitePlaceRepository struct {
	db *sql.DB
}

// OpenSQLitePlaceRepository opens (creating if needed) the database at path. ":memory:" is accepted.
func OpenSQLitePlaceRepository(path string) (*SQLitePlaceRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqlitePlaceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLitePlaceRepository{db: db}, nil
}

// Close closes the database.
func (r *SQLitePlaceRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database connection.
func (r *SQLitePlaceRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// SearchPrefix scans the table in ID order. Matching happens in Go because SQLite's LOWER only folds ASCII.
func (r *SQLitePlaceRepository) SearchPrefix(ctx context.Context, prefix string) ([]place.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, lat, lon FROM places ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	records := []place.Record{}
	for rows.Next() {
		var rec place.Record
		if err := rows.Scan(&rec.Name, &rec.Lat, &rec.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		if place.MatchesPrefix(rec.Name, prefix) {
			records = append(records, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}
	return records, nil
}

// FindByName retrieves a place by its exact name.
func (r *SQLitePlaceRepository) FindByName(ctx context.Context, name string) (*place.Record, error) {
	var rec place.Record
	err := r.db.QueryRowContext(ctx,
		`SELECT name, lat, lon FROM places WHERE name = ? ORDER BY id LIMIT 1`, name,
	).Scan(&rec.Name, &rec.Lat, &rec.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, place.NewPlaceNotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find place by name: %w", err)
	}
	return &rec, nil
}

// Upsert inserts the place or updates the coordinates of the row with the same name.
func (r *SQLitePlaceRepository) Upsert(ctx context.Context, rec place.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO places (name, lat, lon) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET lat = excluded.lat, lon = excluded.lon`,
		rec.Name, rec.Lat, rec.Lon,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}
	return nil
}

// Seed loads records into an empty table in one transaction. A non-empty table is left alone.
func (r *SQLitePlaceRepository) Seed(ctx context.Context, records []place.Record) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	if count > 0 || len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO places (name, lat, lon) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Name, rec.Lat, rec.Lon); err != nil {
			return 0, fmt.Errorf("failed to seed place %s: %w", rec.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(records), nil
}
