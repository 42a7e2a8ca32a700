package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jgoulah/bikeshare/internal/trips"
	"github.com/jgoulah/bikeshare/pkg/models"
)

const timeLayout = "2006-01-02 15:04:05"

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city TEXT NOT NULL,
		line INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		start_station TEXT NOT NULL,
		end_station TEXT NOT NULL,
		trip_duration REAL NOT NULL,
		user_type TEXT NOT NULL,
		gender TEXT,
		birth_year INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_trips_city ON trips(city);

	CREATE TABLE IF NOT EXISTS imports (
		city TEXT PRIMARY KEY,
		import_id TEXT NOT NULL,
		has_gender INTEGER NOT NULL,
		has_birth_year INTEGER NOT NULL,
		trip_count INTEGER NOT NULL,
		imported_at TEXT NOT NULL
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// ImportInfo describes the last import of a city
type ImportInfo struct {
	City       string
	ImportID   string
	Schema     trips.Schema
	TripCount  int
	ImportedAt time.Time
}

// ImportCity replaces all stored trips of a city with records
func (db *DB) ImportCity(ctx context.Context, city string, records []models.Trip, schema trips.Schema) (*ImportInfo, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE city = ?`, city); err != nil {
		return nil, fmt.Errorf("clearing trips for %s: %w", city, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO trips (city, line, start_time, end_time, start_station, end_station, trip_duration, user_type, gender, birth_year)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, trip := range records {
		var endTime, gender sql.NullString
		var birthYear sql.NullInt64
		if !trip.EndTime.IsZero() {
			endTime = sql.NullString{String: trip.EndTime.Format(timeLayout), Valid: true}
		}
		if schema.HasGender {
			gender = sql.NullString{String: trip.Gender, Valid: true}
		}
		if trip.BirthYear != nil {
			birthYear = sql.NullInt64{Int64: int64(*trip.BirthYear), Valid: true}
		}

		_, err := stmt.ExecContext(ctx, city, trip.Line, trip.StartTime.Format(timeLayout), endTime,
			trip.StartStation, trip.EndStation, trip.Duration, trip.UserType, gender, birthYear)
		if err != nil {
			return nil, fmt.Errorf("inserting trip from line %d: %w", trip.Line, err)
		}
	}

	info := &ImportInfo{
		City:       city,
		ImportID:   uuid.NewString(),
		Schema:     schema,
		TripCount:  len(records),
		ImportedAt: time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO imports (city, import_id, has_gender, has_birth_year, trip_count, imported_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, city, info.ImportID, schema.HasGender, schema.HasBirthYear, info.TripCount, info.ImportedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return info, nil
}

// GetImport returns the last import of a city, or nil if it was never imported
func (db *DB) GetImport(ctx context.Context, city string) (*ImportInfo, error) {
	row := db.conn.QueryRowContext(ctx, `
	SELECT city, import_id, has_gender, has_birth_year, trip_count, imported_at
	FROM imports
	WHERE city = ?
	`, city)

	var info ImportInfo
	var importedAt string
	err := row.Scan(&info.City, &info.ImportID, &info.Schema.HasGender, &info.Schema.HasBirthYear, &info.TripCount, &importedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying import: %w", err)
	}

	info.ImportedAt, err = time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at: %w", err)
	}

	return &info, nil
}

// ReadTrips returns a city's stored trips in import order
func (db *DB) ReadTrips(ctx context.Context, city string) ([]models.Trip, trips.Schema, error) {
	info, err := db.GetImport(ctx, city)
	if err != nil {
		return nil, trips.Schema{}, &trips.DataSourceError{City: city, Path: "sqlite", Err: err}
	}
	if info == nil {
		return nil, trips.Schema{}, &trips.DataSourceError{
			City: city,
			Path: "sqlite",
			Err:  fmt.Errorf("no trips imported (run 'bikeshare import %s' first)", city),
		}
	}

	rows, err := db.conn.QueryContext(ctx, `
	SELECT line, start_time, end_time, start_station, end_station, trip_duration, user_type, gender, birth_year
	FROM trips
	WHERE city = ?
	ORDER BY id
	`, city)
	if err != nil {
		return nil, trips.Schema{}, &trips.DataSourceError{City: city, Path: "sqlite", Err: err}
	}
	defer rows.Close()

	results := make([]models.Trip, 0, info.TripCount)
	for rows.Next() {
		var trip models.Trip
		var startTimeStr string
		var endTimeStr, gender sql.NullString
		var birthYear sql.NullInt64

		if err := rows.Scan(&trip.Line, &startTimeStr, &endTimeStr, &trip.StartStation, &trip.EndStation,
			&trip.Duration, &trip.UserType, &gender, &birthYear); err != nil {
			return nil, trips.Schema{}, &trips.DataSourceError{City: city, Path: "sqlite", Err: fmt.Errorf("scanning row: %w", err)}
		}

		trip.StartTime, err = time.Parse(timeLayout, startTimeStr)
		if err != nil {
			return nil, trips.Schema{}, &trips.MalformedRecordError{Line: trip.Line, Column: trips.ColStartTime, Value: startTimeStr, Err: err}
		}

		if endTimeStr.Valid && endTimeStr.String != "" {
			trip.EndTime, err = time.Parse(timeLayout, endTimeStr.String)
			if err != nil {
				return nil, trips.Schema{}, &trips.MalformedRecordError{Line: trip.Line, Column: trips.ColEndTime, Value: endTimeStr.String, Err: err}
			}
		}

		trip.Gender = gender.String
		if birthYear.Valid {
			year := int(birthYear.Int64)
			trip.BirthYear = &year
		}

		results = append(results, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, trips.Schema{}, &trips.DataSourceError{City: city, Path: "sqlite", Err: err}
	}
	return results, info.Schema, nil
}
