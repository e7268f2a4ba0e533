package repositories

import (
	"database/sql"
	"delivery-dispatch-service/internal/ingest"
	"delivery-dispatch-service/internal/platform/db"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Initialize the database schema. The DDL is shared by SQLite and Postgres.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY,
		pickup_lat TEXT NOT NULL,
		pickup_lng TEXT NOT NULL,
		pickup_time_from TEXT NOT NULL,
		pickup_time_to TEXT NOT NULL,
		dropoff_lat TEXT NOT NULL,
		dropoff_lng TEXT NOT NULL,
		dropoff_time_from TEXT NOT NULL,
		dropoff_time_to TEXT NOT NULL,
		pickup_address_line_1 TEXT NOT NULL,
		dropoff_address_line_1 TEXT NOT NULL
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		run_id TEXT PRIMARY KEY,
		created_at BIGINT NOT NULL,
		depot_lat DOUBLE PRECISION NOT NULL,
		depot_lng DOUBLE PRECISION NOT NULL,
		unassigned TEXT NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS plan_routes (
		run_id TEXT NOT NULL REFERENCES plans(run_id) ON DELETE CASCADE,
		route_number INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_minutes INTEGER NOT NULL,
		map_link TEXT NOT NULL,
		PRIMARY KEY (run_id, route_number)
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS plan_stops (
		run_id TEXT NOT NULL,
		route_number INTEGER NOT NULL,
		stop_number INTEGER NOT NULL,
		job TEXT NOT NULL,
		pickup_arrival TEXT NOT NULL,
		dropoff_arrival TEXT NOT NULL,
		completion TEXT NOT NULL,
		PRIMARY KEY (run_id, route_number, stop_number),
		FOREIGN KEY (run_id, route_number) REFERENCES plan_routes(run_id, route_number) ON DELETE CASCADE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
	ON plans(created_at);
	`

	statements := []string{
		createJobsQuery,
		createPlansQuery,
		createRoutesQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the jobs table from a JSON array of raw request records.
// Records are stored as given; validation happens when jobs are loaded.
func SeedFromJSON(conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed jobs: read %q: %w", jsonPath, err)
	}

	var records []ingest.RawRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return fmt.Errorf("seed jobs: parse json: %w", err)
	}

	repo := &SQLJobRepository{DB: conn, Dialect: dialect}
	if err := repo.ReplaceRecords(records); err != nil {
		return fmt.Errorf("seed jobs: %w", err)
	}

	return nil
}
