package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"delivery-dispatch-service/internal/ingest"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the JobSource port.
// Records keep their raw text so bad rows can be reported, not lost.
type SQLJobRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
	Region  geo.Bounds
}

func NewSQLJobRepository(conn *sql.DB, dialect db.Dialect, region geo.Bounds) *SQLJobRepository {
	return &SQLJobRepository{DB: conn, Dialect: dialect, Region: region}
}

// Return every stored record with its id, ordered by id.
func (s *SQLJobRepository) ListRecords(ctx context.Context) (_ []int, _ []ingest.RawRecord, err error) {
	defer obs.Time(ctx, "jobs.ListRecords")(&err)

	if s.DB == nil {
		return nil, nil, errors.New("sql job repository: DB is nil")
	}

	query := `
	SELECT
		id,
		pickup_lat,
		pickup_lng,
		pickup_time_from,
		pickup_time_to,
		dropoff_lat,
		dropoff_lng,
		dropoff_time_from,
		dropoff_time_to,
		pickup_address_line_1,
		dropoff_address_line_1
	FROM jobs
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("list records: query jobs table: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0, 64)
	records := make([]ingest.RawRecord, 0, 64)
	for rows.Next() {
		var id int
		var r ingest.RawRecord
		err := rows.Scan(
			&id,
			&r.PickupLat,
			&r.PickupLng,
			&r.PickupTimeFrom,
			&r.PickupTimeTo,
			&r.DropoffLat,
			&r.DropoffLng,
			&r.DropoffTimeFrom,
			&r.DropoffTimeTo,
			&r.PickupAddress,
			&r.DropoffAddress,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("list records: scan row: %w", err)
		}
		ids = append(ids, id)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list records: row iteration: %w", err)
	}

	return ids, records, nil
}

// Load and validate every stored record. The row id identifies failures.
func (s *SQLJobRepository) LoadJobs(ctx context.Context) ([]domain.Job, []domain.RecordFailure, error) {
	ids, records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load jobs: %w", err)
	}

	var res ingest.Result
	for i, rec := range records {
		res.Add(ids[i], rec, s.Region)
	}
	return res.Jobs, res.Failures, nil
}

// Replace the table contents with records, numbered from 1 in order.
func (s *SQLJobRepository) ReplaceRecords(records []ingest.RawRecord) error {
	if s.DB == nil {
		return errors.New("sql job repository: DB is nil")
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("replace records: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM jobs;`); err != nil {
		return fmt.Errorf("replace records: clear jobs: %w", err)
	}

	query := s.Dialect.Rebind(`
	INSERT INTO jobs (
		id,
		pickup_lat,
		pickup_lng,
		pickup_time_from,
		pickup_time_to,
		dropoff_lat,
		dropoff_lng,
		dropoff_time_from,
		dropoff_time_to,
		pickup_address_line_1,
		dropoff_address_line_1
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("replace records: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(
			i+1,
			r.PickupLat,
			r.PickupLng,
			r.PickupTimeFrom,
			r.PickupTimeTo,
			r.DropoffLat,
			r.DropoffLng,
			r.DropoffTimeFrom,
			r.DropoffTimeTo,
			r.PickupAddress,
			r.DropoffAddress,
		)
		if err != nil {
			return fmt.Errorf("replace records: insert id=%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace records: commit tx: %w", err)
	}

	return nil
}
