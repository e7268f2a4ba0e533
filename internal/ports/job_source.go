package ports

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Port: a boundary for loading delivery jobs from a data source.
type JobSource interface {
	// Return the valid jobs in source order plus the records that were rejected.
	// A missing or unreadable source is an error; bad records are not.
	LoadJobs(ctx context.Context) ([]domain.Job, []domain.RecordFailure, error)
}

var ErrEmptySource = errors.New("source is empty")

// Port: raw rows of a tabular file, shown to operators as-is.
type TableReader interface {
	// Return the header and data rows. A missing source wraps ErrNotFound and
	// one without a header row wraps ErrEmptySource.
	ReadTable(ctx context.Context) (header []string, rows [][]string, err error)
}
