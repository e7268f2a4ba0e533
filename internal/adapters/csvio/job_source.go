package csvio

import (
	"context"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"delivery-dispatch-service/internal/ingest"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// First data row; row 1 is the header.
const firstDataRow = 2

// CSV-backed implementation of the JobSource port.
type JobSource struct {
	Path   string
	Region geo.Bounds
}

func NewJobSource(path string, region geo.Bounds) *JobSource {
	return &JobSource{Path: path, Region: region}
}

// Read every request in the file. Columns may appear in any order but all
// must be present. Rows that fail validation are returned as failures.
func (s *JobSource) LoadJobs(ctx context.Context) (_ []domain.Job, _ []domain.RecordFailure, err error) {
	defer obs.Time(ctx, "csv.LoadJobs")(&err)

	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("load jobs: %q: %w", s.Path, ports.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("load jobs: open %q: %w", s.Path, err)
	}
	defer f.Close()

	r := newReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("load jobs: %q: %w", s.Path, ports.ErrEmptySource)
		}
		return nil, nil, fmt.Errorf("load jobs: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range ingest.Columns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("load jobs: missing column %q", col)
		}
	}

	var res ingest.Result
	for row := firstDataRow; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("load jobs: %w", err)
		}

		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("load jobs: row %d: %w", row, err)
		}

		values := make(map[string]string, len(ingest.Columns))
		for _, col := range ingest.Columns {
			if i := index[col]; i < len(fields) {
				values[col] = strings.TrimSpace(fields[i])
			}
		}
		res.Add(row, ingest.RecordFromMap(values), s.Region)
	}

	return res.Jobs, res.Failures, nil
}
