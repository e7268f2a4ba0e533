// Package csvio reads delivery requests from and writes planned routes to
// CSV files on local disk.
package csvio

import (
	"context"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// A CSV file held in memory: the header row and every data row after it.
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadTable reads a whole CSV file. A missing file wraps ports.ErrNotFound and a
// file without a header row wraps ports.ErrEmptySource.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read table %q: %w", path, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("read table %q: %w", path, err)
	}
	defer f.Close()

	r := newReader(f)
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read table %q: %w", path, ports.ErrEmptySource)
		}
		return nil, fmt.Errorf("read table %q: header: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", path, err)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// TableFile serves a CSV file through the TableReader port.
type TableFile struct {
	Path string
}

func (f TableFile) ReadTable(ctx context.Context) (_ []string, _ [][]string, err error) {
	defer obs.Time(ctx, "csv.ReadTable")(&err)

	t, err := LoadTable(f.Path)
	if err != nil {
		return nil, nil, err
	}
	return t.Header, t.Rows, nil
}

func newReader(rd io.Reader) *csv.Reader {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}
