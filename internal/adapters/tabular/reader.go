package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// Reader loads comma-separated tables and score columns from disk.
type Reader struct{}

// NewReader creates a new CSV reader adapter.
func NewReader() ports.TableReader {
	return &Reader{}
}

// ReadTable reads a comma-separated table. The first record is the header.
func (r *Reader) ReadTable(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, domain.Configuration("table %s is empty", path)
	}
	return domain.NewTable(records[0], records[1:])
}

// ReadScoreColumn reads a headerless single-column score file. Values keep
// their original string representation so a later write-out is
// bit-identical to the source file.
func (r *Reader) ReadScoreColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read score file %s: %w", path, err)
	}

	values := make([]string, len(records))
	for i, record := range records {
		values[i] = record[0]
	}
	return values, nil
}

// ReadThresholds loads a previously written results table and returns the
// per-scheme aggregated thresholds.
func ReadThresholds(path string) (map[string]float64, error) {
	r := &Reader{}
	table, err := r.ReadTable(path)
	if err != nil {
		return nil, err
	}
	schemes, err := table.Column("scheme")
	if err != nil {
		return nil, err
	}
	raw, err := table.Column("threshold")
	if err != nil {
		return nil, err
	}

	thresholds := make(map[string]float64, len(schemes))
	for i, scheme := range schemes {
		v, err := strconv.ParseFloat(raw[i], 64)
		if err != nil {
			return nil, domain.Configuration("results row %d: threshold %q is not numeric", i, raw[i])
		}
		thresholds[scheme] = v
	}
	return thresholds, nil
}
