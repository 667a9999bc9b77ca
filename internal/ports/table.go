package ports

import (
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

// TableReader loads tabular inputs from flat files.
type TableReader interface {
	// ReadTable reads a comma-separated table with a header row.
	ReadTable(path string) (*domain.Table, error)
	// ReadScoreColumn reads a headerless single-column score file,
	// preserving the original string representation of every value.
	ReadScoreColumn(path string) ([]string, error)
}

// TableWriter persists tabular outputs to flat files.
type TableWriter interface {
	// WriteTable writes a comma-separated table with a header row.
	WriteTable(path string, table *domain.Table) error
}
