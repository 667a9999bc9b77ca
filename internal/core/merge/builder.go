package merge

import (
	"context"
	"strconv"
	"strings"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// Default column names of the two sentence columns.
const (
	DefaultTextColumnA = "sentence_1"
	DefaultTextColumnB = "sentence_2"
)

// Derived length column names.
const (
	LenColumnA        = "sentence_1_len"
	LenColumnB        = "sentence_2_len"
	CombinedLenColumn = "combined_len"
)

// BuilderConfig holds configuration for the score-table builder.
type BuilderConfig struct {
	// TextColumnA and TextColumnB name the two sentence columns of the
	// base table.
	TextColumnA string
	TextColumnB string
	// ComputeLengths derives per-sentence and combined word counts.
	ComputeLengths bool
}

// DefaultBuilderConfig returns a default configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		TextColumnA:    DefaultTextColumnA,
		TextColumnB:    DefaultTextColumnB,
		ComputeLengths: true,
	}
}

// Validate checks if the configuration is valid.
func (c BuilderConfig) Validate() error {
	if c.TextColumnA == "" || c.TextColumnB == "" {
		return domain.Configuration("both text column names are required")
	}
	if c.TextColumnA == c.TextColumnB {
		return domain.Configuration("text columns must differ, got %q twice", c.TextColumnA)
	}
	return nil
}

// ScoreColumn is one externally produced similarity-score column, named by
// its scoring scheme. Values keep their source string representation; row
// order is the sole join key.
type ScoreColumn struct {
	Name   string
	Values []string
}

// Builder merges a base table with one or more score columns and derives
// the auxiliary length features.
type Builder struct {
	config    BuilderConfig
	logger    ports.Logger
	tokenizer ports.Tokenizer
}

// NewBuilder creates a new score-table builder.
func NewBuilder(config BuilderConfig, logger ports.Logger, tokenizer ports.Tokenizer) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		config:    config,
		logger:    logger,
		tokenizer: tokenizer,
	}, nil
}

// Build produces the merged score table. Every score column must have
// exactly as many rows as the base table; a shorter or longer column fails
// with RowCountMismatch before any column is attached.
func (b *Builder) Build(ctx context.Context, base *domain.Table, scores []ScoreColumn) (*domain.Table, error) {
	b.logger.Debug("Building score table",
		"rows", base.Len(),
		"score_columns", len(scores),
		"compute_lengths", b.config.ComputeLengths,
	)

	if !base.HasColumn(b.config.TextColumnA) || !base.HasColumn(b.config.TextColumnB) {
		return nil, domain.Configuration("base table is missing text columns %q/%q",
			b.config.TextColumnA, b.config.TextColumnB)
	}

	// Shape and numeric checks happen before any merge work.
	for _, col := range scores {
		if col.Name == "" {
			return nil, domain.Configuration("score column without a scheme name")
		}
		if len(col.Values) != base.Len() {
			return nil, &domain.RowCountMismatch{Column: col.Name, Want: base.Len(), Got: len(col.Values)}
		}
		for i, cell := range col.Values {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				return nil, domain.Configuration("score column %q row %d: %q is not numeric", col.Name, i, cell)
			}
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	merged := base
	var err error
	for _, col := range scores {
		merged, err = merged.WithColumn(col.Name, col.Values)
		if err != nil {
			return nil, err
		}
	}

	if b.config.ComputeLengths {
		merged, err = b.appendLengths(merged)
		if err != nil {
			return nil, err
		}
	}

	b.logger.Info("Score table built",
		"rows", merged.Len(),
		"columns", len(merged.Header()),
	)
	return merged, nil
}

// appendLengths derives the word-count columns from the two text columns.
func (b *Builder) appendLengths(table *domain.Table) (*domain.Table, error) {
	textA, err := table.Column(b.config.TextColumnA)
	if err != nil {
		return nil, err
	}
	textB, err := table.Column(b.config.TextColumnB)
	if err != nil {
		return nil, err
	}

	lenA := make([]string, len(textA))
	lenB := make([]string, len(textB))
	combined := make([]string, len(textA))
	for i := range textA {
		a := b.tokenizer.Count(textA[i])
		bb := b.tokenizer.Count(textB[i])
		lenA[i] = strconv.Itoa(a)
		lenB[i] = strconv.Itoa(bb)
		combined[i] = strconv.Itoa(a + bb)
	}

	table, err = table.WithColumn(LenColumnA, lenA)
	if err != nil {
		return nil, err
	}
	table, err = table.WithColumn(LenColumnB, lenB)
	if err != nil {
		return nil, err
	}
	return table.WithColumn(CombinedLenColumn, combined)
}

// ParseBoolToken parses a boolean-like flag accepting case-insensitive
// true/false/0/1 tokens, used to toggle length computation.
func ParseBoolToken(token string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, domain.Configuration("invalid boolean token %q (want true/false/0/1)", token)
	}
}
