// Package lengthbins re-scores a merged table stratified by combined
// sentence length. It is a lens on already-fixed cross-validation output:
// thresholds are supplied, never re-derived here.
package lengthbins

import (
	"context"
	"fmt"
	"math"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// DefaultBoundaries are the fixed bin edges over combined word count,
// producing the bins <100, 100-200, 200-250, 250-300, 300-400, 400-500
// and >=500.
var DefaultBoundaries = []int{100, 200, 250, 300, 400, 500}

// Config holds configuration for the length-stratified analyzer.
type Config struct {
	// CombinedLenColumn names the combined word-count column.
	CombinedLenColumn string
	// GoldColumn is the binary 0/1 gold label.
	GoldColumn string
	// Boundaries are the bin edges; nil means DefaultBoundaries.
	Boundaries []int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		CombinedLenColumn: "combined_len",
		GoldColumn:        "regression_label_binary",
		Boundaries:        DefaultBoundaries,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.CombinedLenColumn == "" {
		return domain.Configuration("combined length column name is required")
	}
	if c.GoldColumn == "" {
		return domain.Configuration("gold column name is required")
	}
	for i := 1; i < len(c.Boundaries); i++ {
		if c.Boundaries[i] <= c.Boundaries[i-1] {
			return domain.Configuration("bin boundaries must be strictly increasing")
		}
	}
	return nil
}

// Analyzer partitions rows into length bins and recomputes per-bin metrics
// for each scoring scheme at its externally supplied threshold.
type Analyzer struct {
	config Config
	logger ports.Logger
	bins   []domain.LengthBin
}

// NewAnalyzer creates a new length-stratified analyzer.
func NewAnalyzer(config Config, logger ports.Logger) (*Analyzer, error) {
	if config.Boundaries == nil {
		config.Boundaries = DefaultBoundaries
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		config: config,
		logger: logger,
		bins:   makeBins(config.Boundaries),
	}, nil
}

// Analyze computes mean score, F1 at the supplied threshold, and row count
// per bin for every scheme. A scheme without a threshold fails with
// MissingThresholdError before any bin work; empty bins report a count of
// 0 and no derived metrics.
func (a *Analyzer) Analyze(ctx context.Context, table *domain.Table, schemes []string, thresholds map[string]float64) ([]domain.SchemeBins, error) {
	if len(schemes) == 0 {
		return nil, domain.Configuration("no schemes to analyze")
	}
	for _, scheme := range schemes {
		if _, ok := thresholds[scheme]; !ok {
			return nil, &domain.MissingThresholdError{Scheme: scheme}
		}
	}

	combined, err := table.IntColumn(a.config.CombinedLenColumn)
	if err != nil {
		return nil, err
	}
	labels, err := table.BoolColumn(a.config.GoldColumn)
	if err != nil {
		return nil, err
	}

	// Row membership per bin, computed once and shared by all schemes.
	membership := make([][]int, len(a.bins))
	for row, length := range combined {
		for b, bin := range a.bins {
			if bin.Contains(length) {
				membership[b] = append(membership[b], row)
				break
			}
		}
	}

	a.logger.Info("Starting length-stratified analysis",
		"schemes", len(schemes),
		"bins", len(a.bins),
		"rows", table.Len(),
	)

	results := make([]domain.SchemeBins, 0, len(schemes))
	for _, scheme := range schemes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		scores, err := table.FloatColumn(scheme)
		if err != nil {
			return nil, err
		}
		threshold := thresholds[scheme]

		bins := make([]domain.BinMetrics, len(a.bins))
		for b, bin := range a.bins {
			bins[b] = binMetrics(bin, membership[b], scores, labels, threshold)
		}
		results = append(results, domain.SchemeBins{Scheme: scheme, Bins: bins})
	}
	return results, nil
}

// binMetrics derives one bin's metrics from its member rows.
func binMetrics(bin domain.LengthBin, rows []int, scores []float64, labels []bool, threshold float64) domain.BinMetrics {
	if len(rows) == 0 {
		return domain.BinMetrics{Bin: bin}
	}

	var sum float64
	var tp, fp, fn int
	for _, row := range rows {
		sum += scores[row]
		predicted := scores[row] >= threshold
		switch {
		case predicted && labels[row]:
			tp++
		case predicted && !labels[row]:
			fp++
		case !predicted && labels[row]:
			fn++
		}
	}

	var f1 float64
	if tp > 0 {
		precision := float64(tp) / float64(tp+fp)
		recall := float64(tp) / float64(tp+fn)
		f1 = 2 * precision * recall / (precision + recall)
	}
	return domain.BinMetrics{
		Bin:   bin,
		Count: len(rows),
		Mean:  sum / float64(len(rows)),
		F1:    f1,
	}
}

// makeBins builds the half-open bins from the boundary list; the last bin
// is unbounded above.
func makeBins(boundaries []int) []domain.LengthBin {
	bins := make([]domain.LengthBin, 0, len(boundaries)+1)
	lo := 0
	for _, hi := range boundaries {
		label := fmt.Sprintf("%d-%d", lo, hi)
		if lo == 0 {
			label = fmt.Sprintf("<%d", hi)
		}
		bins = append(bins, domain.LengthBin{Label: label, Lo: lo, Hi: hi})
		lo = hi
	}
	bins = append(bins, domain.LengthBin{
		Label: fmt.Sprintf(">=%d", lo),
		Lo:    lo,
		Hi:    math.MaxInt,
	})
	return bins
}
