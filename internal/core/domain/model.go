package domain

// Fold is one cross-validation partition: an immutable, ordered set of
// topics held out together. Folds over a table are disjoint and exhaustive,
// and their order is derived from the sorted topic list so that repeated
// runs produce identical partitions.
type Fold struct {
	// Index of the fold in partition order, starting at 0.
	Index int
	// Topics held out by this fold, in sorted order.
	Topics []string
}

// FoldResult records the outcome of evaluating one held-out fold.
type FoldResult struct {
	// Fold is the held-out fold's index.
	Fold int
	// Threshold selected on the training rows (all rows outside the fold).
	Threshold float64
	// RowCount is the number of rows in the held-out fold.
	RowCount int
	// F1 achieved by Threshold on the held-out rows.
	F1 float64
}

// SchemeResult is the aggregated evaluation of one scoring scheme:
// a row-count-weighted threshold and F1 over all folds, plus the per-fold
// diagnostics they were aggregated from.
type SchemeResult struct {
	// Scheme is the name of the evaluated score column.
	Scheme string
	// Threshold is the row-count-weighted mean of the per-fold thresholds.
	Threshold float64
	// F1 is the row-count-weighted mean of the per-fold F1 values.
	F1 float64
	// Folds holds the per-fold diagnostics in fold order.
	Folds []FoldResult
	// Correlation and CorrelationP are set only when a continuous gold
	// column was configured; nil means the correlation step did not run.
	Correlation  *float64
	CorrelationP *float64
}

// LengthBin is a half-open interval [Lo, Hi) over combined word counts.
type LengthBin struct {
	// Label is the human-readable bin name, e.g. "<100" or "100-200".
	Label string
	// Lo is the inclusive lower bound in words.
	Lo int
	// Hi is the exclusive upper bound in words; the unbounded last bin
	// of a bin set has Hi set to a sentinel larger than any word count.
	Hi int
}

// Contains reports whether the combined length falls inside the bin.
func (b LengthBin) Contains(combinedLen int) bool {
	return combinedLen >= b.Lo && combinedLen < b.Hi
}

// BinMetrics holds the derived metrics of one length bin for one scheme.
// A bin with Count == 0 carries no mean or F1; consumers must check
// HasData before reading them.
type BinMetrics struct {
	Bin   LengthBin
	Count int
	Mean  float64
	F1    float64
}

// HasData reports whether the bin contained any rows.
func (m BinMetrics) HasData() bool {
	return m.Count > 0
}

// SchemeBins is the length-stratified view of one scoring scheme.
type SchemeBins struct {
	Scheme string
	Bins   []BinMetrics
}
