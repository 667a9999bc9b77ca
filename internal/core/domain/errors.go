package domain

import "fmt"

// ConfigurationError reports an invalid run configuration, such as a fold
// count that does not evenly divide the topic count or a missing required
// column. It is always raised before any computation starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Configuration builds a ConfigurationError from a format string.
func Configuration(format string, args ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// RowCountMismatch reports an auxiliary score column whose row count
// disagrees with the base table. Row order is the sole join key, so a
// mismatch makes the merge undefined.
type RowCountMismatch struct {
	Column string
	Want   int
	Got    int
}

func (e *RowCountMismatch) Error() string {
	return fmt.Sprintf("row count mismatch: column %q has %d rows, base table has %d", e.Column, e.Got, e.Want)
}

// MissingThresholdError reports a length-stratified analysis requested for
// a scoring scheme that has no previously computed threshold.
type MissingThresholdError struct {
	Scheme string
}

func (e *MissingThresholdError) Error() string {
	return fmt.Sprintf("no threshold supplied for scheme %q", e.Scheme)
}

// DegenerateInputError reports input that makes the evaluation ill-defined:
// an empty training set, a binary gold column with a single class, or too
// few rows for a rank correlation. The condition is reported, never
// silently coerced to a fabricated result.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

// Degenerate builds a DegenerateInputError from a format string.
func Degenerate(format string, args ...interface{}) error {
	return &DegenerateInputError{Reason: fmt.Sprintf(format, args...)}
}
