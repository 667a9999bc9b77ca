package tabular

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")

	table, err := domain.NewTable(
		[]string{"topic", "sentence_1", "standard"},
		[][]string{
			{"cloning", "cloning is wrong, always", "0.419999999999999"},
			{"abortion", "short one", "1"},
		},
	)
	require.NoError(t, err)

	require.NoError(t, NewWriter().WriteTable(path, table))
	loaded, err := NewReader().ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, table.Header(), loaded.Header())
	assert.Equal(t, table.Rows(), loaded.Rows())
}

func TestReadScoreColumnKeepsVerbatimValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.50\n0.419999999999999\n1\n"), 0o644))

	values, err := NewReader().ReadScoreColumn(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.50", "0.419999999999999", "1"}, values)
}

func TestWriteResultsWithoutCorrelationOmitsColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	results := []domain.SchemeResult{
		{Scheme: "standard", Threshold: 0.55, F1: 0.71},
		{Scheme: "concept", Threshold: 0.61, F1: 0.68},
	}
	require.NoError(t, WriteResults(path, results))

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scheme", "f1", "threshold"}, table.Header())
	assert.False(t, table.HasColumn("correlation"))
	assert.False(t, table.HasColumn("correlation_p"))
}

func TestWriteResultsWithCorrelation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	rho, p := 0.83, 0.0021
	results := []domain.SchemeResult{
		{Scheme: "standard", Threshold: 0.55, F1: 0.71, Correlation: &rho, CorrelationP: &p},
	}
	require.NoError(t, WriteResults(path, results))

	table, err := NewReader().ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scheme", "f1", "threshold", "correlation", "correlation_p"}, table.Header())

	got, err := table.FloatColumn("correlation")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.83}, got)
}

func TestReadThresholdsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	results := []domain.SchemeResult{
		{Scheme: "standard", Threshold: 0.5500000000000001, F1: 0.71},
		{Scheme: "conclusion_concept", Threshold: 0.61, F1: 0.68},
	}
	require.NoError(t, WriteResults(path, results))

	thresholds, err := ReadThresholds(path)
	require.NoError(t, err)
	// Full-precision formatting must survive the read-back exactly.
	assert.Equal(t, 0.5500000000000001, thresholds["standard"])
	assert.Equal(t, 0.61, thresholds["conclusion_concept"])
}

func TestWriteFoldLogContainsEveryFold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folds.log")

	results := []domain.SchemeResult{
		{
			Scheme:    "standard",
			Threshold: 0.6,
			F1:        0.9,
			Folds: []domain.FoldResult{
				{Fold: 0, Threshold: 0.5, RowCount: 10, F1: 0.88},
				{Fold: 1, Threshold: 0.7, RowCount: 10, F1: 0.92},
			},
		},
	}
	require.NoError(t, WriteFoldLog(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "scheme standard")
	assert.Contains(t, log, "fold 0")
	assert.Contains(t, log, "fold 1")
	assert.Contains(t, log, "weighted:")
}

func TestWriteBinsEmptyBinCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "length_bins.csv")

	bins := []domain.SchemeBins{
		{
			Scheme: "standard",
			Bins: []domain.BinMetrics{
				{Bin: domain.LengthBin{Label: "<100", Lo: 0, Hi: 100}, Count: 3, Mean: 0.5, F1: 0.8},
				{Bin: domain.LengthBin{Label: ">=100", Lo: 100, Hi: math.MaxInt}},
			},
		},
	}
	require.NoError(t, WriteBins(path, bins))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "scheme,f1_<100,mean_<100,count_<100,f1_>=100,mean_>=100,count_>=100", lines[0])
	// The empty bin keeps its cells empty instead of fabricating zeros.
	assert.Equal(t, "standard,0.8,0.5,3,,,0", lines[1])
}
