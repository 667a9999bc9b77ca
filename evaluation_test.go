// evaluation_test.go
package argsimilarity

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

func baseEvalTable(t *testing.T) *domain.Table {
	t.Helper()
	table, err := domain.NewTable(
		[]string{"topic", "sentence_1", "sentence_2", "regression_label_binary"},
		[][]string{
			{"cloning", "cloning is wrong", "we should ban human cloning", "1"},
			{"cloning", "cloning helps medicine", "the weather is nice today", "0"},
			{"abortion", "a b c", "d e f g", "1"},
			{"abortion", "h i", "j k l", "0"},
			{"guns", "m n o p", "q r", "1"},
			{"guns", "s t u", "v w x y z", "0"},
			{"taxes", "one two three", "four five", "1"},
			{"taxes", "six seven", "eight nine ten", "0"},
		},
	)
	if err != nil {
		t.Fatalf("building base table: %v", err)
	}
	return table
}

func TestEvaluationEndToEnd(t *testing.T) {
	eval, err := New(WithFoldCount(2))
	if err != nil {
		t.Fatalf("creating evaluation: %v", err)
	}
	defer eval.Close()

	ctx := context.Background()

	// Scores separate the labels identically in every topic, so the
	// threshold transfers perfectly across folds.
	merged, err := eval.BuildScoreTable(ctx, baseEvalTable(t), []ScoreColumn{
		{Name: "standard", Values: []string{"0.9", "0.1", "0.9", "0.1", "0.9", "0.1", "0.9", "0.1"}},
	})
	if err != nil {
		t.Fatalf("building score table: %v", err)
	}
	if !merged.HasColumn("combined_len") {
		t.Fatal("expected derived combined_len column")
	}

	results, err := eval.EvaluateThresholds(ctx, merged, []Scheme{{Column: "standard"}})
	if err != nil {
		t.Fatalf("evaluating thresholds: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	res := results[0]
	if res.Scheme != "standard" {
		t.Errorf("expected scheme standard, got %s", res.Scheme)
	}
	if res.F1 != 1.0 {
		t.Errorf("expected aggregate F1 1.0, got %v", res.F1)
	}
	if len(res.Folds) != 2 {
		t.Errorf("expected 2 folds, got %d", len(res.Folds))
	}
	if res.Correlation != nil {
		t.Error("expected no correlation without a continuous gold column")
	}

	bins, err := eval.AnalyzeLengthBins(ctx, merged, []string{"standard"},
		map[string]float64{"standard": res.Threshold})
	if err != nil {
		t.Fatalf("analyzing length bins: %v", err)
	}
	total := 0
	for _, bin := range bins[0].Bins {
		total += bin.Count
	}
	if total != merged.Len() {
		t.Errorf("bin counts sum to %d, want %d", total, merged.Len())
	}
}

func TestEvaluationWithContinuousGold(t *testing.T) {
	eval, err := New(WithFoldCount(2), WithContinuousGoldColumn("regression_label"))
	if err != nil {
		t.Fatalf("creating evaluation: %v", err)
	}
	defer eval.Close()

	table, err := domain.NewTable(
		[]string{"topic", "standard", "regression_label_binary", "regression_label"},
		[][]string{
			{"A", "0.9", "1", "0.95"},
			{"A", "0.1", "0", "0.05"},
			{"B", "0.8", "1", "0.90"},
			{"B", "0.2", "0", "0.10"},
			{"C", "0.7", "1", "0.85"},
			{"C", "0.3", "0", "0.20"},
			{"D", "0.6", "1", "0.80"},
			{"D", "0.4", "0", "0.30"},
		},
	)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}

	results, err := eval.EvaluateThresholds(context.Background(), table, []Scheme{{Column: "standard"}})
	if err != nil {
		t.Fatalf("evaluating thresholds: %v", err)
	}
	res := results[0]
	if res.Correlation == nil || res.CorrelationP == nil {
		t.Fatal("expected correlation fields with a continuous gold column")
	}
	if *res.Correlation != 1.0 {
		t.Errorf("expected perfect rank correlation, got %v", *res.Correlation)
	}
}

func TestEvaluationMixedSchemeUsesConfiguredWeight(t *testing.T) {
	eval, err := New(WithFoldCount(2), WithMixingWeight(0.8))
	if err != nil {
		t.Fatalf("creating evaluation: %v", err)
	}
	defer eval.Close()

	table, err := domain.NewTable(
		[]string{"topic", "standard", "conclusion_standard", "regression_label_binary"},
		[][]string{
			{"A", "0.9", "0.5", "1"},
			{"A", "0.1", "0.5", "0"},
			{"B", "0.9", "0.5", "1"},
			{"B", "0.1", "0.5", "0"},
		},
	)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}

	results, err := eval.EvaluateThresholds(context.Background(), table, []Scheme{
		{Mix: &Mix{Proposition: "standard", Complement: "conclusion_standard"}},
	})
	if err != nil {
		t.Fatalf("evaluating thresholds: %v", err)
	}
	res := results[0]
	if res.Scheme != "standard+conclusion_standard" {
		t.Errorf("expected mixed scheme name, got %s", res.Scheme)
	}
	// 0.8*0.9 + 0.2*0.5 = 0.82 is every positive row's mixed score and the
	// selected threshold in both folds.
	if math.Abs(res.Threshold-0.82) > 1e-12 {
		t.Errorf("expected threshold 0.82, got %v", res.Threshold)
	}
	if res.F1 != 1.0 {
		t.Errorf("expected F1 1.0, got %v", res.F1)
	}
}

func TestEvaluationWriteAndReloadResults(t *testing.T) {
	eval, err := New(WithFoldCount(2))
	if err != nil {
		t.Fatalf("creating evaluation: %v", err)
	}
	defer eval.Close()

	ctx := context.Background()
	merged, err := eval.BuildScoreTable(ctx, baseEvalTable(t), []ScoreColumn{
		{Name: "standard", Values: []string{"0.9", "0.1", "0.9", "0.1", "0.9", "0.1", "0.9", "0.1"}},
	})
	if err != nil {
		t.Fatalf("building score table: %v", err)
	}
	results, err := eval.EvaluateThresholds(ctx, merged, []Scheme{{Column: "standard"}})
	if err != nil {
		t.Fatalf("evaluating thresholds: %v", err)
	}

	outDir := t.TempDir()
	if err := eval.WriteResults(outDir, results); err != nil {
		t.Fatalf("writing results: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, FoldLogFileName)); err != nil {
		t.Fatalf("expected fold log: %v", err)
	}

	thresholds, err := eval.LoadThresholds(filepath.Join(outDir, ResultsFileName))
	if err != nil {
		t.Fatalf("loading thresholds: %v", err)
	}
	if got := thresholds["standard"]; got != results[0].Threshold {
		t.Errorf("reloaded threshold %v, want %v", got, results[0].Threshold)
	}
}

func TestEvaluationTableRoundTrip(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("creating evaluation: %v", err)
	}
	defer eval.Close()

	ctx := context.Background()
	// Awkward float strings must survive build, write and reload unchanged.
	values := []string{"0.50", "0.419999999999999", "1", "0.3", "0.7", "0.2", "0.8", "0.1"}
	merged, err := eval.BuildScoreTable(ctx, baseEvalTable(t), []ScoreColumn{
		{Name: "standard", Values: values},
	})
	if err != nil {
		t.Fatalf("building score table: %v", err)
	}

	path := filepath.Join(t.TempDir(), "merged.csv")
	if err := eval.WriteTable(path, merged); err != nil {
		t.Fatalf("writing table: %v", err)
	}
	loaded, err := eval.LoadTable(path)
	if err != nil {
		t.Fatalf("loading table: %v", err)
	}
	column, err := loaded.Column("standard")
	if err != nil {
		t.Fatalf("extracting column: %v", err)
	}
	for i, want := range values {
		if column[i] != want {
			t.Errorf("row %d: got %q, want %q", i, column[i], want)
		}
	}
}
