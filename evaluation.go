// evaluation.go
// Package argsimilarity evaluates how well continuous argument-similarity
// scores predict human similarity judgments. Given a table of per-pair
// scores and gold labels grouped by topic, it derives an F1-optimal
// decision threshold by topic-grouped cross-validation, aggregates the
// per-fold results into one row-count-weighted summary, optionally reports
// the Spearman correlation against a continuous gold scale, and re-scores
// performance stratified by combined sentence length.
//
// This version uses the functional options pattern to allow configuration
// of fold count, column names, mixing, parallelism and logging.
package argsimilarity

import (
	"context"
	"path/filepath"

	"github.com/baditaflorin/l"

	adapterlogger "github.com/baditaflorin/go_argument_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_argument_similarity/internal/adapters/tabular"
	"github.com/baditaflorin/go_argument_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/core/lengthbins"
	"github.com/baditaflorin/go_argument_similarity/internal/core/merge"
	"github.com/baditaflorin/go_argument_similarity/internal/core/threshold"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// Output file names written by WriteResults.
const (
	ResultsFileName = "results.csv"
	FoldLogFileName = "folds.log"
)

// ScoreColumn is one externally produced similarity-score column, named by
// its scoring scheme (e.g. "standard", "conclusion_concept"). Values keep
// their source string representation.
type ScoreColumn struct {
	Name   string
	Values []string
}

// Mix blends a proposition-level score with a conclusion- or summary-level
// score into one combined score prior to thresholding.
type Mix struct {
	Proposition string
	Complement  string
	// Weight in [0, 1]; zero value means the default 0.95.
	Weight float64
}

// Scheme names one independent evaluation unit: a plain score column, or a
// mixed pair of columns.
type Scheme struct {
	Name   string
	Column string
	Mix    *Mix
}

// Evaluation wires the score-table builder, the threshold cross-validator
// and the length-stratified analyzer behind one configured entry point.
type Evaluation struct {
	builder   *merge.Builder
	crossval  *threshold.CrossValidator
	analyzer  *lengthbins.Analyzer
	reader    ports.TableReader
	writer    ports.TableWriter
	logger    ports.Logger
	mixWeight float64
}

// Option defines a functional option for configuring the evaluation.
type Option func(*evaluationConfig)

type evaluationConfig struct {
	foldCount            int
	topicColumn          string
	goldColumn           string
	continuousGoldColumn string
	parallelism          int
	mixingWeight         float64
	textColumnA          string
	textColumnB          string
	computeLengths       bool
	binBoundaries        []int
	logger               ports.Logger
}

// WithFoldCount sets the number of topic folds (K).
func WithFoldCount(k int) Option {
	return func(cfg *evaluationConfig) {
		cfg.foldCount = k
	}
}

// WithTopicColumn sets the grouping column name.
func WithTopicColumn(name string) Option {
	return func(cfg *evaluationConfig) {
		cfg.topicColumn = name
	}
}

// WithGoldColumn sets the binary gold label column name.
func WithGoldColumn(name string) Option {
	return func(cfg *evaluationConfig) {
		cfg.goldColumn = name
	}
}

// WithContinuousGoldColumn enables the Spearman correlation report against
// the named continuous gold column.
func WithContinuousGoldColumn(name string) Option {
	return func(cfg *evaluationConfig) {
		cfg.continuousGoldColumn = name
	}
}

// WithParallelism bounds the worker pool evaluating schemes.
func WithParallelism(n int) Option {
	return func(cfg *evaluationConfig) {
		cfg.parallelism = n
	}
}

// WithMixingWeight sets the default proposition weight used by mixed
// schemes that do not carry their own weight.
func WithMixingWeight(w float64) Option {
	return func(cfg *evaluationConfig) {
		cfg.mixingWeight = w
	}
}

// WithTextColumns sets the two sentence column names of the base table.
func WithTextColumns(a, b string) Option {
	return func(cfg *evaluationConfig) {
		cfg.textColumnA = a
		cfg.textColumnB = b
	}
}

// WithLengthComputation toggles derivation of the word-count columns.
func WithLengthComputation(enabled bool) Option {
	return func(cfg *evaluationConfig) {
		cfg.computeLengths = enabled
	}
}

// WithBinBoundaries overrides the fixed length-bin edges.
func WithBinBoundaries(boundaries []int) Option {
	return func(cfg *evaluationConfig) {
		cfg.binBoundaries = boundaries
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *evaluationConfig) {
		cfg.logger = adapterlogger.FromExisting(logger)
	}
}

// New creates a new Evaluation instance.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Evaluation, error) {
	cvDefaults := threshold.DefaultConfig()
	mergeDefaults := merge.DefaultBuilderConfig()
	binDefaults := lengthbins.DefaultConfig()

	cfg := &evaluationConfig{
		foldCount:      cvDefaults.FoldCount,
		topicColumn:    cvDefaults.TopicColumn,
		goldColumn:     cvDefaults.GoldColumn,
		textColumnA:    mergeDefaults.TextColumnA,
		textColumnB:    mergeDefaults.TextColumnB,
		computeLengths: mergeDefaults.ComputeLengths,
		binBoundaries:  binDefaults.Boundaries,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.logger = adapterlogger.FromExisting(logger)
	}

	builder, err := merge.NewBuilder(merge.BuilderConfig{
		TextColumnA:    cfg.textColumnA,
		TextColumnB:    cfg.textColumnB,
		ComputeLengths: cfg.computeLengths,
	}, cfg.logger, tokenizer.NewWhitespaceTokenizer())
	if err != nil {
		return nil, err
	}

	crossval, err := threshold.NewCrossValidator(threshold.Config{
		FoldCount:            cfg.foldCount,
		TopicColumn:          cfg.topicColumn,
		GoldColumn:           cfg.goldColumn,
		ContinuousGoldColumn: cfg.continuousGoldColumn,
		Parallelism:          cfg.parallelism,
	}, cfg.logger)
	if err != nil {
		return nil, err
	}

	analyzer, err := lengthbins.NewAnalyzer(lengthbins.Config{
		CombinedLenColumn: merge.CombinedLenColumn,
		GoldColumn:        cfg.goldColumn,
		Boundaries:        cfg.binBoundaries,
	}, cfg.logger)
	if err != nil {
		return nil, err
	}

	return &Evaluation{
		builder:   builder,
		crossval:  crossval,
		analyzer:  analyzer,
		reader:    tabular.NewReader(),
		writer:    tabular.NewWriter(),
		logger:    cfg.logger,
		mixWeight: cfg.mixingWeight,
	}, nil
}

// LoadTable reads a comma-separated table with a header row.
func (e *Evaluation) LoadTable(path string) (*domain.Table, error) {
	return e.reader.ReadTable(path)
}

// LoadScoreColumn reads a headerless single-column score file.
func (e *Evaluation) LoadScoreColumn(path string) ([]string, error) {
	return e.reader.ReadScoreColumn(path)
}

// LoadThresholds reads per-scheme thresholds from a results table.
func (e *Evaluation) LoadThresholds(path string) (map[string]float64, error) {
	return tabular.ReadThresholds(path)
}

// BuildScoreTable merges the base table with the score columns and derives
// the length features.
func (e *Evaluation) BuildScoreTable(ctx context.Context, base *domain.Table, scores []ScoreColumn) (*domain.Table, error) {
	converted := make([]merge.ScoreColumn, len(scores))
	for i, col := range scores {
		converted[i] = merge.ScoreColumn{Name: col.Name, Values: col.Values}
	}
	return e.builder.Build(ctx, base, converted)
}

// EvaluateThresholds runs the cross-validated threshold search for every
// scheme over the merged table.
func (e *Evaluation) EvaluateThresholds(ctx context.Context, table *domain.Table, schemes []Scheme) ([]domain.SchemeResult, error) {
	converted := make([]threshold.Scheme, len(schemes))
	for i, s := range schemes {
		converted[i] = threshold.Scheme{Name: s.Name, Column: s.Column}
		if s.Mix != nil {
			weight := s.Mix.Weight
			if weight == 0 {
				weight = e.mixWeight
			}
			converted[i].Mix = &threshold.Mix{
				Proposition: s.Mix.Proposition,
				Complement:  s.Mix.Complement,
				Weight:      weight,
			}
		}
	}
	return e.crossval.Evaluate(ctx, table, converted)
}

// AnalyzeLengthBins recomputes per-bin metrics for each scheme at its
// previously computed threshold.
func (e *Evaluation) AnalyzeLengthBins(ctx context.Context, table *domain.Table, schemes []string, thresholds map[string]float64) ([]domain.SchemeBins, error) {
	return e.analyzer.Analyze(ctx, table, schemes, thresholds)
}

// WriteTable persists a table as CSV.
func (e *Evaluation) WriteTable(path string, table *domain.Table) error {
	return e.writer.WriteTable(path, table)
}

// WriteResults persists the results table and the verbose per-fold log
// into the output directory.
func (e *Evaluation) WriteResults(outDir string, results []domain.SchemeResult) error {
	if err := tabular.WriteResults(filepath.Join(outDir, ResultsFileName), results); err != nil {
		return err
	}
	return tabular.WriteFoldLog(filepath.Join(outDir, FoldLogFileName), results)
}

// WriteBins persists the length-stratified table.
func (e *Evaluation) WriteBins(path string, bins []domain.SchemeBins) error {
	return tabular.WriteBins(path, bins)
}

// Close releases the logger.
func (e *Evaluation) Close() error {
	return e.logger.Close()
}
