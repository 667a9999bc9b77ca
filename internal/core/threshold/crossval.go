package threshold

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/baditaflorin/go_argument_similarity/internal/core/correlation"
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// Default column names of the grouping and gold columns.
const (
	DefaultTopicColumn = "topic"
	DefaultGoldColumn  = "regression_label_binary"
)

// Config holds configuration for the threshold cross-validator.
type Config struct {
	// FoldCount is the number of topic folds (K).
	FoldCount int
	// TopicColumn groups rows into folds.
	TopicColumn string
	// GoldColumn is the binary 0/1 gold label.
	GoldColumn string
	// ContinuousGoldColumn, when non-empty, enables the Spearman
	// correlation report over the full table.
	ContinuousGoldColumn string
	// Parallelism bounds the worker pool evaluating schemes; 0 means
	// one worker per CPU.
	Parallelism int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		FoldCount:   4,
		TopicColumn: DefaultTopicColumn,
		GoldColumn:  DefaultGoldColumn,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.FoldCount < 1 {
		return domain.Configuration("fold count must be at least 1, got %d", c.FoldCount)
	}
	if c.TopicColumn == "" {
		return domain.Configuration("topic column name is required")
	}
	if c.GoldColumn == "" {
		return domain.Configuration("gold column name is required")
	}
	if c.Parallelism < 0 {
		return domain.Configuration("parallelism must be non-negative, got %d", c.Parallelism)
	}
	return nil
}

// CrossValidator derives one F1-optimal decision threshold per scoring
// scheme by topic-grouped cross-validation. A fold's threshold is selected
// on the rows of all other folds only, then scored on the held-out rows;
// the per-fold values are aggregated into a row-count-weighted threshold
// and F1.
type CrossValidator struct {
	config Config
	logger ports.Logger
}

// NewCrossValidator creates a new threshold cross-validator.
func NewCrossValidator(config Config, logger ports.Logger) (*CrossValidator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &CrossValidator{
		config: config,
		logger: logger,
	}, nil
}

// Evaluate runs the cross-validated threshold search for every scheme and
// returns one aggregated result per scheme, in input order. All
// configuration and shape errors are detected before any search starts.
func (cv *CrossValidator) Evaluate(ctx context.Context, table *domain.Table, schemes []Scheme) ([]domain.SchemeResult, error) {
	if len(schemes) == 0 {
		return nil, domain.Configuration("no schemes to evaluate")
	}

	topics, err := table.Column(cv.config.TopicColumn)
	if err != nil {
		return nil, err
	}
	folds, err := PartitionTopics(topics, cv.config.FoldCount)
	if err != nil {
		return nil, err
	}
	if cv.config.FoldCount == 1 {
		// A single fold holds out every topic, leaving no training rows
		// and therefore no candidate threshold set.
		return nil, domain.Degenerate("fold count 1 leaves an empty training set for the only fold")
	}

	labels, err := table.BoolColumn(cv.config.GoldColumn)
	if err != nil {
		return nil, err
	}
	if err := requireBothClasses(labels, cv.config.GoldColumn); err != nil {
		return nil, err
	}

	var continuous []float64
	if cv.config.ContinuousGoldColumn != "" {
		continuous, err = table.FloatColumn(cv.config.ContinuousGoldColumn)
		if err != nil {
			return nil, err
		}
	}

	// Resolve every scheme's score vector eagerly so that missing columns
	// or bad mixes abort the run before any computation.
	scores := make([][]float64, len(schemes))
	for i, scheme := range schemes {
		scores[i], err = resolveScores(table, scheme)
		if err != nil {
			return nil, err
		}
	}

	cv.logger.Info("Starting threshold cross-validation",
		"schemes", len(schemes),
		"folds", len(folds),
		"rows", table.Len(),
	)

	parallelism := cv.config.Parallelism
	if parallelism == 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(schemes) {
		parallelism = len(schemes)
	}

	workers, err := ants.NewPool(parallelism)
	if err != nil {
		return nil, err
	}
	defer workers.Release()

	results := make([]domain.SchemeResult, len(schemes))
	errs := make([]error, len(schemes))
	var wg sync.WaitGroup
	for i := range schemes {
		i := i
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = cv.evaluateScheme(ctx, schemes[i], scores[i], topics, labels, continuous, folds)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// evaluateScheme runs the per-fold search for one scheme. Each fold's
// threshold is derived exclusively from rows outside the fold; the fold's
// own rows contribute only the held-out F1 and the aggregation weight.
func (cv *CrossValidator) evaluateScheme(ctx context.Context, scheme Scheme, scores []float64, topics []string, labels []bool, continuous []float64, folds []domain.Fold) (domain.SchemeResult, error) {
	name := scheme.ResolvedName()

	foldResults := make([]domain.FoldResult, 0, len(folds))
	for _, fold := range folds {
		select {
		case <-ctx.Done():
			return domain.SchemeResult{}, ctx.Err()
		default:
		}

		heldOut := make(map[string]struct{}, len(fold.Topics))
		for _, topic := range fold.Topics {
			heldOut[topic] = struct{}{}
		}

		var trainScores, testScores []float64
		var trainLabels, testLabels []bool
		for i, topic := range topics {
			if _, out := heldOut[topic]; out {
				testScores = append(testScores, scores[i])
				testLabels = append(testLabels, labels[i])
			} else {
				trainScores = append(trainScores, scores[i])
				trainLabels = append(trainLabels, labels[i])
			}
		}
		if len(trainScores) == 0 {
			return domain.SchemeResult{}, domain.Degenerate("fold %d has an empty training set", fold.Index)
		}

		selected, trainF1 := selectThreshold(trainScores, trainLabels)
		testF1 := f1Score(testScores, testLabels, selected)

		cv.logger.Debug("Evaluated fold",
			"scheme", name,
			"fold", fold.Index,
			"threshold", selected,
			"train_f1", trainF1,
			"test_f1", testF1,
			"test_rows", len(testScores),
		)

		foldResults = append(foldResults, domain.FoldResult{
			Fold:      fold.Index,
			Threshold: selected,
			RowCount:  len(testScores),
			F1:        testF1,
		})
	}

	result := domain.SchemeResult{
		Scheme: name,
		Folds:  foldResults,
	}
	result.Threshold, result.F1 = aggregate(foldResults)

	if continuous != nil {
		rho, p, err := correlation.Spearman(scores, continuous)
		if err != nil {
			return domain.SchemeResult{}, err
		}
		result.Correlation = &rho
		result.CorrelationP = &p
	}

	cv.logger.Info("Evaluated scheme",
		"scheme", name,
		"threshold", result.Threshold,
		"f1", result.F1,
	)
	return result, nil
}

// aggregate computes the row-count-weighted mean threshold and F1 over the
// per-fold results. Fold row counts sum to the table's total row count, so
// the weights are exact shares of the table.
func aggregate(folds []domain.FoldResult) (float64, float64) {
	var totalRows int
	for _, fr := range folds {
		totalRows += fr.RowCount
	}
	var threshold, f1 float64
	for _, fr := range folds {
		weight := float64(fr.RowCount) / float64(totalRows)
		threshold += weight * fr.Threshold
		f1 += weight * fr.F1
	}
	return threshold, f1
}

// requireBothClasses rejects a gold column holding a single class, which
// makes F1 ill-defined for every candidate threshold.
func requireBothClasses(labels []bool, column string) error {
	var positives, negatives bool
	for _, label := range labels {
		if label {
			positives = true
		} else {
			negatives = true
		}
		if positives && negatives {
			return nil
		}
	}
	return domain.Degenerate("gold column %q holds a single class", column)
}
