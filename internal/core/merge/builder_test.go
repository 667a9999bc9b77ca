package merge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_argument_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_argument_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

func newBuilder(t *testing.T, cfg BuilderConfig) *Builder {
	t.Helper()
	b, err := NewBuilder(cfg, logger.NewNopLogger(), tokenizer.NewWhitespaceTokenizer())
	require.NoError(t, err)
	return b
}

func baseTable(t *testing.T) *domain.Table {
	t.Helper()
	table, err := domain.NewTable(
		[]string{"topic", "sentence_1", "sentence_2", "regression_label_binary"},
		[][]string{
			{"cloning", "cloning is wrong", "we should ban cloning of humans", "1"},
			{"cloning", "cloning helps medicine", "the weather is nice", "0"},
			{"abortion", "a b c d", "e f", "1"},
		},
	)
	require.NoError(t, err)
	return table
}

func TestBuildMergesScoreColumnsInRowOrder(t *testing.T) {
	b := newBuilder(t, DefaultBuilderConfig())
	// Deliberately awkward string forms: the merge must keep them verbatim.
	standard := []string{"0.50", "0.419999999999999", "1"}
	concept := []string{"0.7", "0.2", "0.9"}

	merged, err := b.Build(context.Background(), baseTable(t), []ScoreColumn{
		{Name: "standard", Values: standard},
		{Name: "conclusion_concept", Values: concept},
	})
	require.NoError(t, err)

	// Round-trip: re-extracting a merged column yields the source values
	// bit-identical, in original row order.
	got, err := merged.Column("standard")
	require.NoError(t, err)
	assert.Equal(t, standard, got)

	got, err = merged.Column("conclusion_concept")
	require.NoError(t, err)
	assert.Equal(t, concept, got)
}

func TestBuildComputesWordCounts(t *testing.T) {
	b := newBuilder(t, DefaultBuilderConfig())

	merged, err := b.Build(context.Background(), baseTable(t), nil)
	require.NoError(t, err)

	lenA, err := merged.IntColumn(LenColumnA)
	require.NoError(t, err)
	lenB, err := merged.IntColumn(LenColumnB)
	require.NoError(t, err)
	combined, err := merged.IntColumn(CombinedLenColumn)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 4}, lenA)
	assert.Equal(t, []int{6, 4, 2}, lenB)
	assert.Equal(t, []int{9, 7, 6}, combined)
}

func TestBuildLengthsDisabled(t *testing.T) {
	cfg := DefaultBuilderConfig()
	cfg.ComputeLengths = false
	b := newBuilder(t, cfg)

	merged, err := b.Build(context.Background(), baseTable(t), nil)
	require.NoError(t, err)
	assert.False(t, merged.HasColumn(CombinedLenColumn))
}

func TestBuildRowCountMismatch(t *testing.T) {
	b := newBuilder(t, DefaultBuilderConfig())

	_, err := b.Build(context.Background(), baseTable(t), []ScoreColumn{
		{Name: "standard", Values: []string{"0.5", "0.4"}},
	})
	require.Error(t, err)
	var mismatch *domain.RowCountMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "standard", mismatch.Column)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)
}

func TestBuildRejectsNonNumericScores(t *testing.T) {
	b := newBuilder(t, DefaultBuilderConfig())

	_, err := b.Build(context.Background(), baseTable(t), []ScoreColumn{
		{Name: "standard", Values: []string{"0.5", "n/a", "0.9"}},
	})
	require.Error(t, err)
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParseBoolToken(t *testing.T) {
	tests := []struct {
		token   string
		want    bool
		wantErr bool
	}{
		{token: "true", want: true},
		{token: "TRUE", want: true},
		{token: "1", want: true},
		{token: "false", want: false},
		{token: "False", want: false},
		{token: "0", want: false},
		{token: " true ", want: true},
		{token: "yes", wantErr: true},
		{token: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseBoolToken(tc.token)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
