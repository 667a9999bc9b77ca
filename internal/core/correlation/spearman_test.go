package correlation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

func TestSpearmanPerfectMonotone(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 20, 30, 40, 50}

	rho, p, err := Spearman(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rho)
	assert.Equal(t, 0.0, p)
}

func TestSpearmanPerfectInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{50, 40, 30, 20, 10}

	rho, p, err := Spearman(x, y)
	require.NoError(t, err)
	assert.Equal(t, -1.0, rho)
	assert.Equal(t, 0.0, p)
}

func TestSpearmanPartialAgreement(t *testing.T) {
	// No ties: rho = 1 - 6*sum(d^2)/(n*(n^2-1)) = 1 - 6*4/120 = 0.8.
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 3, 2, 5, 4}

	rho, p, err := Spearman(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, rho, 1e-12)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)
}

func TestSpearmanBounds(t *testing.T) {
	x := []float64{0.3, 0.9, 0.1, 0.7, 0.5, 0.2}
	y := []float64{0.4, 0.8, 0.3, 0.1, 0.9, 0.6}

	rho, p, err := Spearman(x, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rho, -1.0)
	assert.LessOrEqual(t, rho, 1.0)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestSpearmanAveragesTiedRanks(t *testing.T) {
	// The two tied x values share rank 2.5; the coefficient must still be
	// defined and symmetric in sign.
	x := []float64{1, 2, 2, 4}
	y := []float64{1, 2, 3, 4}

	rho, _, err := Spearman(x, y)
	require.NoError(t, err)
	assert.Greater(t, rho, 0.9)
	assert.LessOrEqual(t, rho, 1.0)
}

func TestSpearmanTooFewRows(t *testing.T) {
	_, _, err := Spearman([]float64{1, 2}, []float64{2, 1})
	require.Error(t, err)
	var degErr *domain.DegenerateInputError
	assert.ErrorAs(t, err, &degErr)
}

func TestSpearmanLengthMismatch(t *testing.T) {
	_, _, err := Spearman([]float64{1, 2, 3}, []float64{1, 2})
	require.Error(t, err)
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSpearmanConstantColumn(t *testing.T) {
	_, _, err := Spearman([]float64{1, 1, 1, 1}, []float64{1, 2, 3, 4})
	require.Error(t, err)
	var degErr *domain.DegenerateInputError
	assert.ErrorAs(t, err, &degErr)
}
