// Package correlation computes the Spearman rank correlation between a
// similarity score column and a continuous gold scale. It is diagnostic
// output over the full table, deliberately outside the leakage-sensitive
// fold structure of the threshold search.
package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

// Spearman returns the Spearman rank correlation coefficient between x and
// y and its two-sided p-value. Ties receive average ranks; the p-value
// comes from the t-distribution with n-2 degrees of freedom.
func Spearman(x, y []float64) (float64, float64, error) {
	if len(x) != len(y) {
		return 0, 0, domain.Configuration("correlation inputs differ in length: %d vs %d", len(x), len(y))
	}
	n := len(x)
	if n < 3 {
		return 0, 0, domain.Degenerate("correlation needs at least 3 rows, got %d", n)
	}

	rho := stat.Correlation(ranks(x), ranks(y), nil)
	if math.IsNaN(rho) {
		return 0, 0, domain.Degenerate("correlation undefined: an input column is constant")
	}

	// Clamp against floating-point drift before the t transform.
	if rho > 1 {
		rho = 1
	} else if rho < -1 {
		rho = -1
	}
	if rho == 1 || rho == -1 {
		return rho, 0, nil
	}

	t := rho * math.Sqrt(float64(n-2)/(1-rho*rho))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p := 2 * dist.CDF(-math.Abs(t))
	return rho, p, nil
}

// ranks assigns 1-based ranks to the values, averaging the ranks of ties.
func ranks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranked := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Average rank of the tie run spanning positions i..j.
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[order[k]] = avg
		}
		i = j + 1
	}
	return ranked
}
