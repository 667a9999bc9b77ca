package threshold

import (
	"sort"

	"github.com/baditaflorin/go_argument_similarity/internal/pool"
)

// candidatePool recycles the candidate buffers of the search inner loop,
// which runs once per fold per scheme.
var candidatePool = pool.NewFloat64SlicePool(1024)

// f1Score computes the F1 of classifying every row with score >= threshold
// as positive. A prediction set with no true positives scores 0.
func f1Score(scores []float64, labels []bool, threshold float64) float64 {
	var tp, fp, fn int
	for i, score := range scores {
		predicted := score >= threshold
		switch {
		case predicted && labels[i]:
			tp++
		case predicted && !labels[i]:
			fp++
		case !predicted && labels[i]:
			fn++
		}
	}
	if tp == 0 {
		return 0
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall)
}

// selectThreshold searches the distinct values of the training scores and
// returns the threshold maximizing training F1, together with that F1.
// Candidates are visited in ascending order and only strict improvements
// are kept, so ties break toward the lowest threshold (preferring higher
// recall among equal-F1 candidates). A single-valued score column yields a
// degenerate single-candidate search, not an error.
func selectThreshold(trainScores []float64, trainLabels []bool) (float64, float64) {
	staged := candidatePool.Get()
	candidates := *staged
	candidates = append(candidates, trainScores...)
	sort.Float64s(candidates)

	// Deduplicate in place on the sorted buffer.
	distinct := candidates[:1]
	for _, v := range candidates[1:] {
		if v != distinct[len(distinct)-1] {
			distinct = append(distinct, v)
		}
	}

	best := distinct[0]
	bestF1 := f1Score(trainScores, trainLabels, best)
	for _, candidate := range distinct[1:] {
		f1 := f1Score(trainScores, trainLabels, candidate)
		if f1 > bestF1 {
			best = candidate
			bestF1 = f1
		}
	}

	*staged = candidates[:0]
	candidatePool.Put(staged)
	return best, bestF1
}
