package threshold

import (
	"sort"

	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

// PartitionTopics enumerates the distinct topic values in lexicographic
// order and splits them into k contiguous equal-size folds. The explicit
// sort is the documented determinism contract: repeated runs over the same
// table always produce the same partition.
func PartitionTopics(topics []string, k int) ([]domain.Fold, error) {
	if k < 1 {
		return nil, domain.Configuration("fold count must be at least 1, got %d", k)
	}

	seen := make(map[string]struct{}, len(topics))
	distinct := make([]string, 0, len(topics))
	for _, topic := range topics {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		distinct = append(distinct, topic)
	}
	sort.Strings(distinct)

	if len(distinct) == 0 {
		return nil, domain.Configuration("no topics found")
	}
	if len(distinct)%k != 0 {
		return nil, domain.Configuration("fold count %d does not evenly divide %d topics", k, len(distinct))
	}

	size := len(distinct) / k
	folds := make([]domain.Fold, k)
	for i := 0; i < k; i++ {
		folds[i] = domain.Fold{
			Index:  i,
			Topics: distinct[i*size : (i+1)*size],
		}
	}
	return folds, nil
}
