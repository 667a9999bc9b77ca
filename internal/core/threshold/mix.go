package threshold

import (
	"github.com/baditaflorin/go_argument_similarity/internal/core/domain"
)

// DefaultMixingWeight is the weight given to the proposition-level score
// when blending it with a conclusion- or summary-level score.
const DefaultMixingWeight = 0.95

// Mix blends a proposition-level score column with a conclusion- or
// summary-level complement column into one combined score:
//
//	combined = Weight*proposition + (1-Weight)*complement
//
// The blend is a derived column computed once, upstream of the threshold
// search, never inside the search loop.
type Mix struct {
	Proposition string
	Complement  string
	// Weight in [0, 1]; zero value means DefaultMixingWeight.
	Weight float64
}

// Scheme names one independent evaluation unit: either a plain score
// column or a mixed pair of columns.
type Scheme struct {
	// Name overrides the reported scheme name; empty means the column
	// name, or "<proposition>+<complement>" for mixes.
	Name string
	// Column is the score column for plain schemes.
	Column string
	// Mix, when set, takes precedence over Column.
	Mix *Mix
}

// ResolvedName returns the name the scheme is reported under.
func (s Scheme) ResolvedName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Mix != nil {
		return s.Mix.Proposition + "+" + s.Mix.Complement
	}
	return s.Column
}

// resolveScores extracts the scheme's score vector from the table,
// computing the mixed column when the scheme is a blend.
func resolveScores(table *domain.Table, s Scheme) ([]float64, error) {
	if s.Mix == nil {
		if s.Column == "" {
			return nil, domain.Configuration("scheme without a score column")
		}
		return table.FloatColumn(s.Column)
	}

	weight := s.Mix.Weight
	if weight == 0 {
		weight = DefaultMixingWeight
	}
	if weight < 0 || weight > 1 {
		return nil, domain.Configuration("mixing weight %v outside [0, 1]", weight)
	}

	proposition, err := table.FloatColumn(s.Mix.Proposition)
	if err != nil {
		return nil, err
	}
	complement, err := table.FloatColumn(s.Mix.Complement)
	if err != nil {
		return nil, err
	}

	mixed := make([]float64, len(proposition))
	for i := range proposition {
		mixed[i] = weight*proposition[i] + (1-weight)*complement[i]
	}
	return mixed, nil
}
