// Package persona ranks the household persona catalogue against a scored
// location using two independent ranking statistics.
package persona

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/model"
)

// Rank scores every persona against the location's subcategory scores and
// computes both ranking statistics over the full set in one pass. The
// result comes back ordered by r-rank position. A persona with no
// scoreable subcategories keeps a weighted total of 0 and ranks normally;
// only nil indicator scores are skipped inside the weighted sum, never
// whole personas.
func Rank(locationScores map[string]*float64, defs []model.PersonaDefinition) []model.PersonaScore {
	scores := make([]model.PersonaScore, 0, len(defs))
	for _, def := range defs {
		scores = append(scores, scoreOne(locationScores, def))
	}

	assignRRanks(scores)
	assignZRanks(scores)

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].RRankPosition < scores[j].RRankPosition
	})

	zap.L().Debug("persona: ranked catalogue",
		zap.Int("personas", len(scores)),
	)
	return scores
}

func scoreOne(locationScores map[string]*float64, def model.PersonaDefinition) model.PersonaScore {
	ps := model.PersonaScore{
		PersonaID:      def.ID,
		PersonaName:    def.Name,
		CategoryScores: make(map[model.Category]float64, len(model.AllCategories)),
	}

	for _, category := range model.AllCategories {
		subWeights := def.Weights[category]
		ps.CategoryScores[category] = 0

		// Deterministic breakdown order.
		subs := make([]string, 0, len(subWeights))
		for sub := range subWeights {
			subs = append(subs, sub)
		}
		sort.Strings(subs)

		for _, sub := range subs {
			w := subWeights[sub]
			ps.MaxPossibleScore += math.Abs(w.Multiplier)

			detail := model.DetailedScore{
				Category:           category,
				Subcategory:        sub,
				CharacteristicType: w.CharacteristicType,
				Multiplier:         w.Multiplier,
				BaseScore:          locationScores[sub],
			}
			if detail.BaseScore != nil {
				detail.WeightedScore = w.Multiplier * *detail.BaseScore
				ps.CategoryScores[category] += detail.WeightedScore
			}
			ps.DetailedScores = append(ps.DetailedScores, detail)
		}
		ps.WeightedTotal += ps.CategoryScores[category]
	}
	return ps
}

// assignRRanks orders personas by weighted total descending (stable: ties
// keep catalogue order) and assigns the 1-based position plus the
// fractional rank, where the best persona gets 1.0.
func assignRRanks(scores []model.PersonaScore) {
	n := len(scores)
	if n == 0 {
		return
	}
	order := sortedIndices(scores, func(ps model.PersonaScore) float64 { return ps.WeightedTotal })
	for position, idx := range order {
		scores[idx].RRankPosition = position + 1
		scores[idx].RRank = float64(n-position) / float64(n)
	}
}

// assignZRanks standardizes weighted totals against the set's mean and
// population standard deviation. A degenerate set (zero deviation) gets
// all-zero z-scores with positions following catalogue order.
func assignZRanks(scores []model.PersonaScore) {
	n := len(scores)
	if n == 0 {
		return
	}

	var sum float64
	for i := range scores {
		sum += scores[i].WeightedTotal
	}
	mean := sum / float64(n)

	var variance float64
	for i := range scores {
		d := scores[i].WeightedTotal - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(n))

	for i := range scores {
		if stddev > 0 {
			scores[i].ZRank = (scores[i].WeightedTotal - mean) / stddev
		}
	}

	order := sortedIndices(scores, func(ps model.PersonaScore) float64 { return ps.ZRank })
	for position, idx := range order {
		scores[idx].ZRankPosition = position + 1
	}
}

// sortedIndices returns persona indices ordered by the statistic
// descending, ties broken by input (catalogue) order.
func sortedIndices(scores []model.PersonaScore, stat func(model.PersonaScore) float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return stat(scores[order[a]]) > stat(scores[order[b]])
	})
	return order
}

// Scenarios builds the named persona selections over a ranked list: the
// strongest matches, the middle of the field, and the weakest matches,
// each reporting its mean fractional rank. Positions outside the set are
// skipped, so small catalogues still produce valid scenarios.
func Scenarios(ranked []model.PersonaScore) []model.Scenario {
	n := len(ranked)
	defs := []struct {
		name      string
		positions []int
	}{
		{"beste match", []int{1, 2, 3}},
		{"middenveld", []int{4, 5, 6}},
		{"minste match", []int{n - 1, n}},
	}

	byPosition := make(map[int]model.PersonaScore, n)
	for _, ps := range ranked {
		byPosition[ps.RRankPosition] = ps
	}

	scenarios := make([]model.Scenario, 0, len(defs))
	for _, d := range defs {
		s := model.Scenario{Name: d.name}
		var sum float64
		for _, pos := range d.positions {
			ps, ok := byPosition[pos]
			if !ok || pos < 1 {
				continue
			}
			s.Positions = append(s.Positions, pos)
			s.Personas = append(s.Personas, ps)
			sum += ps.RRank
		}
		if len(s.Personas) > 0 {
			s.MeanRRank = sum / float64(len(s.Personas))
		}
		scenarios = append(scenarios, s)
	}
	return scenarios
}
