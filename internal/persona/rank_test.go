package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locintel/internal/model"
)

func simpleDef(id string, multiplier float64) model.PersonaDefinition {
	return model.PersonaDefinition{
		ID:   id,
		Name: id,
		Weights: map[model.Category]map[string]model.PreferenceWeight{
			model.CategoryAmenities: {
				"supermarkt": {Multiplier: multiplier, CharacteristicType: "belangrijk"},
			},
		},
	}
}

func TestRank_PositionsArePermutation(t *testing.T) {
	scores := map[string]*float64{"supermarkt": model.Float64(0.8)}
	defs := []model.PersonaDefinition{
		simpleDef("a", 1), simpleDef("b", 3), simpleDef("c", 2), simpleDef("d", 5),
	}

	ranked := Rank(scores, defs)
	require.Len(t, ranked, 4)

	seenR := map[int]bool{}
	seenZ := map[int]bool{}
	for _, ps := range ranked {
		seenR[ps.RRankPosition] = true
		seenZ[ps.ZRankPosition] = true
	}
	for pos := 1; pos <= 4; pos++ {
		assert.True(t, seenR[pos], "r position %d missing", pos)
		assert.True(t, seenZ[pos], "z position %d missing", pos)
	}

	// Output comes back ordered by r position, best first.
	assert.Equal(t, "d", ranked[0].PersonaID)
	assert.Equal(t, 1, ranked[0].RRankPosition)
	assert.Equal(t, 1.0, ranked[0].RRank)
	assert.Equal(t, "a", ranked[3].PersonaID)
	assert.InDelta(t, 0.25, ranked[3].RRank, 1e-9)
}

func TestRank_WeightedTotals(t *testing.T) {
	scores := map[string]*float64{
		"supermarkt": model.Float64(0.5),
		"huisarts":   nil, // nil indicator scores are skipped, not zeroed
	}
	def := model.PersonaDefinition{
		ID:   "p",
		Name: "p",
		Weights: map[model.Category]map[string]model.PreferenceWeight{
			model.CategoryAmenities: {
				"supermarkt": {Multiplier: 4},
				"huisarts":   {Multiplier: 3},
				"bioscoop":   {Multiplier: 2}, // no score at all
			},
			model.CategoryDemographics: {
				"bevolkingsdichtheid": {Multiplier: -2},
			},
		},
	}

	ranked := Rank(map[string]*float64{
		"supermarkt":          scores["supermarkt"],
		"bevolkingsdichtheid": model.Float64(0.5),
	}, []model.PersonaDefinition{def})
	require.Len(t, ranked, 1)
	ps := ranked[0]

	// 4*0.5 + (-2)*0.5, the unscored subcategories contribute nothing.
	assert.InDelta(t, 1.0, ps.WeightedTotal, 1e-9)
	// Max uses absolute multipliers: 4+3+2+2.
	assert.InDelta(t, 11.0, ps.MaxPossibleScore, 1e-9)
	assert.InDelta(t, 2.0, ps.CategoryScores[model.CategoryAmenities], 1e-9)
	assert.InDelta(t, -1.0, ps.CategoryScores[model.CategoryDemographics], 1e-9)
	assert.Len(t, ps.DetailedScores, 4)
}

func TestRank_TiesKeepCatalogueOrder(t *testing.T) {
	scores := map[string]*float64{"supermarkt": model.Float64(0.5)}
	defs := []model.PersonaDefinition{
		simpleDef("first", 2), simpleDef("second", 2), simpleDef("third", 2),
	}

	ranked := Rank(scores, defs)
	assert.Equal(t, "first", ranked[0].PersonaID)
	assert.Equal(t, "second", ranked[1].PersonaID)
	assert.Equal(t, "third", ranked[2].PersonaID)
}

func TestRank_ZRankDegenerate(t *testing.T) {
	// All personas identical: zero deviation must not divide.
	scores := map[string]*float64{"supermarkt": model.Float64(0.5)}
	defs := []model.PersonaDefinition{
		simpleDef("a", 2), simpleDef("b", 2),
	}

	ranked := Rank(scores, defs)
	for _, ps := range ranked {
		assert.Equal(t, 0.0, ps.ZRank)
	}
	assert.Equal(t, 1, ranked[0].ZRankPosition)
	assert.Equal(t, 2, ranked[1].ZRankPosition)
}

func TestRank_ZRankStandardized(t *testing.T) {
	scores := map[string]*float64{"supermarkt": model.Float64(1)}
	defs := []model.PersonaDefinition{
		simpleDef("lo", 1), simpleDef("hi", 3),
	}

	ranked := Rank(scores, defs)
	require.Len(t, ranked, 2)

	// Totals 1 and 3: mean 2, population stddev 1 → z = ±1.
	assert.Equal(t, "hi", ranked[0].PersonaID)
	assert.InDelta(t, 1.0, ranked[0].ZRank, 1e-9)
	assert.InDelta(t, -1.0, ranked[1].ZRank, 1e-9)
}

func TestRank_NoScoreableSubcategories(t *testing.T) {
	ranked := Rank(map[string]*float64{}, []model.PersonaDefinition{
		simpleDef("a", 5), simpleDef("b", 1),
	})
	require.Len(t, ranked, 2, "personas are never excluded")
	assert.Equal(t, 0.0, ranked[0].WeightedTotal)
	assert.Equal(t, 0.0, ranked[1].WeightedTotal)
}

func TestScenarios(t *testing.T) {
	scores := map[string]*float64{"supermarkt": model.Float64(1)}
	defs := make([]model.PersonaDefinition, 0, 8)
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		defs = append(defs, simpleDef(id, float64(8-i)))
	}

	ranked := Rank(scores, defs)
	scenarios := Scenarios(ranked)
	require.Len(t, scenarios, 3)

	best := scenarios[0]
	assert.Equal(t, "beste match", best.Name)
	assert.Equal(t, []int{1, 2, 3}, best.Positions)
	require.Len(t, best.Personas, 3)
	assert.InDelta(t, (8.0+7+6)/8/3, best.MeanRRank, 1e-9)

	assert.Equal(t, "middenveld", scenarios[1].Name)
	assert.Equal(t, []int{4, 5, 6}, scenarios[1].Positions)

	worst := scenarios[2]
	assert.Equal(t, "minste match", worst.Name)
	assert.Equal(t, []int{7, 8}, worst.Positions)
}

func TestScenarios_SmallCatalogue(t *testing.T) {
	scores := map[string]*float64{"supermarkt": model.Float64(1)}
	ranked := Rank(scores, []model.PersonaDefinition{
		simpleDef("a", 2), simpleDef("b", 1),
	})

	scenarios := Scenarios(ranked)
	require.Len(t, scenarios, 3)

	// Positions outside the two-persona set are skipped, not invented.
	assert.Equal(t, []int{1, 2}, scenarios[0].Positions)
	assert.Empty(t, scenarios[1].Personas)
	assert.Equal(t, []int{1, 2}, scenarios[2].Positions)
}

func TestCatalogue(t *testing.T) {
	defs := Catalogue()
	require.NotEmpty(t, defs)

	seen := map[string]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.ID)
		assert.NotEmpty(t, def.Name)
		assert.False(t, seen[def.ID], "duplicate persona id %s", def.ID)
		seen[def.ID] = true
		assert.NotEmpty(t, def.Weights)
	}
	assert.True(t, seen["jong_gezin"])
	assert.True(t, seen["senioren"])
}
