package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/locintel/internal/model"
)

func TestIncomeBrackets(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		positive string
		want     float64
	}{
		{"strongly below baseline", -0.9, "laag_inkomen", 0.9},
		{"exactly at low threshold", -1.0 / 3.0, "laag_inkomen", 1.0 / 3.0},
		{"near baseline", 0, "middeninkomen", 1},
		{"slightly above baseline", 0.2, "middeninkomen", 0.8},
		{"exactly at high threshold", 1.0 / 3.0, "hoog_inkomen", 1.0 / 3.0},
		{"strongly above baseline", 0.9, "hoog_inkomen", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IncomeBrackets(tt.score)
			require.Len(t, got, 3)

			positives := 0
			for bracket, v := range got {
				if v > 0 {
					positives++
					assert.Equal(t, tt.positive, bracket)
					assert.InDelta(t, tt.want, v, 1e-9)
				}
			}
			assert.Equal(t, 1, positives, "exactly one bracket is positive")
		})
	}
}

func scoredRow(level model.GeoLevel, titleNl string, score float64) model.UnifiedRow {
	return model.UnifiedRow{
		GeographicLevel: level,
		TitleNl:         titleNl,
		CalculatedScore: model.Float64(score),
	}
}

func TestLocationScores_FinestLevelWins(t *testing.T) {
	bundle := &model.UnifiedLocationData{
		Demographics: map[model.GeoLevel][]model.UnifiedRow{
			model.LevelNational: {
				scoredRow(model.LevelNational, "Huishoudens met kinderen", 0.1),
			},
			model.LevelMunicipality: {
				scoredRow(model.LevelMunicipality, "Huishoudens met kinderen", 0.4),
			},
			model.LevelNeighborhood: {
				scoredRow(model.LevelNeighborhood, "Huishoudens met kinderen", 0.9),
			},
		},
	}

	scores := LocationScores(bundle)
	require.NotNil(t, scores["gezinnen_met_kinderen"])
	assert.InDelta(t, 0.9, *scores["gezinnen_met_kinderen"], 1e-9)
}

func TestLocationScores_SkipsUnscored(t *testing.T) {
	bundle := &model.UnifiedLocationData{
		Demographics: map[model.GeoLevel][]model.UnifiedRow{
			model.LevelMunicipality: {
				{TitleNl: "Huishoudens met kinderen", CalculatedScore: nil},
				{TitleNl: "Onbekende titel", CalculatedScore: model.Float64(0.5)},
			},
		},
	}

	scores := LocationScores(bundle)
	assert.NotContains(t, scores, "gezinnen_met_kinderen")
	assert.Len(t, scores, 0, "unmapped titles fall through silently")
}

func TestLocationScores_IncomeFansOut(t *testing.T) {
	bundle := &model.UnifiedLocationData{
		Demographics: map[model.GeoLevel][]model.UnifiedRow{
			model.LevelMunicipality: {
				scoredRow(model.LevelMunicipality, "Gemiddeld Inkomen per Inwoner", 0.8),
			},
		},
	}

	scores := LocationScores(bundle)
	require.NotNil(t, scores["hoog_inkomen"])
	assert.InDelta(t, 0.8, *scores["hoog_inkomen"], 1e-9)
	require.NotNil(t, scores["laag_inkomen"])
	assert.Equal(t, 0.0, *scores["laag_inkomen"])
	require.NotNil(t, scores["middeninkomen"])
	assert.Equal(t, 0.0, *scores["middeninkomen"])
}

func TestLocationScores_AmenitiesAndResidential(t *testing.T) {
	bundle := &model.UnifiedLocationData{
		Amenities: []model.UnifiedRow{
			scoredRow(model.LevelMunicipality, "Grote supermarkt", 1),
		},
		Residential: &model.ResidentialData{
			Rows: []model.UnifiedRow{
				scoredRow(model.LevelMunicipality, "Gemiddelde vraagprijs per m²", -0.3),
			},
		},
	}

	scores := LocationScores(bundle)
	require.NotNil(t, scores["supermarkt"])
	assert.Equal(t, 1.0, *scores["supermarkt"])
	require.NotNil(t, scores["vraagprijs_per_m2"])
	assert.InDelta(t, -0.3, *scores["vraagprijs_per_m2"], 1e-9)
}
