// Package scoring converts aggregated indicator rows into directionally
// comparable scores in [-1, +1] against a national baseline.
package scoring

import (
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/scorever"
)

// Score computes the comparability score for one row under one config.
//
// The comparison value is the row's relative or absolute form per the
// config. A nil value, a nil baseline, or a zero baseline makes the row
// unscoreable and the result nil — a zero baseline with a relative
// comparison is documented as producing null, never a division by zero.
// Otherwise the signed fractional deviation from the baseline is
// normalized by the margin band, clamped to [-1, 1], and sign-flipped for
// higher-is-worse indicators so +1 always means favorable.
//
// Deviation-typed indicators skip the baseline entirely: the value is
// already the signed deviation from its reference, so only the margin
// normalization, clamp, and direction flip apply. The national reference
// row of a deviation indicator scores 0, not nil.
func Score(row model.UnifiedRow, cfg model.ScoringConfig) *float64 {
	v := row.ComparisonValue(cfg.ComparisonType)
	if v == nil || cfg.Margin <= 0 {
		return nil
	}

	var deviation float64
	if cfg.ComparisonType == model.CompareDeviation {
		deviation = *v
	} else {
		if cfg.BaseValue == nil || *cfg.BaseValue == 0 {
			return nil
		}
		deviation = (*v - *cfg.BaseValue) / *cfg.BaseValue
	}

	normalized := clamp(deviation/(cfg.Margin/100), -1, 1)
	if cfg.Direction == model.DirectionNegative {
		normalized = -normalized
	}
	return &normalized
}

// AmenityProximityScore is the binary proximity bonus for amenity counts.
// The general formula is undefined at a zero baseline, so presence maps
// directly: any positive count scores 1, otherwise 0.
func AmenityProximityScore(count float64) float64 {
	if count > 0 {
		return 1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Engine annotates aggregated bundles with scoring configs and calculated
// scores. Scoring never mutates its input; annotated copies come back so
// the same aggregation result can be scored more than once without
// aliasing.
type Engine struct {
	defaults map[string]IndicatorDefaults
}

// NewEngine creates an Engine with the built-in indicator policy table.
func NewEngine() *Engine {
	return &Engine{defaults: scoringDefaults}
}

// ScoreRows returns a new slice in which every row with a known indicator
// policy and a usable baseline carries its ScoringConfig and
// CalculatedScore. Baselines are the national-level values keyed by stable
// key; rows without a policy or baseline pass through unscored.
func (e *Engine) ScoreRows(rows []model.UnifiedRow, baselines map[string]*float64) []model.UnifiedRow {
	if rows == nil {
		return nil
	}
	out := make([]model.UnifiedRow, len(rows))
	copy(out, rows)
	for i := range out {
		d, ok := e.defaults[out[i].Key]
		if !ok {
			continue
		}
		cfg := model.ScoringConfig{
			ComparisonType: d.ComparisonType,
			Margin:         d.Margin,
			BaseValue:      baselines[out[i].Key],
			Direction:      d.Direction,
		}
		out[i].Scoring = &cfg
		out[i].CalculatedScore = Score(out[i], cfg)
	}
	return out
}

// ScoreBundle scores every scoreable provider of a bundle against its own
// national baseline and stamps the bundle with the current scoring
// version. The input bundle is not modified.
func (e *Engine) ScoreBundle(bundle *model.UnifiedLocationData) *model.UnifiedLocationData {
	out := *bundle

	for _, source := range model.TabularSources {
		levels := bundle.ProviderRows(source)
		if levels == nil {
			continue
		}
		baselines := nationalBaselines(levels[model.LevelNational], e.defaults)
		scored := make(map[model.GeoLevel][]model.UnifiedRow, len(levels))
		for level, rows := range levels {
			scored[level] = e.ScoreRows(rows, baselines)
		}
		switch source {
		case model.SourceDemographics:
			out.Demographics = scored
		case model.SourceHealth:
			out.Health = scored
		case model.SourceLivability:
			out.Livability = scored
		case model.SourceSafety:
			out.Safety = scored
		}
	}

	out.Amenities = scoreAmenities(bundle.Amenities)
	if bundle.Residential != nil {
		res := *bundle.Residential
		res.Rows = scoreResidential(bundle.Residential.Rows)
		out.Residential = &res
	}

	out.ScoringVersion = scorever.Current
	zap.L().Debug("scoring: bundle scored",
		zap.String("address", bundle.Location.Address),
		zap.String("version", out.ScoringVersion),
	)
	return &out
}

// nationalBaselines extracts the baseline value per stable key from the
// national-level rows, using the value form the indicator's policy
// compares.
func nationalBaselines(national []model.UnifiedRow, defaults map[string]IndicatorDefaults) map[string]*float64 {
	baselines := make(map[string]*float64, len(national))
	for i := range national {
		d, ok := defaults[national[i].Key]
		if !ok {
			continue
		}
		if v := national[i].ComparisonValue(d.ComparisonType); v != nil {
			baselines[national[i].Key] = v
		}
	}
	return baselines
}

// scoreResidential copies the market rows, keeping precomputed scores
// intact. The residential provider has no national reference inside the
// pipeline, so scores computed upstream survive re-scoring and rows
// without one stay unscored rather than carrying a baseline-less config.
func scoreResidential(rows []model.UnifiedRow) []model.UnifiedRow {
	if rows == nil {
		return nil
	}
	out := make([]model.UnifiedRow, len(rows))
	copy(out, rows)
	return out
}

// scoreAmenities applies the proximity bonus to amenity count rows.
// Distance rows and rows that carry precomputed scores pass through
// unchanged.
func scoreAmenities(rows []model.UnifiedRow) []model.UnifiedRow {
	if rows == nil {
		return nil
	}
	out := make([]model.UnifiedRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].CalculatedScore != nil || out[i].Absolute == nil || out[i].Unit == "km" {
			continue
		}
		out[i].CalculatedScore = model.Float64(AmenityProximityScore(*out[i].Absolute))
	}
	return out
}
