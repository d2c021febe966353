package model

// Source identifies the data provider family a row originates from.
type Source string

const (
	SourceDemographics Source = "demographics"
	SourceHealth       Source = "health"
	SourceLivability   Source = "livability"
	SourceSafety       Source = "safety"
	SourceResidential  Source = "residential"
	SourceAmenities    Source = "amenities"
)

// GeoLevel is one of the four nested geographic levels, coarsest to finest.
type GeoLevel string

const (
	LevelNational     GeoLevel = "national"
	LevelMunicipality GeoLevel = "municipality"
	LevelDistrict     GeoLevel = "district"
	LevelNeighborhood GeoLevel = "neighborhood"
)

// AllLevels lists the geographic levels coarsest-first. Aggregation results
// carry an entry for every level here, even when the provider has no data
// for it.
var AllLevels = []GeoLevel{LevelNational, LevelMunicipality, LevelDistrict, LevelNeighborhood}

// ComparisonType selects which value form of a row is compared against the
// baseline.
type ComparisonType string

const (
	CompareRelative ComparisonType = "relative"
	CompareAbsolute ComparisonType = "absolute"
	// CompareDeviation marks values that are themselves signed deviations
	// from a reference (livability indices), scored on a fixed band
	// without a baseline.
	CompareDeviation ComparisonType = "deviation"
)

// Direction states whether a higher indicator value is favorable.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// ScoringConfig is the per-indicator comparison policy. BaseValue is nil
// when no baseline exists for the indicator, which makes the row
// unscoreable.
type ScoringConfig struct {
	ComparisonType ComparisonType `json:"comparison_type"`
	Margin         float64        `json:"margin"`
	BaseValue      *float64       `json:"base_value"`
	Direction      Direction      `json:"direction"`
}

// UnifiedRow is one indicator at one geographic level for one provider.
// Absolute and Relative are independently nullable: an indicator may exist
// only as a count, only as a percentage, or both. Nil means "not
// applicable", never zero.
type UnifiedRow struct {
	Source          Source         `json:"source"`
	GeographicLevel GeoLevel       `json:"geographic_level"`
	GeographicCode  string         `json:"geographic_code"`
	GeographicName  string         `json:"geographic_name"`
	Key             string         `json:"key"`
	TitleNl         string         `json:"title_nl"`
	TitleEn         string         `json:"title_en"`
	Original        string         `json:"original,omitempty"`
	Absolute        *float64       `json:"absolute"`
	Relative        *float64       `json:"relative"`
	Unit            string         `json:"unit"`
	Scoring         *ScoringConfig `json:"scoring,omitempty"`
	CalculatedScore *float64       `json:"calculated_score"`
}

// Title returns the Dutch label, falling back to the English one.
func (r UnifiedRow) Title() string {
	if r.TitleNl != "" {
		return r.TitleNl
	}
	return r.TitleEn
}

// ComparisonValue returns the value the scoring engine compares for the
// given comparison type, or nil when that form is absent. Deviation
// indices are carried in the relative slot.
func (r UnifiedRow) ComparisonValue(t ComparisonType) *float64 {
	if t == CompareAbsolute {
		return r.Absolute
	}
	return r.Relative
}

// Float64 returns a pointer to v. Shorthand for building nullable fields.
func Float64(v float64) *float64 { return &v }
