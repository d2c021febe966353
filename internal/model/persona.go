package model

// Category is one of the four preference categories a persona weights.
type Category string

const (
	CategoryAmenities    Category = "amenities"
	CategoryLivability   Category = "livability"
	CategoryHousingStock Category = "housing_stock"
	CategoryDemographics Category = "demographics"
)

// AllCategories lists the persona preference categories.
var AllCategories = []Category{CategoryAmenities, CategoryLivability, CategoryHousingStock, CategoryDemographics}

// PreferenceWeight is one persona preference for a subcategory: how strongly
// the persona cares (Multiplier, may be negative for aversions) and what
// kind of characteristic it is.
type PreferenceWeight struct {
	Multiplier         float64 `json:"multiplier" yaml:"multiplier"`
	CharacteristicType string  `json:"characteristic_type" yaml:"characteristic_type"`
}

// PersonaDefinition is one household archetype from the static catalogue.
// Weights maps category → subcategory → preference.
type PersonaDefinition struct {
	ID          string                                   `json:"id" yaml:"id"`
	Name        string                                   `json:"name" yaml:"name"`
	Description string                                   `json:"description,omitempty" yaml:"description,omitempty"`
	Weights     map[Category]map[string]PreferenceWeight `json:"weights" yaml:"weights"`
}

// DetailedScore is the per-subcategory breakdown of one persona's result.
type DetailedScore struct {
	Category           Category `json:"category"`
	Subcategory        string   `json:"subcategory"`
	CharacteristicType string   `json:"characteristic_type"`
	Multiplier         float64  `json:"multiplier"`
	BaseScore          *float64 `json:"base_score"`
	WeightedScore      float64  `json:"weighted_score"`
}

// PersonaScore is one persona's result against one location. RRank is the
// fractional order-statistic rank (highest weighted total = 1.0); ZRank is
// the weighted total standardized against the persona set's mean and
// standard deviation. Positions are 1-based ordinals into the respective
// descending orders.
type PersonaScore struct {
	PersonaID        string               `json:"persona_id"`
	PersonaName      string               `json:"persona_name"`
	CategoryScores   map[Category]float64 `json:"category_scores"`
	WeightedTotal    float64              `json:"weighted_total"`
	MaxPossibleScore float64              `json:"max_possible_score"`
	RRank            float64              `json:"r_rank"`
	RRankPosition    int                  `json:"r_rank_position"`
	ZRank            float64              `json:"z_rank"`
	ZRankPosition    int                  `json:"z_rank_position"`
	DetailedScores   []DetailedScore      `json:"detailed_scores"`
}

// Scenario is a named selection of personas by r-rank position.
type Scenario struct {
	Name      string         `json:"name"`
	Positions []int          `json:"positions"`
	Personas  []PersonaScore `json:"personas"`
	MeanRRank float64        `json:"mean_r_rank"`
}
