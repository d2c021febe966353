package model

import "time"

// Area describes one administrative area a location falls in.
type Area struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LocationData is a resolved address as produced by the geocoding
// collaborator. Municipality is always present; district and neighborhood
// are nil when the geocoder could not resolve them.
type LocationData struct {
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RDX          float64 `json:"rd_x"`
	RDY          float64 `json:"rd_y"`
	Municipality Area    `json:"municipality"`
	District     *Area   `json:"district,omitempty"`
	Neighborhood *Area   `json:"neighborhood,omitempty"`
}

// RawLevelResponse is one provider's raw payload for a single geographic
// level: the area identifiers plus the provider-shaped key→value record.
type RawLevelResponse struct {
	Code string         `json:"code"`
	Name string         `json:"name"`
	Data map[string]any `json:"data"`
}

// RawMultiLevel is a provider response keyed by geographic level. Absent
// levels are simply missing from the map.
type RawMultiLevel map[GeoLevel]*RawLevelResponse

// ReferenceHouse is one comparable listing from the residential-market
// provider.
type ReferenceHouse struct {
	Address     string   `json:"address"`
	PostalCode  string   `json:"postal_code"`
	Price       *float64 `json:"price"`
	LivingArea  *float64 `json:"living_area"`
	YearBuilt   *int     `json:"year_built"`
	PricePerM2  *float64 `json:"price_per_m2"`
	ListingType string   `json:"listing_type"`
}

// ResidentialData is the municipality-level residential-market payload.
// Scores survive serialization round-trips so a stored bundle does not need
// the raw reference list to be re-scored.
type ResidentialData struct {
	MunicipalityCode  string           `json:"municipality_code"`
	AveragePrice      *float64         `json:"average_price"`
	AveragePricePerM2 *float64         `json:"average_price_per_m2"`
	ReferenceHouses   []ReferenceHouse `json:"reference_houses,omitempty"`
	Rows              []UnifiedRow     `json:"rows"`
}

// UnifiedLocationData is the full aggregated bundle for one address.
// Every provider map carries all four levels (empty slices where the
// provider has no data for a level); Amenities and Residential exist at
// the municipality level only.
type UnifiedLocationData struct {
	Location       LocationData              `json:"location"`
	Demographics   map[GeoLevel][]UnifiedRow `json:"demographics"`
	Health         map[GeoLevel][]UnifiedRow `json:"health"`
	Livability     map[GeoLevel][]UnifiedRow `json:"livability"`
	Safety         map[GeoLevel][]UnifiedRow `json:"safety"`
	Amenities      []UnifiedRow              `json:"amenities"`
	Residential    *ResidentialData          `json:"residential,omitempty"`
	FetchedAt      time.Time                 `json:"fetched_at"`
	ScoringVersion string                    `json:"scoring_version,omitempty"`
}

// ProviderRows returns the level map for a tabular statistical source.
// Amenities and residential data have their own structure and are not
// addressable this way.
func (u *UnifiedLocationData) ProviderRows(s Source) map[GeoLevel][]UnifiedRow {
	switch s {
	case SourceDemographics:
		return u.Demographics
	case SourceHealth:
		return u.Health
	case SourceLivability:
		return u.Livability
	case SourceSafety:
		return u.Safety
	}
	return nil
}

// TabularSources lists the providers addressable via ProviderRows.
var TabularSources = []Source{SourceDemographics, SourceHealth, SourceLivability, SourceSafety}
