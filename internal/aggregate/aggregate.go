// Package aggregate merges per-provider, per-level raw responses into one
// unified row table for a resolved location.
package aggregate

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/parser"
)

// Input carries everything the aggregator consumes for one location: the
// resolved location plus the raw multi-level responses of each provider.
// Absent providers or levels are nil; the output still carries an empty
// row list for every level.
type Input struct {
	Location        model.LocationData              `json:"location"`
	Demographics    model.RawMultiLevel             `json:"demographics,omitempty"`
	Health          model.RawMultiLevel             `json:"health,omitempty"`
	Livability      model.RawMultiLevel             `json:"livability,omitempty"`
	Safety          model.RawMultiLevel             `json:"safety,omitempty"`
	AmenityBuckets  map[string]parser.AmenityBucket `json:"amenities,omitempty"`
	ReferenceHouses []model.ReferenceHouse          `json:"reference_houses,omitempty"`
}

// Aggregator builds UnifiedLocationData bundles. The clock is injectable
// so tests get deterministic FetchedAt values; everything else in the
// output is a pure function of the input.
type Aggregator struct {
	now func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the wall clock used for FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate merges the raw provider responses into one bundle. Every
// provider map in the result has all four levels present; levels the
// provider does not cover hold empty, non-nil slices.
func (a *Aggregator) Aggregate(in Input) *model.UnifiedLocationData {
	out := &model.UnifiedLocationData{
		Location:  in.Location,
		FetchedAt: a.now().UTC(),
	}

	// Demographics first: the other providers need its population values.
	demographics := make(map[model.GeoLevel][]model.UnifiedRow, len(model.AllLevels))
	for _, level := range model.AllLevels {
		demographics[level] = parseLevel(in.Demographics, level, model.SourceDemographics, parser.ParseDemographics)
	}
	out.Demographics = demographics

	population := func(level model.GeoLevel) *float64 {
		if p := parser.Population(demographics[level]); p != nil {
			return p
		}
		// Degrade to the municipality denominator, then to none.
		if level != model.LevelMunicipality {
			if p := parser.Population(demographics[model.LevelMunicipality]); p != nil {
				zap.L().Debug("aggregate: population fallback to municipality",
					zap.String("level", string(level)),
				)
				return p
			}
		}
		return nil
	}

	out.Health = make(map[model.GeoLevel][]model.UnifiedRow, len(model.AllLevels))
	out.Safety = make(map[model.GeoLevel][]model.UnifiedRow, len(model.AllLevels))
	out.Livability = make(map[model.GeoLevel][]model.UnifiedRow, len(model.AllLevels))
	for _, level := range model.AllLevels {
		pop := population(level)
		out.Health[level] = parseLevel(in.Health, level, model.SourceHealth, func(raw map[string]any) []model.UnifiedRow {
			return parser.ParseHealth(raw, pop)
		})
		out.Safety[level] = parseLevel(in.Safety, level, model.SourceSafety, func(raw map[string]any) []model.UnifiedRow {
			return parser.ParseSafety(raw, pop)
		})

		// The livability source publishes no district or neighborhood
		// breakdown; those levels stay empty even when a response sneaks in.
		if level == model.LevelDistrict || level == model.LevelNeighborhood {
			out.Livability[level] = []model.UnifiedRow{}
			continue
		}
		out.Livability[level] = parseLevel(in.Livability, level, model.SourceLivability, func(raw map[string]any) []model.UnifiedRow {
			return parser.ParseLivability(raw, pop)
		})
	}

	// Amenities and residential data exist at the municipality level only.
	out.Amenities = []model.UnifiedRow{}
	if len(in.AmenityBuckets) > 0 {
		rows := parser.ParseAmenities(in.AmenityBuckets)
		stamp(rows, model.SourceAmenities, model.LevelMunicipality, in.Location.Municipality.Code, in.Location.Municipality.Name)
		out.Amenities = rows
	}
	if in.ReferenceHouses != nil {
		res := parser.ParseResidential(in.Location.Municipality.Code, in.ReferenceHouses)
		stamp(res.Rows, model.SourceResidential, model.LevelMunicipality, in.Location.Municipality.Code, in.Location.Municipality.Name)
		out.Residential = res
	}

	return out
}

// parseLevel runs one provider parser against one level's raw response,
// returning an empty slice when the level is absent.
func parseLevel(raw model.RawMultiLevel, level model.GeoLevel, source model.Source, parse func(map[string]any) []model.UnifiedRow) []model.UnifiedRow {
	resp := raw[level]
	if resp == nil || resp.Data == nil {
		return []model.UnifiedRow{}
	}
	rows := parse(resp.Data)
	stamp(rows, source, level, resp.Code, resp.Name)
	return rows
}

func stamp(rows []model.UnifiedRow, source model.Source, level model.GeoLevel, code, name string) {
	for i := range rows {
		rows[i].Source = source
		rows[i].GeographicLevel = level
		rows[i].GeographicCode = code
		rows[i].GeographicName = name
	}
}
