package parser

import (
	"sort"

	"github.com/sells-group/locintel/internal/model"
)

// parseTabular converts one provider's flat raw record into normalized
// indicator rows using the provider's key table. totalPopulation is the
// denominator for percentage-only indicators; when nil, their absolute
// form stays nil rather than guessed.
//
// Rows come back sorted by stable key so identical input produces
// identical output regardless of map iteration order.
func parseTabular(table map[string]KeyInfo, raw map[string]any, totalPopulation *float64) []model.UnifiedRow {
	rows := make([]model.UnifiedRow, 0, len(raw))
	for rawKey, rawValue := range raw {
		info := lookupKey(table, rawKey)
		row := model.UnifiedRow{
			Key:     info.Key,
			TitleNl: info.TitleNl,
			TitleEn: info.TitleEn,
			Unit:    info.Unit,
		}

		v := coerceFloat(rawValue)
		if v == nil {
			// Malformed or non-numeric: keep the raw value for display.
			row.Original = originalString(rawValue)
			row.Unit = "-"
			rows = append(rows, row)
			continue
		}
		row.Original = originalString(rawValue)

		switch info.Kind {
		case KindPercent:
			row.Relative = v
			if totalPopulation != nil && *totalPopulation > 0 {
				row.Absolute = model.Float64(*v / 100 * *totalPopulation)
			}
		case KindScore:
			row.Relative = v
		default: // counts and amounts
			row.Absolute = v
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// ParseDemographics converts a raw demographics record. The population
// denominator for its own percentage indicators comes from the record
// itself.
func ParseDemographics(raw map[string]any) []model.UnifiedRow {
	var population *float64
	for rawKey, rawValue := range raw {
		if lookupKey(demographicsKeys, rawKey).Key == KeyPopulation {
			population = coerceFloat(rawValue)
			break
		}
	}
	return parseTabular(demographicsKeys, raw, population)
}

// ParseHealth converts a raw public-health record. All health indicators
// are percentages; totalPopulation may be nil.
func ParseHealth(raw map[string]any, totalPopulation *float64) []model.UnifiedRow {
	return parseTabular(healthKeys, raw, totalPopulation)
}

// ParseLivability converts a raw livability record. Livability values are
// deviation scores, so the population denominator is accepted for contract
// symmetry but never produces an absolute form.
func ParseLivability(raw map[string]any, totalPopulation *float64) []model.UnifiedRow {
	return parseTabular(livabilityKeys, raw, totalPopulation)
}

// Population extracts the total-population value from parsed demographics
// rows, or nil when the level has no population indicator.
func Population(rows []model.UnifiedRow) *float64 {
	for i := range rows {
		if rows[i].Key == KeyPopulation {
			return rows[i].Absolute
		}
	}
	return nil
}
