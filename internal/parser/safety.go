package parser

import (
	"sort"
	"strings"

	"github.com/sells-group/locintel/internal/model"
)

// suppressedSentinel is the safety provider's marker for a suppressed or
// unavailable count. It parses to 0, not null: the provider publishes it
// for areas where the true count is below the disclosure threshold.
const suppressedSentinel = "."

// ParseSafety converts the safety provider's crime-type records. The raw
// shape differs from the tabular providers: keys are crime-type codes and
// values are registered-crime counts for the area. Codes map through the
// static code→label table; unknown codes pass through with the code as
// label. totalPopulation, when available, yields a relative form as crimes
// per 1,000 inhabitants.
func ParseSafety(raw map[string]any, totalPopulation *float64) []model.UnifiedRow {
	rows := make([]model.UnifiedRow, 0, len(raw))
	for code, rawValue := range raw {
		info := lookupKey(crimeTypeLabels, code)
		row := model.UnifiedRow{
			Key:      info.Key,
			TitleNl:  info.TitleNl,
			TitleEn:  info.TitleEn,
			Unit:     info.Unit,
			Original: originalString(rawValue),
		}
		if info.Unit == "" {
			row.Unit = "misdrijven"
		}

		count := parseCrimeCount(rawValue)
		if count == nil {
			row.Unit = "-"
			rows = append(rows, row)
			continue
		}

		row.Absolute = count
		if totalPopulation != nil && *totalPopulation > 0 {
			row.Relative = model.Float64(*count / *totalPopulation * 1000)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// parseCrimeCount applies the provider's sentinel rule before the generic
// numeric coercion.
func parseCrimeCount(v any) *float64 {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == suppressedSentinel {
		return model.Float64(0)
	}
	return coerceFloat(v)
}
