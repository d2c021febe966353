package parser

import (
	"sort"

	"github.com/sells-group/locintel/internal/model"
)

// AmenityBucket is the raw shape of one amenity category: how many exist
// within reach and how far the nearest one is.
type AmenityBucket struct {
	Count      any `json:"count"`
	DistanceKm any `json:"distance_km"`
}

// ParseAmenities converts amenity category buckets into municipality-level
// rows: one count row per category, plus a distance row when the provider
// reports the nearest-distance measurement. The raw shape is structurally
// different from the tabular providers, hence the dedicated converter.
func ParseAmenities(buckets map[string]AmenityBucket) []model.UnifiedRow {
	rows := make([]model.UnifiedRow, 0, len(buckets)*2)
	for category, bucket := range buckets {
		info := lookupKey(amenityCategories, category)

		countRow := model.UnifiedRow{
			Key:      info.Key,
			TitleNl:  info.TitleNl,
			TitleEn:  info.TitleEn,
			Unit:     info.Unit,
			Original: originalString(bucket.Count),
		}
		if c := coerceFloat(bucket.Count); c != nil {
			countRow.Absolute = c
		} else {
			countRow.Unit = "-"
		}
		rows = append(rows, countRow)

		if d := coerceFloat(bucket.DistanceKm); d != nil {
			rows = append(rows, model.UnifiedRow{
				Key:      "afstand_tot_" + info.Key,
				TitleNl:  "Afstand tot " + info.TitleNl,
				TitleEn:  "Distance to " + info.TitleEn,
				Unit:     "km",
				Original: originalString(bucket.DistanceKm),
				Absolute: d,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}
