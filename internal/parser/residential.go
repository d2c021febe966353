package parser

import (
	"github.com/sells-group/locintel/internal/model"
)

// ParseResidential converts the residential-market provider's
// reference-house list into the municipality-level residential payload.
// Averages skip houses with missing fields rather than treating them as
// zero.
func ParseResidential(municipalityCode string, houses []model.ReferenceHouse) *model.ResidentialData {
	data := &model.ResidentialData{
		MunicipalityCode: municipalityCode,
		ReferenceHouses:  houses,
	}

	var priceSum, priceN, m2Sum, m2N float64
	for i := range houses {
		if houses[i].Price != nil {
			priceSum += *houses[i].Price
			priceN++
		}
		perM2 := houses[i].PricePerM2
		if perM2 == nil && houses[i].Price != nil && houses[i].LivingArea != nil && *houses[i].LivingArea > 0 {
			perM2 = model.Float64(*houses[i].Price / *houses[i].LivingArea)
		}
		if perM2 != nil {
			m2Sum += *perM2
			m2N++
		}
	}

	if priceN > 0 {
		data.AveragePrice = model.Float64(priceSum / priceN)
	}
	if m2N > 0 {
		data.AveragePricePerM2 = model.Float64(m2Sum / m2N)
	}

	data.Rows = residentialRows(data, float64(len(houses)))
	return data
}

func residentialRows(data *model.ResidentialData, houseCount float64) []model.UnifiedRow {
	rows := []model.UnifiedRow{
		{
			Key:      "aantal_referentiewoningen",
			TitleNl:  "Aantal referentiewoningen",
			TitleEn:  "Number of reference houses",
			Unit:     "woningen",
			Absolute: model.Float64(houseCount),
		},
	}
	if data.AveragePrice != nil {
		rows = append(rows, model.UnifiedRow{
			Key:      "gemiddelde_vraagprijs",
			TitleNl:  "Gemiddelde vraagprijs",
			TitleEn:  "Average asking price",
			Unit:     "€",
			Absolute: data.AveragePrice,
		})
	}
	if data.AveragePricePerM2 != nil {
		rows = append(rows, model.UnifiedRow{
			Key:      "gemiddelde_vraagprijs_per_m2",
			TitleNl:  "Gemiddelde vraagprijs per m²",
			TitleEn:  "Average asking price per m²",
			Unit:     "€/m²",
			Absolute: data.AveragePricePerM2,
		})
	}
	return rows
}
