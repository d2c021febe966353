package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/locintel/internal/model"
)

var indicatorHeader = []string{
	"bron", "niveau", "gebiedscode", "gebiedsnaam",
	"indicator", "titel", "absoluut", "relatief", "eenheid", "score",
}

// WriteBundleXLSX writes a scored bundle as a workbook with one sheet of
// indicator rows and, when a ranking is supplied, a second sheet of persona
// results.
func WriteBundleXLSX(path string, bundle *model.UnifiedLocationData, ranking *RankingExport) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet("indicatoren")
	if err != nil {
		return eris.Wrap(err, "export: add indicator sheet")
	}
	writeStringRow(sheet, indicatorHeader)

	for _, source := range model.TabularSources {
		rowsByLevel := bundle.ProviderRows(source)
		for _, level := range model.AllLevels {
			for _, row := range rowsByLevel[level] {
				writeIndicatorRow(sheet, row)
			}
		}
	}
	for _, row := range bundle.Amenities {
		writeIndicatorRow(sheet, row)
	}
	if bundle.Residential != nil {
		for _, row := range bundle.Residential.Rows {
			writeIndicatorRow(sheet, row)
		}
	}

	if ranking != nil {
		if err := addPersonaSheet(f, ranking); err != nil {
			return err
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

func addPersonaSheet(f *xlsx.File, ranking *RankingExport) error {
	sheet, err := f.AddSheet("personas")
	if err != nil {
		return eris.Wrap(err, "export: add persona sheet")
	}
	writeStringRow(sheet, []string{
		"persona", "naam", "gewogen_totaal", "max_score",
		"r_rank", "r_positie", "z_rank", "z_positie",
	})
	for _, ps := range ranking.Personas {
		row := sheet.AddRow()
		row.AddCell().SetString(ps.PersonaID)
		row.AddCell().SetString(ps.PersonaName)
		row.AddCell().SetFloat(ps.WeightedTotal)
		row.AddCell().SetFloat(ps.MaxPossibleScore)
		row.AddCell().SetFloat(ps.RRank)
		row.AddCell().SetInt(ps.RRankPosition)
		row.AddCell().SetFloat(ps.ZRank)
		row.AddCell().SetInt(ps.ZRankPosition)
	}

	// Category detail, one block per persona in ranked order.
	detail, err := f.AddSheet("persona_detail")
	if err != nil {
		return eris.Wrap(err, "export: add detail sheet")
	}
	writeStringRow(detail, []string{"persona", "categorie", "subcategorie", "basisscore", "multiplier", "gewogen"})
	for _, ps := range ranking.Personas {
		for _, ds := range ps.DetailedScores {
			row := detail.AddRow()
			row.AddCell().SetString(ps.PersonaID)
			row.AddCell().SetString(string(ds.Category))
			row.AddCell().SetString(ds.Subcategory)
			if ds.BaseScore != nil {
				row.AddCell().SetFloat(*ds.BaseScore)
			} else {
				row.AddCell().SetString("")
			}
			row.AddCell().SetFloat(ds.Multiplier)
			row.AddCell().SetFloat(ds.WeightedScore)
		}
	}
	return nil
}

func writeIndicatorRow(sheet *xlsx.Sheet, r model.UnifiedRow) {
	row := sheet.AddRow()
	row.AddCell().SetString(string(r.Source))
	row.AddCell().SetString(string(r.GeographicLevel))
	row.AddCell().SetString(r.GeographicCode)
	row.AddCell().SetString(r.GeographicName)
	row.AddCell().SetString(r.Key)
	row.AddCell().SetString(r.Title())
	setNullableFloat(row, r.Absolute)
	setNullableFloat(row, r.Relative)
	row.AddCell().SetString(r.Unit)
	setNullableFloat(row, r.CalculatedScore)
}

func setNullableFloat(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v == nil {
		cell.SetString("")
		return
	}
	cell.SetFloatWithFormat(*v, "0.0000")
}

func writeStringRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// WriteBatchXLSX writes one workbook with an indicator sheet per location.
// Sheet names carry a 1-based index so truncated addresses stay unique.
func WriteBatchXLSX(path string, bundles []*model.UnifiedLocationData) error {
	f := xlsx.NewFile()
	for i, bundle := range bundles {
		sheet, err := f.AddSheet(sheetName(i, bundle.Location.Address))
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %d", i+1)
		}
		writeStringRow(sheet, indicatorHeader)
		for _, source := range model.TabularSources {
			rowsByLevel := bundle.ProviderRows(source)
			for _, level := range model.AllLevels {
				for _, row := range rowsByLevel[level] {
					writeIndicatorRow(sheet, row)
				}
			}
		}
		for _, row := range bundle.Amenities {
			writeIndicatorRow(sheet, row)
		}
	}
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save batch workbook")
	}
	return nil
}

// Excel caps sheet names at 31 characters.
func sheetName(index int, address string) string {
	name := fmt.Sprintf("%d %s", index+1, address)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
