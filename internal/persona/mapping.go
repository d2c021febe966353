package persona

import (
	"math"

	"github.com/sells-group/locintel/internal/model"
)

// titleSubcategories maps row titles from the data tables onto the
// subcategory vocabulary persona weights are expressed in. Title strings do
// not match subcategory keys verbatim; titles absent from this table fall
// through unmapped, they never error.
var titleSubcategories = map[string]string{
	// Amenities.
	"Grote supermarkt":     "supermarkt",
	"Huisartsenpraktijk":   "huisarts",
	"Basisonderwijs":       "basisschool",
	"Kinderdagverblijf":    "kinderopvang",
	"Voortgezet onderwijs": "middelbare_school",
	"Restaurant":           "restaurant",
	"Bibliotheek":          "bibliotheek",
	"Treinstation":         "treinstation",
	"Ziekenhuis":           "ziekenhuis",
	"Apotheek":             "apotheek",
	"Sportterrein":         "sportterrein",

	// Livability.
	"Leefbaarheid totaal":      "leefbaarheid_totaal",
	"Fysieke omgeving":         "fysieke_omgeving",
	"Overlast en onveiligheid": "overlast_onveiligheid",
	"Sociale samenhang":        "sociale_samenhang",
	"Voorzieningen":            "voorzieningen",
	"Woningvoorraad":           "woningvoorraad_kwaliteit",
	"Misdrijven totaal":        "veiligheid",

	// Housing stock.
	"Koopwoningen":                 "koopwoningen",
	"Huurwoningen":                 "huurwoningen",
	"Bouwjaar vanaf 2000":          "nieuwbouw",
	"Bouwjaar voor 2000":           "ouder_bezit",
	"Meergezinswoningen":           "meergezinswoningen",
	"Gemiddelde WOZ-waarde":        "woz_waarde",
	"Gemiddelde vraagprijs per m²": "vraagprijs_per_m2",

	// Demographics.
	"Huishoudens met kinderen":  "gezinnen_met_kinderen",
	"Eenpersoonshuishoudens":    "eenpersoonshuishoudens",
	"Personen 15 tot 25 jaar":   "jongeren",
	"Personen 65 jaar en ouder": "ouderen",
	"Bevolkingsdichtheid":       "bevolkingsdichtheid",
}

// incomeTitle fans out into the three income-bracket subcategories instead
// of a single mapping. Two historical mappings of this title disagreed
// (single bracket vs. split); the split is the more complete behavior and
// is what ships here.
// TODO(product): confirm the bracket split against the single-bracket
// variant still present in the legacy dashboard export.
const incomeTitle = "Gemiddeld Inkomen per Inwoner"

const (
	bracketLow    = "laag_inkomen"
	bracketMiddle = "middeninkomen"
	bracketHigh   = "hoog_inkomen"

	// incomeBracketThreshold splits the [-1, 1] income score into three
	// bands at ±1/3.
	incomeBracketThreshold = 1.0 / 3.0
)

// IncomeBrackets converts an income comparability score into the three
// mutually exclusive bracket scores. Exactly one bracket is positive for
// any input: the outer brackets carry the score magnitude, the middle
// bracket carries the proximity to the baseline.
func IncomeBrackets(score float64) map[string]float64 {
	out := map[string]float64{bracketLow: 0, bracketMiddle: 0, bracketHigh: 0}
	switch {
	case score <= -incomeBracketThreshold:
		out[bracketLow] = -score
	case score >= incomeBracketThreshold:
		out[bracketHigh] = score
	default:
		out[bracketMiddle] = 1 - math.Abs(score)
	}
	return out
}

// LocationScores flattens a scored bundle into the persona subcategory
// vocabulary. For each indicator the finest geographic level with a
// calculated score wins (neighborhood over district over municipality over
// national). The income indicator fans out into its three brackets.
func LocationScores(bundle *model.UnifiedLocationData) map[string]*float64 {
	scores := make(map[string]*float64)

	// Coarsest first, so finer levels overwrite.
	for _, source := range model.TabularSources {
		levels := bundle.ProviderRows(source)
		if levels == nil {
			continue
		}
		for _, level := range model.AllLevels {
			for _, row := range levels[level] {
				collect(scores, row)
			}
		}
	}
	for _, row := range bundle.Amenities {
		collect(scores, row)
	}
	if bundle.Residential != nil {
		for _, row := range bundle.Residential.Rows {
			collect(scores, row)
		}
	}
	return scores
}

func collect(scores map[string]*float64, row model.UnifiedRow) {
	if row.CalculatedScore == nil {
		return
	}
	title := row.Title()
	if title == incomeTitle {
		for bracket, v := range IncomeBrackets(*row.CalculatedScore) {
			scores[bracket] = model.Float64(v)
		}
		return
	}
	sub, ok := titleSubcategories[title]
	if !ok {
		return
	}
	scores[sub] = row.CalculatedScore
}
