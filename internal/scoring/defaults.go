package scoring

import "github.com/sells-group/locintel/internal/model"

// IndicatorDefaults is the comparison policy for one indicator in the
// stable key namespace: which value form to compare, the tolerance band as
// a percentage of the baseline, and whether higher is better.
type IndicatorDefaults struct {
	ComparisonType model.ComparisonType
	Margin         float64
	Direction      model.Direction
}

// scoringDefaults maps stable indicator keys onto their comparison policy.
// Keys absent here are display-only and never scored. Margins are wide for
// structurally volatile indicators (crime rates, housing stock) and narrow
// for slow-moving ones (age distribution).
var scoringDefaults = map[string]IndicatorDefaults{
	// Demographics.
	"percentage_huishoudens_met_kinderen":    {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_huishoudens_zonder_kinderen": {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_eenpersoonshuishoudens":      {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_0_tot_15_jaar":               {model.CompareRelative, 40, model.DirectionPositive},
	"percentage_15_tot_25_jaar":              {model.CompareRelative, 40, model.DirectionPositive},
	"percentage_25_tot_45_jaar":              {model.CompareRelative, 40, model.DirectionPositive},
	"percentage_45_tot_65_jaar":              {model.CompareRelative, 40, model.DirectionPositive},
	"percentage_65_jaar_en_ouder":            {model.CompareRelative, 40, model.DirectionPositive},
	"gemiddelde_huishoudensgrootte":          {model.CompareAbsolute, 30, model.DirectionPositive},
	"gemiddeld_inkomen_per_inwoner":          {model.CompareAbsolute, 50, model.DirectionPositive},
	"bevolkingsdichtheid":                    {model.CompareAbsolute, 100, model.DirectionNegative},

	// Housing stock.
	"percentage_koopwoningen":        {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_huurwoningen":        {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_bouwjaar_voor_2000":  {model.CompareRelative, 50, model.DirectionNegative},
	"percentage_bouwjaar_vanaf_2000": {model.CompareRelative, 50, model.DirectionPositive},
	"percentage_meergezinswoningen":  {model.CompareRelative, 50, model.DirectionPositive},
	"gemiddelde_woz_waarde":          {model.CompareAbsolute, 50, model.DirectionPositive},

	// Health. Direction follows whether the condition is desirable.
	"ervaren_gezondheid_goed":         {model.CompareRelative, 25, model.DirectionPositive},
	"percentage_rokers":               {model.CompareRelative, 50, model.DirectionNegative},
	"percentage_overgewicht":          {model.CompareRelative, 50, model.DirectionNegative},
	"percentage_ernstig_overgewicht":  {model.CompareRelative, 50, model.DirectionNegative},
	"voldoet_aan_beweegrichtlijn":     {model.CompareRelative, 25, model.DirectionPositive},
	"percentage_eenzaamheid":          {model.CompareRelative, 50, model.DirectionNegative},
	"percentage_ernstige_eenzaamheid": {model.CompareRelative, 50, model.DirectionNegative},
	"risico_angst_depressie":          {model.CompareRelative, 50, model.DirectionNegative},
	"moeite_met_rondkomen":            {model.CompareRelative, 50, model.DirectionNegative},
	"percentage_mantelzorgers":        {model.CompareRelative, 50, model.DirectionPositive},

	// Livability values are already deviation indices against the national
	// reference, so they score on their own fixed band instead of a
	// baseline division; the national row lands on 0 by construction. The
	// index moves in roughly ±0.2, hence the 20 margin.
	"leefbaarheid_totaal":                {model.CompareDeviation, 20, model.DirectionPositive},
	"leefbaarheid_fysieke_omgeving":      {model.CompareDeviation, 20, model.DirectionPositive},
	"leefbaarheid_overlast_onveiligheid": {model.CompareDeviation, 20, model.DirectionNegative},
	"leefbaarheid_sociale_samenhang":     {model.CompareDeviation, 20, model.DirectionPositive},
	"leefbaarheid_voorzieningen":         {model.CompareDeviation, 20, model.DirectionPositive},
	"leefbaarheid_woningvoorraad":        {model.CompareDeviation, 20, model.DirectionPositive},

	// Safety: crime rates per 1,000 inhabitants, higher is always worse.
	"misdrijven_totaal":          {model.CompareRelative, 100, model.DirectionNegative},
	"diefstal_inbraak_woning":    {model.CompareRelative, 100, model.DirectionNegative},
	"diefstal_inbraak_schuur":    {model.CompareRelative, 100, model.DirectionNegative},
	"diefstal_uit_motorvoertuig": {model.CompareRelative, 100, model.DirectionNegative},
	"diefstal_van_motorvoertuig": {model.CompareRelative, 100, model.DirectionNegative},
	"diefstal_fiets":             {model.CompareRelative, 100, model.DirectionNegative},
	"zakkenrollerij":             {model.CompareRelative, 100, model.DirectionNegative},
	"zedenmisdrijf":              {model.CompareRelative, 100, model.DirectionNegative},
	"openlijk_geweld_persoon":    {model.CompareRelative, 100, model.DirectionNegative},
	"bedreiging":                 {model.CompareRelative, 100, model.DirectionNegative},
	"mishandeling":               {model.CompareRelative, 100, model.DirectionNegative},
	"straatroof":                 {model.CompareRelative, 100, model.DirectionNegative},
	"overval":                    {model.CompareRelative, 100, model.DirectionNegative},
	"vernieling_auto":            {model.CompareRelative, 100, model.DirectionNegative},
	"drugs_handel":               {model.CompareRelative, 100, model.DirectionNegative},
	"mensenhandel":               {model.CompareRelative, 100, model.DirectionNegative},
	"drugshandel":                {model.CompareRelative, 100, model.DirectionNegative},
	"cybercrime":                 {model.CompareRelative, 100, model.DirectionNegative},
	"discriminatie":              {model.CompareRelative, 100, model.DirectionNegative},

	// Residential market. The pipeline has no national price reference;
	// these policies apply where a baseline is supplied out of band, and
	// precomputed market scores pass through ScoreBundle untouched.
	"gemiddelde_vraagprijs":        {model.CompareAbsolute, 50, model.DirectionNegative},
	"gemiddelde_vraagprijs_per_m2": {model.CompareAbsolute, 50, model.DirectionNegative},
}

// DefaultsFor returns the comparison policy for a stable key, and whether
// the key is scoreable at all.
func DefaultsFor(key string) (IndicatorDefaults, bool) {
	d, ok := scoringDefaults[key]
	return d, ok
}
