package parser

// ValueKind states which value form a provider field carries.
type ValueKind string

const (
	// KindCount is an absolute count (inhabitants, dwellings).
	KindCount ValueKind = "count"
	// KindPercent is a percentage of a population denominator.
	KindPercent ValueKind = "percent"
	// KindAmount is an absolute measurement that is not a count (euros, m²).
	KindAmount ValueKind = "amount"
	// KindScore is a dimensionless index value reported by the provider.
	KindScore ValueKind = "score"
)

// KeyInfo describes one indicator in the stable key namespace.
type KeyInfo struct {
	Key     string
	TitleNl string
	TitleEn string
	Unit    string
	Kind    ValueKind
}

// KeyPopulation is the stable key the aggregator reads the population
// denominator from.
const KeyPopulation = "aantal_inwoners"

// demographicsKeys maps the demographics provider's raw field names (CBS
// regional statistics naming, including the numeric column suffixes that
// change between data vintages) onto the stable key namespace. Unknown raw
// keys pass through unchanged.
var demographicsKeys = map[string]KeyInfo{
	"AantalInwoners_5":                  {Key: "aantal_inwoners", TitleNl: "Aantal inwoners", TitleEn: "Number of inhabitants", Unit: "inwoners", Kind: KindCount},
	"HuishoudensTotaal_28":              {Key: "aantal_huishoudens", TitleNl: "Aantal huishoudens", TitleEn: "Number of households", Unit: "huishoudens", Kind: KindCount},
	"GemiddeldeHuishoudensgrootte_32":   {Key: "gemiddelde_huishoudensgrootte", TitleNl: "Gemiddelde huishoudensgrootte", TitleEn: "Average household size", Unit: "personen", Kind: KindAmount},
	"HuishoudensMetKinderen_31":         {Key: "percentage_huishoudens_met_kinderen", TitleNl: "Huishoudens met kinderen", TitleEn: "Households with children", Unit: "%", Kind: KindPercent},
	"HuishoudensZonderKinderen_30":      {Key: "percentage_huishoudens_zonder_kinderen", TitleNl: "Huishoudens zonder kinderen", TitleEn: "Households without children", Unit: "%", Kind: KindPercent},
	"Eenpersoonshuishoudens_29":         {Key: "percentage_eenpersoonshuishoudens", TitleNl: "Eenpersoonshuishoudens", TitleEn: "Single-person households", Unit: "%", Kind: KindPercent},
	"k_0Tot15Jaar_8":                    {Key: "percentage_0_tot_15_jaar", TitleNl: "Personen 0 tot 15 jaar", TitleEn: "Persons aged 0 to 15", Unit: "%", Kind: KindPercent},
	"k_15Tot25Jaar_9":                   {Key: "percentage_15_tot_25_jaar", TitleNl: "Personen 15 tot 25 jaar", TitleEn: "Persons aged 15 to 25", Unit: "%", Kind: KindPercent},
	"k_25Tot45Jaar_10":                  {Key: "percentage_25_tot_45_jaar", TitleNl: "Personen 25 tot 45 jaar", TitleEn: "Persons aged 25 to 45", Unit: "%", Kind: KindPercent},
	"k_45Tot65Jaar_11":                  {Key: "percentage_45_tot_65_jaar", TitleNl: "Personen 45 tot 65 jaar", TitleEn: "Persons aged 45 to 65", Unit: "%", Kind: KindPercent},
	"k_65JaarOfOuder_12":                {Key: "percentage_65_jaar_en_ouder", TitleNl: "Personen 65 jaar en ouder", TitleEn: "Persons aged 65 and over", Unit: "%", Kind: KindPercent},
	"Bevolkingsdichtheid_34":            {Key: "bevolkingsdichtheid", TitleNl: "Bevolkingsdichtheid", TitleEn: "Population density", Unit: "inwoners/km²", Kind: KindAmount},
	"GemiddeldInkomenPerInwoner_73":     {Key: "gemiddeld_inkomen_per_inwoner", TitleNl: "Gemiddeld Inkomen per Inwoner", TitleEn: "Average income per inhabitant", Unit: "€ x 1 000", Kind: KindAmount},
	"Woningvoorraad_35":                 {Key: "woningvoorraad", TitleNl: "Woningvoorraad", TitleEn: "Housing stock", Unit: "woningen", Kind: KindCount},
	"GemiddeldeWOZWaardeVanWoningen_36": {Key: "gemiddelde_woz_waarde", TitleNl: "Gemiddelde WOZ-waarde", TitleEn: "Average property valuation", Unit: "€ x 1 000", Kind: KindAmount},
	"Koopwoningen_40":                   {Key: "percentage_koopwoningen", TitleNl: "Koopwoningen", TitleEn: "Owner-occupied dwellings", Unit: "%", Kind: KindPercent},
	"HuurwoningenTotaal_41":             {Key: "percentage_huurwoningen", TitleNl: "Huurwoningen", TitleEn: "Rental dwellings", Unit: "%", Kind: KindPercent},
	"BouwjaarVoor2000_45":               {Key: "percentage_bouwjaar_voor_2000", TitleNl: "Bouwjaar voor 2000", TitleEn: "Built before 2000", Unit: "%", Kind: KindPercent},
	"BouwjaarVanaf2000_46":              {Key: "percentage_bouwjaar_vanaf_2000", TitleNl: "Bouwjaar vanaf 2000", TitleEn: "Built from 2000", Unit: "%", Kind: KindPercent},
	"PercentageMeergezinswoning_38":     {Key: "percentage_meergezinswoningen", TitleNl: "Meergezinswoningen", TitleEn: "Multi-family dwellings", Unit: "%", Kind: KindPercent},
}

// healthKeys maps the public-health monitor's raw field names. All health
// indicators arrive as percentages of the adult population.
var healthKeys = map[string]KeyInfo{
	"ErvarenGezondheidGoedZeerGoed": {Key: "ervaren_gezondheid_goed", TitleNl: "Ervaren gezondheid (zeer) goed", TitleEn: "Self-rated health (very) good", Unit: "%", Kind: KindPercent},
	"Rokers":                        {Key: "percentage_rokers", TitleNl: "Rokers", TitleEn: "Smokers", Unit: "%", Kind: KindPercent},
	"OvergewichtErnstig":            {Key: "percentage_ernstig_overgewicht", TitleNl: "Ernstig overgewicht", TitleEn: "Severe overweight", Unit: "%", Kind: KindPercent},
	"Overgewicht":                   {Key: "percentage_overgewicht", TitleNl: "Overgewicht", TitleEn: "Overweight", Unit: "%", Kind: KindPercent},
	"VoldoetAanBeweegrichtlijn":     {Key: "voldoet_aan_beweegrichtlijn", TitleNl: "Voldoet aan beweegrichtlijn", TitleEn: "Meets physical activity guideline", Unit: "%", Kind: KindPercent},
	"Eenzaamheid":                   {Key: "percentage_eenzaamheid", TitleNl: "Eenzaamheid", TitleEn: "Loneliness", Unit: "%", Kind: KindPercent},
	"ErnstigeEenzaamheid":           {Key: "percentage_ernstige_eenzaamheid", TitleNl: "Ernstige eenzaamheid", TitleEn: "Severe loneliness", Unit: "%", Kind: KindPercent},
	"HoogRisicoAngstDepressie":      {Key: "risico_angst_depressie", TitleNl: "Hoog risico op angst of depressie", TitleEn: "High risk of anxiety or depression", Unit: "%", Kind: KindPercent},
	"MoeiteMetRondkomen":            {Key: "moeite_met_rondkomen", TitleNl: "Moeite met rondkomen", TitleEn: "Difficulty making ends meet", Unit: "%", Kind: KindPercent},
	"Mantelzorger":                  {Key: "percentage_mantelzorgers", TitleNl: "Mantelzorgers", TitleEn: "Informal caregivers", Unit: "%", Kind: KindPercent},
}

// livabilityKeys maps the livability monitor's raw field names. Values are
// deviation scores against the national reference, reported only at the
// national and municipality levels.
var livabilityKeys = map[string]KeyInfo{
	"lbm": {Key: "leefbaarheid_totaal", TitleNl: "Leefbaarheid totaal", TitleEn: "Overall livability", Unit: "afw", Kind: KindScore},
	"fys": {Key: "leefbaarheid_fysieke_omgeving", TitleNl: "Fysieke omgeving", TitleEn: "Physical environment", Unit: "afw", Kind: KindScore},
	"onv": {Key: "leefbaarheid_overlast_onveiligheid", TitleNl: "Overlast en onveiligheid", TitleEn: "Nuisance and perceived safety", Unit: "afw", Kind: KindScore},
	"soc": {Key: "leefbaarheid_sociale_samenhang", TitleNl: "Sociale samenhang", TitleEn: "Social cohesion", Unit: "afw", Kind: KindScore},
	"vrz": {Key: "leefbaarheid_voorzieningen", TitleNl: "Voorzieningen", TitleEn: "Amenity provision", Unit: "afw", Kind: KindScore},
	"won": {Key: "leefbaarheid_woningvoorraad", TitleNl: "Woningvoorraad", TitleEn: "Housing stock quality", Unit: "afw", Kind: KindScore},
}

// crimeTypeLabels maps the safety provider's crime-type codes onto human
// labels. Codes absent here pass through with the code as label.
var crimeTypeLabels = map[string]KeyInfo{
	"0.0.0": {Key: "misdrijven_totaal", TitleNl: "Misdrijven totaal", TitleEn: "Total registered crimes", Unit: "misdrijven", Kind: KindCount},
	"1.1.1": {Key: "diefstal_inbraak_woning", TitleNl: "Diefstal/inbraak woning", TitleEn: "Residential burglary", Unit: "misdrijven", Kind: KindCount},
	"1.1.2": {Key: "diefstal_inbraak_schuur", TitleNl: "Diefstal/inbraak box/garage/schuur", TitleEn: "Burglary of garage or shed", Unit: "misdrijven", Kind: KindCount},
	"1.2.1": {Key: "diefstal_uit_motorvoertuig", TitleNl: "Diefstal uit/vanaf motorvoertuigen", TitleEn: "Theft from motor vehicles", Unit: "misdrijven", Kind: KindCount},
	"1.2.2": {Key: "diefstal_van_motorvoertuig", TitleNl: "Diefstal van motorvoertuigen", TitleEn: "Theft of motor vehicles", Unit: "misdrijven", Kind: KindCount},
	"1.2.3": {Key: "diefstal_fiets", TitleNl: "Diefstal van brom-, snor-, fietsen", TitleEn: "Bicycle and moped theft", Unit: "misdrijven", Kind: KindCount},
	"1.2.4": {Key: "zakkenrollerij", TitleNl: "Zakkenrollerij", TitleEn: "Pickpocketing", Unit: "misdrijven", Kind: KindCount},
	"1.4.1": {Key: "zedenmisdrijf", TitleNl: "Zedenmisdrijf", TitleEn: "Sexual offences", Unit: "misdrijven", Kind: KindCount},
	"1.4.3": {Key: "openlijk_geweld_persoon", TitleNl: "Openlijk geweld (persoon)", TitleEn: "Public violence against persons", Unit: "misdrijven", Kind: KindCount},
	"1.4.4": {Key: "bedreiging", TitleNl: "Bedreiging", TitleEn: "Threats", Unit: "misdrijven", Kind: KindCount},
	"1.4.5": {Key: "mishandeling", TitleNl: "Mishandeling", TitleEn: "Assault", Unit: "misdrijven", Kind: KindCount},
	"1.4.6": {Key: "straatroof", TitleNl: "Straatroof", TitleEn: "Street robbery", Unit: "misdrijven", Kind: KindCount},
	"1.4.7": {Key: "overval", TitleNl: "Overval", TitleEn: "Armed robbery", Unit: "misdrijven", Kind: KindCount},
	"2.2.1": {Key: "vernieling_auto", TitleNl: "Vernieling cq. zaakbeschadiging", TitleEn: "Vandalism and property damage", Unit: "misdrijven", Kind: KindCount},
	"2.5.1": {Key: "drugs_handel", TitleNl: "Drugs/drankoverlast", TitleEn: "Drug and alcohol offences", Unit: "misdrijven", Kind: KindCount},
	"2.5.2": {Key: "mensenhandel", TitleNl: "Mensenhandel", TitleEn: "Human trafficking", Unit: "misdrijven", Kind: KindCount},
	"3.1.1": {Key: "drugshandel", TitleNl: "Drugshandel", TitleEn: "Drug trafficking", Unit: "misdrijven", Kind: KindCount},
	"3.5.2": {Key: "cybercrime", TitleNl: "Cybercrime", TitleEn: "Cybercrime", Unit: "misdrijven", Kind: KindCount},
	"3.7.4": {Key: "discriminatie", TitleNl: "Discriminatie", TitleEn: "Discrimination", Unit: "misdrijven", Kind: KindCount},
}

// amenityCategories maps amenity bucket identifiers onto the stable key
// namespace. Counts are within 3 km; distances are to the nearest one.
var amenityCategories = map[string]KeyInfo{
	"huisartsenpraktijk":   {Key: "aantal_huisartsenpraktijken", TitleNl: "Huisartsenpraktijk", TitleEn: "General practitioner", Unit: "binnen 3 km", Kind: KindCount},
	"supermarkt":           {Key: "aantal_supermarkten", TitleNl: "Grote supermarkt", TitleEn: "Supermarket", Unit: "binnen 3 km", Kind: KindCount},
	"kinderdagverblijf":    {Key: "aantal_kinderdagverblijven", TitleNl: "Kinderdagverblijf", TitleEn: "Daycare centre", Unit: "binnen 3 km", Kind: KindCount},
	"basisonderwijs":       {Key: "aantal_basisscholen", TitleNl: "Basisonderwijs", TitleEn: "Primary school", Unit: "binnen 3 km", Kind: KindCount},
	"voortgezet_onderwijs": {Key: "aantal_middelbare_scholen", TitleNl: "Voortgezet onderwijs", TitleEn: "Secondary school", Unit: "binnen 3 km", Kind: KindCount},
	"restaurant":           {Key: "aantal_restaurants", TitleNl: "Restaurant", TitleEn: "Restaurant", Unit: "binnen 3 km", Kind: KindCount},
	"bibliotheek":          {Key: "aantal_bibliotheken", TitleNl: "Bibliotheek", TitleEn: "Library", Unit: "binnen 3 km", Kind: KindCount},
	"treinstation":         {Key: "aantal_treinstations", TitleNl: "Treinstation", TitleEn: "Train station", Unit: "binnen 3 km", Kind: KindCount},
	"ziekenhuis":           {Key: "aantal_ziekenhuizen", TitleNl: "Ziekenhuis", TitleEn: "Hospital", Unit: "binnen 3 km", Kind: KindCount},
	"apotheek":             {Key: "aantal_apotheken", TitleNl: "Apotheek", TitleEn: "Pharmacy", Unit: "binnen 3 km", Kind: KindCount},
	"sportterrein":         {Key: "aantal_sportterreinen", TitleNl: "Sportterrein", TitleEn: "Sports ground", Unit: "binnen 3 km", Kind: KindCount},
}

// LookupKey resolves a raw provider key against a key table, passing
// unknown keys through unchanged so provider schema drift never fails a
// parse.
func lookupKey(table map[string]KeyInfo, rawKey string) KeyInfo {
	if info, ok := table[rawKey]; ok {
		return info
	}
	return KeyInfo{Key: rawKey, TitleNl: rawKey, TitleEn: rawKey, Unit: "", Kind: KindAmount}
}
