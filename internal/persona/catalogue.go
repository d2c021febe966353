package persona

import "github.com/sells-group/locintel/internal/model"

// Characteristic types used by the catalogue. The type is descriptive
// metadata in the breakdown; only the multiplier enters the weighted sum.
const (
	charEssential = "essentieel"
	charImportant = "belangrijk"
	charDesirable = "wenselijk"
	charAvoid     = "vermijden"
)

func weight(multiplier float64, characteristic string) model.PreferenceWeight {
	return model.PreferenceWeight{Multiplier: multiplier, CharacteristicType: characteristic}
}

// Catalogue returns the built-in household persona catalogue. The list is
// static configuration: order is stable and meaningful (it breaks ranking
// ties), so new personas go at the end.
func Catalogue() []model.PersonaDefinition {
	return []model.PersonaDefinition{
		{
			ID:          "jong_gezin",
			Name:        "Jong gezin met kinderen",
			Description: "Twee ouders, kinderen op de basisschool, zoekt ruimte en voorzieningen.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"basisschool":  weight(5, charEssential),
					"kinderopvang": weight(4, charEssential),
					"supermarkt":   weight(3, charImportant),
					"huisarts":     weight(3, charImportant),
					"sportterrein": weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"veiligheid":            weight(4, charEssential),
					"sociale_samenhang":     weight(3, charImportant),
					"overlast_onveiligheid": weight(3, charImportant),
				},
				model.CategoryHousingStock: {
					"koopwoningen": weight(3, charImportant),
					"nieuwbouw":    weight(2, charDesirable),
				},
				model.CategoryDemographics: {
					"gezinnen_met_kinderen": weight(4, charImportant),
					"middeninkomen":         weight(2, charDesirable),
				},
			},
		},
		{
			ID:          "starter",
			Name:        "Starter",
			Description: "Eerste koopwoning, budget beperkt, werkt in de stad.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"treinstation": weight(4, charEssential),
					"supermarkt":   weight(3, charImportant),
					"restaurant":   weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"leefbaarheid_totaal": weight(2, charDesirable),
					"voorzieningen":       weight(3, charImportant),
				},
				model.CategoryHousingStock: {
					"vraagprijs_per_m2":  weight(5, charEssential),
					"meergezinswoningen": weight(2, charDesirable),
				},
				model.CategoryDemographics: {
					"jongeren":      weight(2, charDesirable),
					"laag_inkomen":  weight(1, charDesirable),
					"middeninkomen": weight(2, charDesirable),
				},
			},
		},
		{
			ID:          "student",
			Name:        "Student",
			Description: "Huurt een kamer, leeft op de fiets en het spoor.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"treinstation": weight(5, charEssential),
					"supermarkt":   weight(3, charImportant),
					"restaurant":   weight(3, charImportant),
					"bibliotheek":  weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"voorzieningen": weight(3, charImportant),
				},
				model.CategoryHousingStock: {
					"huurwoningen":       weight(5, charEssential),
					"meergezinswoningen": weight(3, charImportant),
				},
				model.CategoryDemographics: {
					"jongeren":               weight(4, charImportant),
					"eenpersoonshuishoudens": weight(3, charImportant),
					"laag_inkomen":           weight(2, charDesirable),
				},
			},
		},
		{
			ID:          "senioren",
			Name:        "Senioren",
			Description: "Gepensioneerd stel, zorg en rust dichtbij.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"huisarts":   weight(5, charEssential),
					"apotheek":   weight(4, charEssential),
					"ziekenhuis": weight(3, charImportant),
					"supermarkt": weight(3, charImportant),
				},
				model.CategoryLivability: {
					"veiligheid":            weight(4, charEssential),
					"overlast_onveiligheid": weight(4, charEssential),
					"sociale_samenhang":     weight(3, charImportant),
				},
				model.CategoryHousingStock: {
					"koopwoningen": weight(2, charDesirable),
					"ouder_bezit":  weight(1, charDesirable),
				},
				model.CategoryDemographics: {
					"ouderen":             weight(4, charImportant),
					"bevolkingsdichtheid": weight(-2, charAvoid),
				},
			},
		},
		{
			ID:          "stedelijke_professional",
			Name:        "Stedelijke professional",
			Description: "Carrière in de stad, uit eten, alles op loopafstand.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"restaurant":   weight(4, charImportant),
					"treinstation": weight(4, charImportant),
					"supermarkt":   weight(3, charImportant),
					"sportterrein": weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"voorzieningen":       weight(4, charImportant),
					"leefbaarheid_totaal": weight(2, charDesirable),
				},
				model.CategoryHousingStock: {
					"meergezinswoningen": weight(3, charImportant),
					"woz_waarde":         weight(2, charDesirable),
				},
				model.CategoryDemographics: {
					"eenpersoonshuishoudens": weight(3, charImportant),
					"hoog_inkomen":           weight(3, charImportant),
				},
			},
		},
		{
			ID:          "gezin_tieners",
			Name:        "Gezin met tieners",
			Description: "Oudere kinderen, middelbare school en sport wegen zwaar.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"middelbare_school": weight(5, charEssential),
					"sportterrein":      weight(3, charImportant),
					"treinstation":      weight(3, charImportant),
					"supermarkt":        weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"veiligheid":        weight(3, charImportant),
					"sociale_samenhang": weight(2, charDesirable),
				},
				model.CategoryHousingStock: {
					"koopwoningen": weight(3, charImportant),
					"ouder_bezit":  weight(1, charDesirable),
				},
				model.CategoryDemographics: {
					"gezinnen_met_kinderen": weight(3, charImportant),
					"middeninkomen":         weight(2, charDesirable),
				},
			},
		},
		{
			ID:          "rustzoekers",
			Name:        "Rustzoekers",
			Description: "Weg uit de drukte, groen en stilte boven voorzieningen.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"supermarkt": weight(2, charDesirable),
					"huisarts":   weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"fysieke_omgeving":      weight(5, charEssential),
					"overlast_onveiligheid": weight(4, charEssential),
					"leefbaarheid_totaal":   weight(3, charImportant),
				},
				model.CategoryHousingStock: {
					"koopwoningen": weight(3, charImportant),
				},
				model.CategoryDemographics: {
					"bevolkingsdichtheid": weight(-4, charAvoid),
					"ouderen":             weight(1, charDesirable),
				},
			},
		},
		{
			ID:          "vermogend_stel",
			Name:        "Vermogend stel",
			Description: "Ruim budget, waardevast bezit in een gewilde buurt.",
			Weights: map[model.Category]map[string]model.PreferenceWeight{
				model.CategoryAmenities: {
					"restaurant":  weight(3, charImportant),
					"bibliotheek": weight(1, charDesirable),
					"huisarts":    weight(2, charDesirable),
				},
				model.CategoryLivability: {
					"leefbaarheid_totaal": weight(4, charImportant),
					"fysieke_omgeving":    weight(3, charImportant),
					"veiligheid":          weight(4, charImportant),
				},
				model.CategoryHousingStock: {
					"woz_waarde":   weight(4, charImportant),
					"koopwoningen": weight(4, charImportant),
				},
				model.CategoryDemographics: {
					"hoog_inkomen": weight(4, charImportant),
				},
			},
		},
	}
}
