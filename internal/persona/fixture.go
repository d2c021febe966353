package persona

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/locintel/internal/model"
)

// LoadCatalogue reads a persona catalogue override from a YAML file. The
// file holds a top-level `personas` list in the PersonaDefinition shape.
// Deployments without an override use the built-in Catalogue.
func LoadCatalogue(path string) ([]model.PersonaDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "persona: read catalogue %s", path)
	}

	var doc struct {
		Personas []model.PersonaDefinition `yaml:"personas"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "persona: unmarshal catalogue %s", path)
	}
	if len(doc.Personas) == 0 {
		return nil, eris.Errorf("persona: catalogue %s defines no personas", path)
	}

	for _, p := range doc.Personas {
		if p.ID == "" || p.Name == "" {
			return nil, eris.Errorf("persona: catalogue %s has a persona without id or name", path)
		}
	}
	return doc.Personas, nil
}
