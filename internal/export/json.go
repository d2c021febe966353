// Package export writes scored bundles and persona rankings to the
// formats the dashboard's download surface consumes.
package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/locintel/internal/model"
)

// WriteBundleJSON serializes a bundle with stable indentation. Nullable
// numeric fields marshal as explicit JSON null so a re-read bundle keeps
// the not-applicable/zero distinction the re-scoring path branches on.
func WriteBundleJSON(w io.Writer, bundle *model.UnifiedLocationData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		return eris.Wrap(err, "export: encode bundle")
	}
	return nil
}

// RankingExport pairs the ranked personas with their scenarios.
type RankingExport struct {
	Address   string               `json:"address"`
	Personas  []model.PersonaScore `json:"personas"`
	Scenarios []model.Scenario     `json:"scenarios"`
}

// WriteRankingJSON serializes a persona ranking.
func WriteRankingJSON(w io.Writer, ranking RankingExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ranking); err != nil {
		return eris.Wrap(err, "export: encode ranking")
	}
	return nil
}
