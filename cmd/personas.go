package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/export"
	"github.com/sells-group/locintel/internal/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Rank the persona catalogue against a scored location",
	Long: `Score every persona in the catalogue against a location's indicator
scores and rank them with both the fractional r-rank and the standardized
z-rank, plus the named scenarios over the ranking.

Examples:
  # Rank from a raw provider document
  locintel personas --input location.json

  # Rank with a custom catalogue and write a workbook
  locintel personas --input location.json --catalogue personas.yaml --xlsx ranking.xlsx`,
	RunE: runPersonas,
}

func init() {
	f := personasCmd.Flags()
	f.String("input", "", "raw provider document (JSON file, or - for stdin)")
	f.String("catalogue", "", "persona catalogue YAML (default: built-in catalogue)")
	f.String("output", "", "output JSON path (default: stdout)")
	f.String("xlsx", "", "also write the ranking as an XLSX workbook")
	f.Int("top", 0, "limit the output to the N best-matching personas")

	_ = personasCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(personasCmd)
}

func runPersonas(cmd *cobra.Command, _ []string) error {
	_, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	cataloguePath, _ := cmd.Flags().GetString("catalogue")
	outputPath, _ := cmd.Flags().GetString("output")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	top, _ := cmd.Flags().GetInt("top")

	if cataloguePath != "" {
		cfg.Persona.CataloguePath = cataloguePath
	}
	defs, err := loadCatalogue()
	if err != nil {
		return err
	}

	in, err := readInput(inputPath)
	if err != nil {
		return err
	}

	bundle := buildBundle(in)
	ranked := persona.Rank(persona.LocationScores(bundle), defs)
	ranking := export.RankingExport{
		Address:   bundle.Location.Address,
		Personas:  ranked,
		Scenarios: persona.Scenarios(ranked),
	}

	zap.L().Info("personas ranked",
		zap.String("address", bundle.Location.Address),
		zap.Int("personas", len(ranked)),
	)

	if xlsxPath != "" {
		if err := export.WriteBundleXLSX(xlsxPath, bundle, &ranking); err != nil {
			return err
		}
	}

	// The workbook keeps the full ranking; --top trims the JSON only.
	if top > 0 && top < len(ranking.Personas) {
		ranking.Personas = ranking.Personas[:top]
	}

	return writeJSON(outputPath, func(w *os.File) error {
		return export.WriteRankingJSON(w, ranking)
	})
}
