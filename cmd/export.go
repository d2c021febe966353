package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/export"
	"github.com/sells-group/locintel/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export <bundle.json> <output.xlsx>",
	Short: "Convert a saved bundle to an XLSX workbook",
	Long: `Convert a previously scored bundle (as written by score --output) into
an XLSX workbook with one indicator sheet. Null values survive the
round-trip: indicators without a score export as empty cells, never as
zeros.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "cmd: read bundle %s", args[0])
		}

		var bundle model.UnifiedLocationData
		if err := json.Unmarshal(raw, &bundle); err != nil {
			return eris.Wrapf(err, "cmd: parse bundle %s", args[0])
		}

		if err := export.WriteBundleXLSX(args[1], &bundle, nil); err != nil {
			return err
		}
		zap.L().Info("workbook written",
			zap.String("bundle", args[0]),
			zap.String("path", args[1]),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
