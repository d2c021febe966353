package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/aggregate"
	"github.com/sells-group/locintel/internal/export"
	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/scorever"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Aggregate and score one location's indicators",
	Long: `Aggregate raw provider responses for one location into the unified
indicator table and score every indicator against its national baseline.

The input document carries the resolved location plus the raw per-level
responses of each provider. Scored bundles can be cached; cached bundles
whose scoring version falls below the supported minimum are re-scored
before being returned.

Examples:
  # Score a raw document, print the bundle as JSON
  locintel score --input location.json

  # Score with caching and write a workbook
  locintel score --input location.json --use-cache --xlsx location.xlsx`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "", "raw provider document (JSON file, or - for stdin)")
	f.String("address", "", "resolve the location via the Locatieserver when the document carries none")
	f.String("output", "", "output JSON path (default: stdout)")
	f.String("xlsx", "", "also write the bundle as an XLSX workbook")
	f.Bool("use-cache", false, "read and write the bundle cache")

	_ = scoreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	address, _ := cmd.Flags().GetString("address")
	outputPath, _ := cmd.Flags().GetString("output")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	useCache, _ := cmd.Flags().GetBool("use-cache")

	var in *aggregate.Input
	var err error
	if address != "" {
		in, err = readRawInput(inputPath)
		if err != nil {
			return err
		}
		loc, err := newGeocodeClient().Geocode(ctx, address)
		if err != nil {
			return err
		}
		in.Location = *loc
	} else {
		in, err = readInput(inputPath)
		if err != nil {
			return err
		}
	}

	log := zap.L().With(zap.String("command", "score"), zap.String("address", in.Location.Address))

	var bundle *model.UnifiedLocationData
	if useCache {
		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		if cached := store.Get(ctx, in.Location.Address); cached != nil {
			bundle = reconcileVersion(cached, log)
		}
		if bundle == nil {
			bundle = buildBundle(in)
			store.Set(ctx, in.Location.Address, bundle, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		}
	} else {
		bundle = buildBundle(in)
	}

	if xlsxPath != "" {
		if err := export.WriteBundleXLSX(xlsxPath, bundle, nil); err != nil {
			return err
		}
		log.Info("workbook written", zap.String("path", xlsxPath))
	}

	return writeJSON(outputPath, func(w *os.File) error {
		return export.WriteBundleJSON(w, bundle)
	})
}

// reconcileVersion returns the cached bundle when its scoring version is
// still acceptable, a re-scored copy when the version only needs a
// rescore, and nil when the bundle must be rebuilt.
func reconcileVersion(cached *model.UnifiedLocationData, log *zap.Logger) *model.UnifiedLocationData {
	compat := scorever.Check(cached.ScoringVersion)
	switch {
	case compat.Compatible && !compat.RequiresRescore:
		log.Debug("cache hit", zap.String("version", cached.ScoringVersion))
		return cached
	case compat.RequiresRescore:
		log.Info("re-scoring cached bundle",
			zap.String("stored_version", cached.ScoringVersion),
			zap.String("reason", compat.Message),
		)
		return rescore(cached)
	default:
		log.Info("discarding cached bundle", zap.String("reason", compat.Message))
		return nil
	}
}
