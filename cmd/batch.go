package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/locintel/internal/export"
	"github.com/sells-group/locintel/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a directory of locations concurrently",
	Long: `Score every raw provider document in a directory. Documents are
processed concurrently up to the configured limit; per-location failures
are logged and skipped so one bad document never sinks the batch.

Examples:
  # Score all documents under ./locations
  locintel batch --dir locations --output bundles.json

  # Also write one workbook with a sheet per location
  locintel batch --dir locations --xlsx batch.xlsx --use-cache`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("dir", "", "directory of raw provider documents (*.json)")
	f.String("output", "", "combined output JSON path (default: stdout)")
	f.String("xlsx", "", "write one workbook with a sheet per location")
	f.Bool("use-cache", false, "read and write the bundle cache")
	f.Int("concurrency", 0, "max concurrent locations (default from config)")

	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir, _ := cmd.Flags().GetString("dir")
	outputPath, _ := cmd.Flags().GetString("output")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	useCache, _ := cmd.Flags().GetBool("use-cache")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrentLocations
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return eris.Wrapf(err, "cmd: glob %s", dir)
	}
	if len(paths) == 0 {
		return eris.Errorf("cmd: no documents under %s", dir)
	}
	sort.Strings(paths)

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("starting batch",
		zap.Int("locations", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	var cached cacheLike = noCache{}
	if useCache {
		c, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer c.Close() //nolint:errcheck
		cached = c
	}

	bundles := make([]*model.UnifiedLocationData, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			in, err := readInput(path)
			if err != nil {
				log.Warn("skipping document", zap.String("path", path), zap.Error(err))
				return nil
			}
			if hit := cached.Get(gctx, in.Location.Address); hit != nil {
				if b := reconcileVersion(hit, log); b != nil {
					bundles[i] = b
					return nil
				}
			}
			bundle := buildBundle(in)
			cached.Set(gctx, in.Location.Address, bundle, time.Duration(cfg.Cache.TTLHours)*time.Hour)
			bundles[i] = bundle
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Compact failures out, keeping input order.
	out := make([]*model.UnifiedLocationData, 0, len(bundles))
	for _, b := range bundles {
		if b != nil {
			out = append(out, b)
		}
	}
	log.Info("batch complete",
		zap.Int("scored", len(out)),
		zap.Int("skipped", len(paths)-len(out)),
	)

	if xlsxPath != "" {
		if err := export.WriteBatchXLSX(xlsxPath, out); err != nil {
			return err
		}
	}

	return writeJSON(outputPath, func(w *os.File) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return eris.Wrap(err, "cmd: encode batch output")
		}
		return nil
	})
}
