package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "locintel",
	Short: "Multi-level location indicator aggregation and scoring",
	Long:  "Aggregates CBS-style indicators across national, municipality, district, and neighborhood levels, scores them against national baselines, and ranks buyer personas per location.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
