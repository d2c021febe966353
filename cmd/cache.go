package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the bundle cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count, size, and expired entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		stats := store.Stats(ctx)
		fmt.Printf("driver:     %s\n", cfg.Cache.Driver)
		fmt.Printf("entries:    %d (%d valid, %d expired)\n",
			stats.TotalEntries, stats.ValidEntries, stats.ExpiredEntries)
		fmt.Printf("size:       %d bytes\n", stats.CacheSizeBytes)
		fmt.Printf("size limit: %d bytes\n", cfg.Cache.MaxBytes)
		for _, addr := range stats.CachedAddresses {
			fmt.Printf("  %s\n", addr)
		}
		return nil
	},
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired cache entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		removed := store.CleanupExpired(ctx)
		zap.L().Info("cache cleanup complete", zap.Int("removed", removed))
		fmt.Printf("removed %d expired entries\n", removed)
		return nil
	},
}

var cacheRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "Remove one cached location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		store.Remove(ctx, args[0])
		fmt.Printf("removed %q\n", args[0])
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("cache clear removes every entry; re-run with --yes to confirm")
		}

		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		store.ClearAll(ctx)
		fmt.Println("cache cleared")
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().Bool("yes", false, "confirm clearing every entry")

	cacheCmd.AddCommand(cacheStatsCmd, cacheCleanupCmd, cacheRemoveCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
