package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/locintel/internal/scorever"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the scoring algorithm version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		check, _ := cmd.Flags().GetString("check")
		if check == "" {
			fmt.Printf("scoring version: %s (minimum supported: %s)\n", scorever.Current, scorever.Minimum)
			return nil
		}

		compat := scorever.Check(check)
		fmt.Printf("stored version:   %s\n", check)
		fmt.Printf("compatible:       %t\n", compat.Compatible)
		fmt.Printf("requires rescore: %t\n", compat.RequiresRescore)
		fmt.Printf("detail:           %s\n", compat.Message)
		return nil
	},
}

func init() {
	versionCmd.Flags().String("check", "", "check a stored scoring version for compatibility")
	rootCmd.AddCommand(versionCmd)
}
