package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/geo"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve a Dutch address to coordinates and areas",
	Long: `Resolve a free-text address via the PDOK Locatieserver, printing the
WGS84 and RD New coordinates plus the municipality, district, and
neighborhood codes the statistical providers key on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}

func runGeocode(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	address := strings.Join(args, " ")

	loc, err := newGeocodeClient().Geocode(ctx, address)
	if err != nil {
		return err
	}

	if !geo.InNetherlands(loc.RDX, loc.RDY) {
		zap.L().Warn("resolved coordinates fall outside the RD New validity window",
			zap.Float64("rd_x", loc.RDX),
			zap.Float64("rd_y", loc.RDY),
		)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(loc); err != nil {
		return eris.Wrap(err, "cmd: encode location")
	}
	return nil
}
