package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/locintel/internal/aggregate"
	"github.com/sells-group/locintel/internal/cache"
	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/persona"
	"github.com/sells-group/locintel/internal/scoring"
	"github.com/sells-group/locintel/pkg/geocode"
)

// openCache opens the bundle cache the config selects. Callers own Close.
func openCache(ctx context.Context) (cache.Cache, error) {
	opts := cache.Options{
		TTL:        time.Duration(cfg.Cache.TTLHours) * time.Hour,
		MaxBytes:   cfg.Cache.MaxBytes,
		EvictBatch: cfg.Cache.EvictBatch,
	}
	switch cfg.Cache.Driver {
	case "sqlite":
		return cache.NewSQLite(cfg.Cache.DatabaseURL, opts)
	case "postgres":
		return cache.NewPostgres(ctx, cfg.Cache.DatabaseURL, opts)
	default:
		return nil, eris.Errorf("cmd: unknown cache driver %q", cfg.Cache.Driver)
	}
}

// loadCatalogue loads the persona catalogue from the configured fixture,
// falling back to the built-in set when no path is configured.
func loadCatalogue() ([]model.PersonaDefinition, error) {
	if cfg.Persona.CataloguePath == "" {
		return persona.Catalogue(), nil
	}
	return persona.LoadCatalogue(cfg.Persona.CataloguePath)
}

// newGeocodeClient builds the Locatieserver client from config.
func newGeocodeClient() geocode.Client {
	return geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocode.BaseURL),
		geocode.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Geocode.TimeoutSecs) * time.Second}),
		geocode.WithRateLimit(cfg.Geocode.RatePerSec),
	)
}

// readInput reads one raw provider document from a JSON file, or stdin
// when the path is "-". The document must carry a resolved location.
func readInput(path string) (*aggregate.Input, error) {
	in, err := readRawInput(path)
	if err != nil {
		return nil, err
	}
	if in.Location.Municipality.Code == "" {
		return nil, eris.Errorf("cmd: input %s has no municipality code", path)
	}
	return in, nil
}

// readRawInput reads a provider document without requiring a resolved
// location, for callers that fill the location themselves.
func readRawInput(path string) (*aggregate.Input, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "cmd: read input %s", path)
	}

	var in aggregate.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, eris.Wrapf(err, "cmd: parse input %s", path)
	}
	return &in, nil
}

// buildBundle aggregates and scores one raw input document.
func buildBundle(in *aggregate.Input) *model.UnifiedLocationData {
	bundle := aggregate.New().Aggregate(*in)
	return scoring.NewEngine().ScoreBundle(bundle)
}

// rescore recomputes every score on an existing bundle under the current
// scoring policy and version.
func rescore(bundle *model.UnifiedLocationData) *model.UnifiedLocationData {
	return scoring.NewEngine().ScoreBundle(bundle)
}

// cacheLike is the slice of the cache surface batch processing needs, so
// an uncached run can swap in a no-op.
type cacheLike interface {
	Get(ctx context.Context, address string) *model.UnifiedLocationData
	Set(ctx context.Context, address string, bundle *model.UnifiedLocationData, ttl time.Duration) bool
}

type noCache struct{}

func (noCache) Get(context.Context, string) *model.UnifiedLocationData { return nil }
func (noCache) Set(context.Context, string, *model.UnifiedLocationData, time.Duration) bool {
	return false
}

// writeJSON writes v to path, or stdout when the path is empty or "-".
func writeJSON(path string, write func(w *os.File) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "cmd: create %s", path)
	}
	defer f.Close() //nolint:errcheck
	return write(f)
}
