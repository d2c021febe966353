package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/locintel/internal/aggregate"
	"github.com/sells-group/locintel/internal/cache"
	"github.com/sells-group/locintel/internal/export"
	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/persona"
	"github.com/sells-group/locintel/internal/scorever"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		defs, err := loadCatalogue()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(store, defs),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter wires the API routes. Split out so handler tests run against
// the same mux the server mounts.
func newRouter(store cache.Cache, defs []model.PersonaDefinition) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONResponse(w, http.StatusOK, map[string]string{
			"status":          "ok",
			"scoring_version": scorever.Current,
		})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/score", handleScore(store))
		r.Post("/personas", handlePersonas(defs))
		r.Get("/cache/stats", func(w http.ResponseWriter, req *http.Request) {
			writeJSONResponse(w, http.StatusOK, store.Stats(req.Context()))
		})
		r.Delete("/cache", func(w http.ResponseWriter, req *http.Request) {
			removed := store.CleanupExpired(req.Context())
			writeJSONResponse(w, http.StatusOK, map[string]int{"removed": removed})
		})
	})
	return r
}

// handleScore aggregates and scores the posted raw provider document,
// serving from the cache when the stored bundle is still acceptable.
func handleScore(store cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var in aggregate.Input
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.Location.Municipality.Code == "" {
			writeJSONError(w, http.StatusBadRequest, "location.municipality.code is required")
			return
		}

		bundle := cachedOrBuilt(req, store, &in)
		writeJSONResponse(w, http.StatusOK, bundle)
	}
}

// handlePersonas scores the document and ranks the persona catalogue.
func handlePersonas(defs []model.PersonaDefinition) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var in aggregate.Input
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if in.Location.Municipality.Code == "" {
			writeJSONError(w, http.StatusBadRequest, "location.municipality.code is required")
			return
		}

		bundle := buildBundle(&in)
		ranked := persona.Rank(persona.LocationScores(bundle), defs)
		writeJSONResponse(w, http.StatusOK, export.RankingExport{
			Address:   bundle.Location.Address,
			Personas:  ranked,
			Scenarios: persona.Scenarios(ranked),
		})
	}
}

func cachedOrBuilt(req *http.Request, store cache.Cache, in *aggregate.Input) *model.UnifiedLocationData {
	log := zap.L().With(zap.String("address", in.Location.Address))
	if cached := store.Get(req.Context(), in.Location.Address); cached != nil {
		if bundle := reconcileVersion(cached, log); bundle != nil {
			return bundle
		}
	}
	bundle := buildBundle(in)
	store.Set(req.Context(), in.Location.Address, bundle, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	return bundle
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSONResponse(w, status, map[string]string{"error": msg})
}
