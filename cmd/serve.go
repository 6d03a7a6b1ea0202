package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/internal/pipeline"
	"github.com/platewatch/platewatch/internal/store"
	"github.com/platewatch/platewatch/pkg/analyst"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
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

func newRouter(env *pipelineEnv) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body pipeline.Request
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Name == "" || body.City == "" {
			writeError(w, http.StatusBadRequest, "name and city are required")
			return
		}

		report, err := env.Pipeline.Run(req.Context(), body)
		if err != nil {
			status, msg := analysisErrorStatus(err)
			zap.L().Error("analysis request failed",
				zap.String("name", body.Name),
				zap.String("city", body.City),
				zap.Int("status", status),
				zap.Error(err),
			)
			writeError(w, status, msg)
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	r.Get("/api/reports", func(w http.ResponseWriter, req *http.Request) {
		filter := store.ReportFilter{TargetName: req.URL.Query().Get("target")}
		if raw := req.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				filter.Limit = n
			}
		}
		summaries, err := env.Store.ListReports(req.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list reports failed")
			return
		}
		if summaries == nil {
			summaries = []model.ReportSummary{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"reports": summaries})
	})

	r.Get("/api/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
		report, err := env.Store.GetReport(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			if eris.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "report not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "get report failed")
			return
		}
		writeJSON(w, http.StatusOK, report)
	})

	return r
}

// analysisErrorStatus maps each pipeline failure kind to a distinct
// HTTP status and a client-safe message.
func analysisErrorStatus(err error) (int, string) {
	switch {
	case eris.Is(err, pipeline.ErrNoVenuesNearby):
		return http.StatusNotFound, "no venues found near the target location"
	case eris.Is(err, pipeline.ErrNoCompetingVenues):
		return http.StatusUnprocessableEntity, "no competing venues after filtering"
	case eris.Is(err, pipeline.ErrDataSourceUnavailable):
		return http.StatusBadGateway, "venue data source unavailable"
	case eris.Is(err, analyst.ErrMalformedAnalysis):
		return http.StatusBadGateway, "analysis generation failed"
	default:
		return http.StatusInternalServerError, "analysis failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
