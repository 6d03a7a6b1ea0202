package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/platewatch/platewatch/internal/intel"
	"github.com/platewatch/platewatch/internal/pipeline"
	"github.com/platewatch/platewatch/internal/store"
	"github.com/platewatch/platewatch/pkg/analyst"
	"github.com/platewatch/platewatch/pkg/places"
)

// pipelineEnv holds the initialized store, clients and pipeline shared
// by the analyze/batch/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "platewatch.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initPipeline sets up the store, API clients and scoring weights, and
// builds the Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if cfg.Places.Key == "" {
		return nil, eris.New("google maps key is required (PLATEWATCH_PLACES_KEY)")
	}
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic key is required (PLATEWATCH_ANTHROPIC_KEY)")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	placesOpts := []places.Option{places.WithRateLimit(cfg.Places.RateLimit)}
	if cfg.Places.GeocodeURL != "" {
		placesOpts = append(placesOpts, places.WithGeocodeURL(cfg.Places.GeocodeURL))
	}
	if cfg.Places.NearbyURL != "" {
		placesOpts = append(placesOpts, places.WithNearbyURL(cfg.Places.NearbyURL))
	}
	placesClient := places.NewClient(cfg.Places.Key, placesOpts...)

	analystClient := analyst.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)

	weights := intel.DefaultWeights()
	if cfg.Weights.Path != "" {
		weights, err = intel.LoadWeights(cfg.Weights.Path)
		if err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "load scoring weights")
		}
		zap.L().Info("scoring weights loaded", zap.String("path", cfg.Weights.Path))
	}

	p := pipeline.New(cfg, st, placesClient, analystClient, weights)

	return &pipelineEnv{
		Store:    st,
		Pipeline: p,
	}, nil
}
