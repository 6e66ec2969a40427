package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	kafkaadapter "github.com/couchcryptid/quakemap/internal/adapter/kafka"
	"github.com/couchcryptid/quakemap/internal/adapter/mapbox"
	"github.com/couchcryptid/quakemap/internal/adapter/usgs"
	"github.com/couchcryptid/quakemap/internal/config"
	"github.com/couchcryptid/quakemap/internal/observability"
	"github.com/couchcryptid/quakemap/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands.
type app struct {
	cfg        *config.Config
	feedURL    string
	envFile    string
	newMetrics func() *observability.Metrics
}

func newApp() *app {
	return &app{newMetrics: observability.NewMetrics}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "quakemap",
		Short:         "Map the past week of USGS earthquakes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&a.feedURL, "feed-url", "", "override the feed endpoint (FEED_URL)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load environment variables from this file (default .env if present)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRenderCmd(a))
	return root
}

func (a *app) loadConfig() error {
	if err := a.loadEnvFile(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.feedURL != "" {
		if err := cfg.OverrideFeedURL(a.feedURL); err != nil {
			return err
		}
	}
	a.cfg = cfg
	return nil
}

// loadEnvFile applies variables from the env file without overriding the
// process environment. A missing default .env is not an error.
func (a *app) loadEnvFile() error {
	path := a.envFile
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if a.envFile == "" && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// buildPipeline wires the fetcher and the optional enrichment and publishing
// stages. The returned func releases the publisher.
func (a *app) buildPipeline(logger *slog.Logger, metrics *observability.Metrics) (*pipeline.Pipeline, func()) {
	cfg := a.cfg
	fetcher := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, logger, metrics)

	var opts []pipeline.Option
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		opts = append(opts, pipeline.WithGeocoder(mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)))
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	release := func() {}
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, pipeline.WithPublisher(writer))
		release = func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}
		logger.Info("marker publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	return pipeline.New(fetcher, logger, metrics, opts...), release
}
