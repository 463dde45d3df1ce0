// Package commands implements the ncursor command line interface.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/ncursor/config"
	"github.com/ncobase/ncursor/data"
	"github.com/ncobase/ncursor/data/search"
	"github.com/ncobase/ncursor/logging/logger"
	"github.com/ncobase/ncursor/logging/observes"
	"github.com/ncobase/ncursor/utils/convert"
	"github.com/ncobase/ncursor/version"

	"github.com/spf13/cobra"

	// Register the search engine drivers.
	_ "github.com/ncobase/ncursor/data/elasticsearch"
	_ "github.com/ncobase/ncursor/data/meilisearch"
	_ "github.com/ncobase/ncursor/data/mongodb"
	_ "github.com/ncobase/ncursor/data/opensearch"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ncursor",
		Short: "Batched pagination cursor over pluggable search backends",
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path, e.g. ./config.yaml")

	rootCmd.AddCommand(
		NewCountCommand(),
		NewWalkCommand(),
		NewScanCommand(),
		NewSeedCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}

// runtime bundles everything a subcommand needs after bootstrap.
type runtime struct {
	cfg  *config.Config
	data *data.Data
}

// setup loads configuration, initializes logging and observability, and
// connects the data layer. The returned cleanup releases all of it.
func setup(cmd *cobra.Command) (*runtime, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	loggerCleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetVersion(version.GetVersionInfo().Version)

	if obs := cfg.Observes; obs != nil {
		if obs.Sentry != nil && obs.Sentry.Endpoint != "" {
			if err := observes.NewSentry(&observes.SentryOptions{
				Dsn:         obs.Sentry.Endpoint,
				Name:        cfg.AppName,
				Release:     obs.Sentry.Release,
				Environment: obs.Sentry.Environment,
				SampleRate:  obs.Sentry.SampleRate,
			}); err != nil {
				logger.Warnf(ctx, "sentry init failed: %v", err)
			}
		}
		if obs.Tracer != nil && obs.Tracer.Endpoint != "" {
			opt := &observes.TracerOption{
				URL:                obs.Tracer.Endpoint,
				Name:               obs.Tracer.ServiceName,
				Version:            obs.Tracer.ServiceVersion,
				Environment:        obs.Tracer.Environment,
				SamplingRate:       obs.Tracer.SamplingRate,
				MaxAttributes:      obs.Tracer.MaxAttributes,
				BatchTimeout:       obs.Tracer.BatchTimeout,
				ExportTimeout:      obs.Tracer.ExportTimeout,
				MaxExportBatchSize: obs.Tracer.MaxExportBatchSize,
			}
			if opt.Name == "" {
				opt.Name = cfg.AppName
			}
			if err := observes.NewTracer(opt); err != nil {
				logger.Warnf(ctx, "tracer init failed: %v", err)
			}
		}
	}

	d, dataCleanup, err := data.New(ctx, cfg.Data)
	if err != nil {
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to connect data layer: %w", err)
	}

	cleanup := func() {
		dataCleanup()
		loggerCleanup()
	}
	return &runtime{cfg: cfg, data: d}, cleanup, nil
}

// parseFilters turns repeated field=value flags into a filter map.
func parseFilters(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filter := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q, want field=value", pair)
		}
		filter[field] = value
	}
	return filter, nil
}

// buildQuery assembles a query template from command flags. A raw JSON
// template is decoded first; --text and --filter overlay it.
func buildQuery(text string, filters []string, rawQuery string) (search.Query, error) {
	q := search.MatchAll()
	if rawQuery != "" {
		if err := convert.FromJSON(rawQuery, &q); err != nil {
			return search.Query{}, fmt.Errorf("invalid query JSON: %w", err)
		}
	}
	if text != "" {
		q.Text = text
	}
	filter, err := parseFilters(filters)
	if err != nil {
		return search.Query{}, err
	}
	for field, value := range filter {
		if q.Filter == nil {
			q.Filter = make(map[string]any, len(filter))
		}
		q.Filter[field] = value
	}
	return q, nil
}
