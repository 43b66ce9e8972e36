package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/topicmapgo/internal/config"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/ctxlog"
	"github.com/specialistvlad/topicmapgo/internal/event"
	"github.com/specialistvlad/topicmapgo/internal/fixture"
	"github.com/specialistvlad/topicmapgo/internal/index"
	"github.com/specialistvlad/topicmapgo/internal/metrics"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *config.Config
	base     construct.Locator
	tm       *topicmap.TopicMap
	index    *index.Index
	loader   *fixture.Loader
	events   *event.Counter
	registry *prometheus.Registry
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. cfg must already be validated.
func NewApp(outW, logW io.Writer, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.Log, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.Log.Level, "format", cfg.Log.Format)

	base, err := construct.ParseLocator(cfg.Map.BaseLocator)
	if err != nil {
		return nil, fmt.Errorf("invalid base locator: %w", err)
	}

	events := &event.Counter{}
	sinks := event.Fanout{events, event.LogSink{}}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		collector, err := metrics.NewCollector(registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		sinks = append(sinks, collector)
		logger.Debug("Metrics collector registered.")
	}

	tm := topicmap.New(topicmap.Config{
		Sink:                 sinks,
		AutoItemIdentifiers:  cfg.Map.AutoItemIdentifiers,
		ItemIdentifierPrefix: cfg.Map.ItemIdentifierPrefix,
	})
	logger.Debug("Topic map created.", "auto_item_identifiers", cfg.Map.AutoItemIdentifiers)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		base:     base,
		tm:       tm,
		index:    index.New(tm),
		loader:   fixture.NewLoader(base),
		events:   events,
		registry: registry,
	}, nil
}

// withLogger attaches the application logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// TopicMap returns the application's topic map. This is primarily for testing.
func (a *App) TopicMap() *topicmap.TopicMap {
	return a.tm
}

// Index returns the index facade over the application's topic map.
func (a *App) Index() *index.Index {
	return a.index
}
