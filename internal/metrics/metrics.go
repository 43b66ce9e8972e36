// Package metrics exports topic map activity to Prometheus. A Collector is
// an event.Sink; attach it to a map through its Config.Sink or an
// event.Fanout.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/event"
)

const (
	Namespace = "topicmap"

	MetricEvents              = "events_total"
	MetricMerges              = "merges_total"
	MetricDuplicatesCollapsed = "duplicates_collapsed_total"
	MetricTopics              = "topics"
)

// Collector counts construct events.
type Collector struct {
	events    *prometheus.CounterVec
	merges    prometheus.Counter
	collapsed *prometheus.CounterVec
	topics    prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricEvents,
				Help:      "Construct events by kind.",
			},
			[]string{"kind"},
		),
		merges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricMerges,
				Help:      "Topic merges, cascaded merges included.",
			},
		),
		collapsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      MetricDuplicatesCollapsed,
				Help:      "Duplicate constructs removed in favour of an equal one.",
			},
			[]string{"construct"},
		),
		topics: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      MetricTopics,
				Help:      "Live topics.",
			},
		),
	}
	for _, col := range []prometheus.Collector{c.events, c.merges, c.collapsed, c.topics} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register topic map metrics: %w", err)
		}
	}
	return c, nil
}

// OnEvent implements event.Sink.
func (c *Collector) OnEvent(_ context.Context, e event.Event) {
	c.events.WithLabelValues(string(e.Kind)).Inc()
	switch e.Kind {
	case event.TopicAdded:
		c.topics.Inc()
	case event.TopicRemoved:
		c.topics.Dec()
	case event.TopicsMerged:
		c.merges.Inc()
		c.topics.Dec()
	case event.NameRemoved, event.OccurrenceRemoved, event.VariantRemoved,
		event.AssociationRemoved, event.RoleRemoved:
		// A removal naming a survivor is a collapse.
		if e.New == nil {
			return
		}
		if old, ok := e.Old.(construct.Ref); ok {
			c.collapsed.WithLabelValues(old.Kind.String()).Inc()
		}
	}
}
