// Package metrics exposes board state as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/hylla/lanes/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric name.
const namespace = "lanes"

// Collector owns a private registry with the board metrics.
type Collector struct {
	registry      *prometheus.Registry
	items         *prometheus.GaugeVec
	notifications prometheus.Counter
	changes       *prometheus.CounterVec
}

// NewCollector registers the board metrics plus the Go runtime collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Items currently on the board, by lane.",
		}, []string{"lane"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Store change notifications observed.",
		}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Board changes recorded, by operation.",
		}, []string{"operation"}),
	}
	c.registry.MustRegister(
		c.items,
		c.notifications,
		c.changes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, lane := range domain.Lanes() {
		c.items.WithLabelValues(string(lane)).Set(0)
	}
	return c
}

// Observe updates the lane gauges from one store snapshot.
func (c *Collector) Observe(items []domain.Item) {
	c.notifications.Inc()
	counts := map[domain.Lane]int{}
	for _, item := range items {
		counts[item.Lane]++
	}
	for _, lane := range domain.Lanes() {
		c.items.WithLabelValues(string(lane)).Set(float64(counts[lane]))
	}
}

// RecordEvent counts one derived change event.
func (c *Collector) RecordEvent(event domain.ChangeEvent) {
	c.changes.WithLabelValues(string(event.Operation)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
