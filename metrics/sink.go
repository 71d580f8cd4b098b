package metrics

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auth "github.com/goliatone/go-auth-api"
	"github.com/goliatone/go-auth-api/activitymap"
)

const namespace = "auth_api"

// Sink counts activity events by channel and verb
type Sink struct {
	events   *prometheus.CounterVec
	registry *prometheus.Registry
}

var _ auth.ActivitySink = (*Sink)(nil)

// NewSink registers its collectors on a fresh registry, together with the
// go runtime and process collectors.
func NewSink() *Sink {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_events_total",
		Help:      "Activity events recorded, by channel and verb.",
	}, []string{"channel", "verb"})
	registry.MustRegister(events)

	return &Sink{events: events, registry: registry}
}

// Record implements auth.ActivitySink
func (s *Sink) Record(_ context.Context, event auth.ActivityEvent) error {
	n := activitymap.Normalize(event)
	s.events.WithLabelValues(n.Channel, n.Verb).Inc()
	return nil
}

// Events exposes the counter, tests read it with testutil
func (s *Sink) Events() *prometheus.CounterVec {
	return s.events
}

// Handler serves the registry in the prometheus exposition format
func (s *Sink) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// RegisterRoutes mounts GET /metrics on r
func RegisterRoutes(r fiber.Router, s *Sink) {
	r.Get("/metrics", s.Handler()).Name("metrics.get")
}
