// Package monitoring collects Prometheus metrics for the HTTP surface
// and the AI pipeline.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection.
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	usersRegisteredTotal   prometheus.Counter
	recipesGeneratedTotal  prometheus.Counter
	favoritesSavedTotal    prometheus.Counter
	chatMessagesTotal      *prometheus.CounterVec
	knowledgeSearchesTotal prometheus.Counter

	// AI metrics
	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec
}

// NewMetricsCollector creates a metrics collector with its own registry
// so repeated construction never double-registers.
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		usersRegisteredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total number of users registered",
			},
		),
		recipesGeneratedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_generated_total",
				Help: "Total number of recipe generation runs",
			},
		),
		favoritesSavedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "favorites_saved_total",
				Help: "Total number of favorite recipes saved",
			},
		),
		chatMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_messages_total",
				Help: "Total number of chat messages handled",
			},
			[]string{"context_type"},
		),
		knowledgeSearchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "knowledge_searches_total",
				Help: "Total number of knowledge base searches",
			},
		),

		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of AI requests",
			},
			[]string{"provider", "model", "status"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "AI request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider", "model"},
		),
	}
}

// Handler serves the metrics endpoint.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and durations. Paths are
// recorded as chi route patterns, not raw URLs, to bound cardinality.
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		statusCode := strconv.Itoa(ww.Status())
		m.httpRequestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, statusCode).
			Observe(time.Since(start).Seconds())
	})
}

// Business metric methods

func (m *MetricsCollector) UserRegistered() {
	m.usersRegisteredTotal.Inc()
}

func (m *MetricsCollector) RecipesGenerated() {
	m.recipesGeneratedTotal.Inc()
}

func (m *MetricsCollector) FavoriteSaved() {
	m.favoritesSavedTotal.Inc()
}

func (m *MetricsCollector) ChatMessage(contextType string) {
	m.chatMessagesTotal.WithLabelValues(contextType).Inc()
}

func (m *MetricsCollector) KnowledgeSearch() {
	m.knowledgeSearchesTotal.Inc()
}

// AIRequest records one upstream model call.
func (m *MetricsCollector) AIRequest(provider, model, status string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(provider, model, status).Inc()
	m.aiRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}
