package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database metrics
	DatabaseConnections   prometheus.Gauge
	DatabaseQueryDuration *prometheus.HistogramVec
	DatabaseQueriesTotal  *prometheus.CounterVec

	// Business metrics
	UsersTotal        prometheus.Gauge
	TradesTotal       prometheus.Gauge
	CollectionsTotal  prometheus.Gauge
	TradesCreated     *prometheus.CounterVec
	TradeQueriesTotal *prometheus.CounterVec
	ExportsTotal      prometheus.Counter
	OptionCacheHits   *prometheus.CounterVec

	// Auth metrics
	AuthRequestsTotal *prometheus.CounterVec
	TokenRefreshTotal *prometheus.CounterVec

	// Error metrics
	ErrorsTotal        *prometheus.CounterVec
	PanicRecoveryTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		DatabaseConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Number of active database connections",
			},
		),
		DatabaseQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "database_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DatabaseQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),

		UsersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "journal_users_total",
				Help: "Total number of registered users",
			},
		),
		TradesTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "journal_trades_total",
				Help: "Total number of logged trades",
			},
		),
		CollectionsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "journal_collections_total",
				Help: "Total number of trade collections",
			},
		),
		TradesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_trades_created_total",
				Help: "Total number of trades created since start",
			},
			[]string{"win_loss", "trading_session"},
		),
		TradeQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_trade_queries_total",
				Help: "Total number of DataTable queries served",
			},
			[]string{"status"},
		),
		ExportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "journal_exports_total",
				Help: "Total number of export requests served",
			},
		),
		OptionCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "journal_option_cache_requests_total",
				Help: "Option listing cache lookups by outcome",
			},
			[]string{"kind", "outcome"},
		),

		AuthRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"method", "status"},
		),
		TokenRefreshTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_token_refresh_total",
				Help: "Total number of token refresh attempts",
			},
			[]string{"status"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errors_total",
				Help: "Total number of errors by component",
			},
			[]string{"component", "error_type"},
		),
		PanicRecoveryTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panic_recovery_total",
				Help: "Total number of recovered panics",
			},
			[]string{"component"},
		),
	}
}

// HTTPMetricsMiddleware returns a gin middleware that records HTTP metrics
func (m *Metrics) HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration)
	}
}

// RecordDatabaseQuery records database query metrics
func (m *Metrics) RecordDatabaseQuery(operation, table string, duration time.Duration, err error) {
	m.DatabaseQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseQueriesTotal.WithLabelValues(operation, table, status).Inc()
}

// RecordTradeCreated records a trade creation with its derived labels
func (m *Metrics) RecordTradeCreated(winLoss, tradingSession string) {
	m.TradesCreated.WithLabelValues(winLoss, tradingSession).Inc()
}

// RecordTradeQuery records one DataTable query
func (m *Metrics) RecordTradeQuery(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.TradeQueriesTotal.WithLabelValues(status).Inc()
}

// RecordAuthRequest records authentication request metrics
func (m *Metrics) RecordAuthRequest(method, status string) {
	m.AuthRequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordTokenRefresh records token refresh metrics
func (m *Metrics) RecordTokenRefresh(status string) {
	m.TokenRefreshTotal.WithLabelValues(status).Inc()
}

// RecordError records error metrics
func (m *Metrics) RecordError(component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// RecordPanicRecovery records panic recovery metrics
func (m *Metrics) RecordPanicRecovery(component string) {
	m.PanicRecoveryTotal.WithLabelValues(component).Inc()
}

// UpdateBusinessMetrics sets the periodically refreshed gauges
func (m *Metrics) UpdateBusinessMetrics(users, trades, collections int64) {
	m.UsersTotal.Set(float64(users))
	m.TradesTotal.Set(float64(trades))
	m.CollectionsTotal.Set(float64(collections))
}

// SetDatabaseConnections updates the database connection gauge
func (m *Metrics) SetDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}
