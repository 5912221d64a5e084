package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
// Все методы безопасны для вызова на nil-получателе (метрики выключены)
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	slotsGenerated  prometheus.Counter
	slotConflicts   prometheus.Counter
	stockConflicts  prometheus.Counter
	requestOutcomes *prometheus.CounterVec
	interventions   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		slotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Total number of technician slots created by the generator",
			ConstLabels: constLabels,
		}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_reservation_conflicts_total",
			Help:        "Reserve attempts rejected because the slot was already taken",
			ConstLabels: constLabels,
		}),
		stockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "stock_insufficient_total",
			Help:        "Part consumptions rejected for insufficient stock",
			ConstLabels: constLabels,
		}),
		requestOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Booking request transitions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		interventions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "intervention_transitions_total",
			Help:        "Intervention state transitions by target status",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.slotsGenerated,
		m.slotConflicts,
		m.stockConflicts,
		m.requestOutcomes,
		m.interventions,
	)

	return m
}

// ObserveHTTPRequest записывает результат HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

func (m *Metrics) AddSlotsGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

func (m *Metrics) IncSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

func (m *Metrics) IncStockConflict() {
	if m == nil {
		return
	}
	m.stockConflicts.Inc()
}

// IncRequestOutcome outcome: submitted, confirmed, refused, cancelled
func (m *Metrics) IncRequestOutcome(outcome string) {
	if m == nil {
		return
	}
	m.requestOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncInterventionTransition(status string) {
	if m == nil {
		return
	}
	m.interventions.WithLabelValues(status).Inc()
}
