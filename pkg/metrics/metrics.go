package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	ScheduleProjections *prometheus.CounterVec
	ForcedSlots         *prometheus.HistogramVec
	SkippedOrderFacts   *prometheus.CounterVec
	StaleScheduleWrites *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}, []string{}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}, []string{}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{}),

		ScheduleProjections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_projections_total",
			Help:        "Number of schedules projected for editing",
			ConstLabels: labels,
		}, []string{"result"}),
		ForcedSlots: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "schedule_forced_slots",
			Help:        "Number of booked slots marked per projection",
			ConstLabels: labels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{}),
		SkippedOrderFacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_skipped_order_facts_total",
			Help:        "Orders that could not be mapped to a schedule cell",
			ConstLabels: labels,
		}, []string{}),
		StaleScheduleWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_stale_writes_total",
			Help:        "Schedule writes rejected because bookings changed or a concurrent edit won",
			ConstLabels: labels,
		}, []string{"reason"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ScheduleProjections,
		m.ForcedSlots,
		m.SkippedOrderFacts,
		m.StaleScheduleWrites,
	)

	return m
}

// ObserveProjection фиксирует результат построения расписания для редактора
func (m *Metrics) ObserveProjection(result string, forced int, skipped int) {
	if m == nil {
		return
	}
	m.ScheduleProjections.WithLabelValues(result).Inc()
	m.ForcedSlots.WithLabelValues().Observe(float64(forced))
	if skipped > 0 {
		m.SkippedOrderFacts.WithLabelValues().Add(float64(skipped))
	}
}

// ObserveStaleWrite фиксирует отклонённую запись расписания
func (m *Metrics) ObserveStaleWrite(reason string) {
	if m == nil {
		return
	}
	m.StaleScheduleWrites.WithLabelValues(reason).Inc()
}
