package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingSubmissions *prometheus.CounterVec
	SlotTxRetries      *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		BookingSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SlotTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_transaction_retries_total",
			Help:        "Slot transaction retries caused by store conflicts",
			ConstLabels: constLabels,
		}, []string{"store"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBWaitCount,
		m.BookingSubmissions,
		m.SlotTxRetries,
	)

	return m
}

// RecordBookingSubmission учитывает результат попытки бронирования
// Безопасно вызывать на nil
func (m *Metrics) RecordBookingSubmission(result string) {
	if m == nil {
		return
	}
	m.BookingSubmissions.WithLabelValues(result).Inc()
}

// RecordSlotTxRetry учитывает повтор транзакции слота
func (m *Metrics) RecordSlotTxRetry(store string) {
	if m == nil {
		return
	}
	m.SlotTxRetries.WithLabelValues(store).Inc()
}
