package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	tableQueriesTotal         *prometheus.CounterVec
	tableQueryDuration        *prometheus.HistogramVec
	tableRowsReturned         *prometheus.HistogramVec
	itemMutationsTotal        *prometheus.CounterVec
	entryMutationsTotal       *prometheus.CounterVec
	entryAmount               *prometheus.HistogramVec
	reportRequestsTotal       *prometheus.CounterVec
	reportDuration            prometheus.Histogram
	usersRegisteredTotal      prometheus.Counter
	activeUsersTotal          prometheus.Gauge
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		tableQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_table_queries_total",
				Help: "Total number of datatable query requests",
			},
			[]string{"table", "status"},
		),
		tableQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_table_query_duration_milliseconds",
				Help:    "Datatable query duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"table"},
		),
		tableRowsReturned: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_table_rows_returned",
				Help:    "Rows returned per datatable query",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"table"},
		),
		itemMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_item_mutations_total",
				Help: "Total number of item create, update, and delete operations",
			},
			[]string{"operation", "status"},
		),
		entryMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_entry_mutations_total",
				Help: "Total number of entry create, update, and delete operations",
			},
			[]string{"kind", "operation", "status"},
		),
		entryAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_entry_amount",
				Help:    "Entry amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
			[]string{"kind"},
		),
		reportRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_report_requests_total",
				Help: "Total number of dashboard report requests",
			},
			[]string{"report", "status"},
		),
		reportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fintrack_report_duration_milliseconds",
				Help:    "Report aggregation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		usersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "fintrack_users_registered_total",
				Help: "Total number of users registered",
			},
		),
		activeUsersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "fintrack_active_users_total",
				Help: "Current number of active users",
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	table := tags["table"]
	operation := tags["operation"]
	status := tags["status"]
	kind := tags["kind"]

	switch name {
	case "table_query":
		if table != "" && status != "" {
			m.tableQueriesTotal.WithLabelValues(table, status).Inc()
		}
	case "item_mutation":
		if operation != "" && status != "" {
			m.itemMutationsTotal.WithLabelValues(operation, status).Inc()
		}
	case "entry_mutation":
		if kind != "" && operation != "" && status != "" {
			m.entryMutationsTotal.WithLabelValues(kind, operation, status).Inc()
		}
	case "report_request":
		if report := tags["report"]; report != "" && status != "" {
			m.reportRequestsTotal.WithLabelValues(report, status).Inc()
		}
	case "user_registered":
		m.usersRegisteredTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "items_query":
		m.tableQueryDuration.WithLabelValues("items").Observe(float64(duration.Milliseconds()))
	case "incomes_query":
		m.tableQueryDuration.WithLabelValues("incomes").Observe(float64(duration.Milliseconds()))
	case "expenses_query":
		m.tableQueryDuration.WithLabelValues("expenses").Observe(float64(duration.Milliseconds()))
	case "report":
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "entry_amount":
		if kind := tags["kind"]; kind != "" {
			m.entryAmount.WithLabelValues(kind).Observe(value)
		}
	case "active_users":
		m.activeUsersTotal.Set(value)
	case "table_rows_returned":
		if table := tags["table"]; table != "" {
			m.tableRowsReturned.WithLabelValues(table).Observe(value)
		}
	}
}
