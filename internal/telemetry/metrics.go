package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the calculation engine.
type Metrics struct {
	Calculations        *prometheus.CounterVec
	CalculationDuration prometheus.Histogram
	Mutations           *prometheus.CounterVec
	Messages            *prometheus.CounterVec
	CompanyCost         prometheus.Histogram
	ReportRows          *prometheus.CounterVec
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "payroll"
	}
	f := promauto.With(reg)

	return &Metrics{
		Calculations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "calculations_total",
				Help:      "Calculations processed, by outcome",
			},
			[]string{"tenant_id", "outcome"},
		),
		CalculationDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "calculation_duration_seconds",
				Help:      "Time spent processing one calculation request",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
		),
		Mutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "mutations_total",
				Help:      "Mutations processed, by definition and result",
			},
			[]string{"mutation", "result"},
		),
		Messages: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "messages_total",
				Help:      "Calculation messages emitted, by level and code",
			},
			[]string{"level", "code"},
		),
		CompanyCost: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "payroll",
				Name:      "company_cost_euros",
				Help:      "Yearly employer cost of calculated packages",
				Buckets:   prometheus.ExponentialBuckets(10000, 1.5, 10),
			},
		),
		ReportRows: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "rows_total",
				Help:      "Batch report rows, by result",
			},
			[]string{"result"},
		),
	}
}
