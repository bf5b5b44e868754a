// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/mytheresa/product-barcode/barcode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BarcodeValidations  *prometheus.CounterVec
	CodesImported       prometheus.Counter
}

// New registers the collectors on reg with names starting with prefix.
func New(reg prometheus.Registerer, prefix string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		BarcodeValidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_barcode_validations_total",
				Help: "Product code validations by barcode type and outcome",
			},
			[]string{"barcode", "outcome"},
		),
		CodesImported: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_codes_imported_total",
				Help: "Product codes created by CSV imports",
			},
		),
	}
}

// ObserveValidation implements barcode.Recorder.
func (m *Metrics) ObserveValidation(barcodeType string, outcome barcode.Outcome) {
	m.BarcodeValidations.WithLabelValues(barcodeType, string(outcome)).Inc()
}

// ObserveImport counts the codes created by one import.
func (m *Metrics) ObserveImport(count int) {
	m.CodesImported.Add(float64(count))
}
