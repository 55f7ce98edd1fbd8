package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds the crowbar-inventory collectors, the go runtime and
	// process collectors are left out since each run is a short lived process.
	Registry = prometheus.NewRegistry()

	RequestsCounter       *prometheus.CounterVec
	RequestRunTimeSummary *prometheus.SummaryVec
	ResponseBytes         *prometheus.CounterVec
	LastRequestTimestamp  prometheus.Gauge

	ErrTextfile = errors.New("error writing metrics textfile")
)

func init() {
	factory := promauto.With(Registry)

	RequestsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crowbar_inventory_requests_total",
			Help: "A counter metric to measure the total count of inventory requests, by query kind and response status",
		},
		[]string{"query", "status"}, // status is the HTTP status code, or error
	)

	RequestRunTimeSummary = factory.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "crowbar_inventory_request_duration_seconds",
			Help: "A summary metric to measure the time spent in each inventory request",
		},
		[]string{"query"},
	)

	ResponseBytes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crowbar_inventory_response_bytes_total",
			Help: "A counter metric to measure inventory response bodies received in bytes",
		},
		[]string{"query"},
	)

	LastRequestTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "crowbar_inventory_last_request_timestamp_seconds",
			Help: "Unix timestamp of the last inventory request",
		},
	)
}

// ObserveRequest records an inventory request outcome.
func ObserveRequest(query, status string, startTS time.Time, responseBytes int) {
	RequestsCounter.WithLabelValues(query, status).Inc()
	RequestRunTimeSummary.WithLabelValues(query).Observe(time.Since(startTS).Seconds())
	ResponseBytes.WithLabelValues(query).Add(float64(responseBytes))
	LastRequestTimestamp.Set(float64(startTS.Unix()))
}

// WriteTextfile writes the registry to filename in the text exposition format
// for the node-exporter textfile collector.
//
// No file is written when filename is empty.
func WriteTextfile(filename string) error {
	if filename == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(filename, Registry); err != nil {
		return errors.Wrap(ErrTextfile, err.Error())
	}

	return nil
}
