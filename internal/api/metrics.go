package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the client side request metrics
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadedBytes   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filegrip_api_requests_total",
				Help: "Total number of requests sent to the file server",
			},
			[]string{"op", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filegrip_api_request_duration_seconds",
				Help:    "File server request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		uploadedBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "filegrip_api_uploaded_bytes_total",
				Help: "Total bytes uploaded to the file server",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration, m.uploadedBytes)
	}
	return m
}

// observe records one finished attempt; status 0 means a transport error
func (m *Metrics) observe(op string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(op, label).Inc()
	m.requestDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) addUploaded(n int) {
	if m == nil {
		return
	}
	m.uploadedBytes.Add(float64(n))
}
