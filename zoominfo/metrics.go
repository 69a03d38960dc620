package zoominfo

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects request counters for a Client. A nil *Metrics records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	authentications *prometheus.CounterVec
	pages           prometheus.Counter
	records         prometheus.Counter
	latency         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ziclient_requests_total",
			Help: "ZoomInfo API requests by method and HTTP status (0 for transport errors).",
		}, []string{"method", "status"}),
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ziclient_authentications_total",
			Help: "Credential exchanges by result.",
		}, []string{"result"}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ziclient_pages_fetched_total",
			Help: "Search result pages fetched.",
		}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ziclient_records_fetched_total",
			Help: "Records accumulated from paged searches.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ziclient_request_duration_seconds",
			Help:    "ZoomInfo API request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.requests, m.authentications, m.pages, m.records, m.latency)

	return m
}

func (m *Metrics) observeRequest(method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.latency.Observe(took.Seconds())
}

func (m *Metrics) observeAuthentication(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.authentications.WithLabelValues(result).Inc()
}

func (m *Metrics) observePage(records int) {
	if m == nil {
		return
	}
	m.pages.Inc()
	m.records.Add(float64(records))
}
