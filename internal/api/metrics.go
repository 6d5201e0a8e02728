package api

import (
	"errors"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// operation names one gateway call for errors and metrics.
type operation struct {
	resource string
	name     string
	fallback string // message used when a failed response carries none
}

func (o operation) String() string {
	return o.resource + "." + o.name
}

var (
	opFetchLeaves     = operation{resource: "leaves", name: "fetch", fallback: "Failed to load leaves"}
	opApplyLeave      = operation{resource: "leaves", name: "apply", fallback: "Failed to submit leave"}
	opFetchTimesheets = operation{resource: "timesheets", name: "fetch", fallback: "Failed to load timesheets"}
	opSubmitTimesheet = operation{resource: "timesheets", name: "submit", fallback: "Failed to submit"}
	opFetchProfile    = operation{resource: "profile", name: "fetch", fallback: "Error loading profile"}
	opSaveProfile     = operation{resource: "profile", name: "save", fallback: "Failed to save profile"}
	opLogin           = operation{resource: "users", name: "login", fallback: "Login failed"}
)

const (
	outcomeOK          = "ok"
	outcomeTransport   = "transport_error"
	outcomeApplication = "application_error"
)

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindApplication {
		return outcomeApplication
	}
	return outcomeTransport
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var metricLabels = []string{"resource", "operation", "outcome"}

// newMetrics builds the gateway collectors and registers them on reg when it
// is non-nil.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emphub_gateway_requests_total",
			Help: "Employee API calls by resource, operation and outcome.",
		}, metricLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emphub_gateway_request_duration_seconds",
			Help:    "Employee API call latency.",
			Buckets: prometheus.DefBuckets,
		}, metricLabels),
	}
	if reg == nil {
		return m
	}
	m.requests = register(reg, m.requests)
	m.duration = register(reg, m.duration)
	return m
}

// register returns the already registered collector when reg has one with
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		log.Printf("metrics register failed: %v", err)
	}
	return c
}

func (m *metrics) observe(op operation, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op.resource, op.name, result).Inc()
	m.duration.WithLabelValues(op.resource, op.name, result).Observe(d.Seconds())
}
