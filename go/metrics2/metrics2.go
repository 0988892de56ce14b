// Package metrics2 is a thin, tag-oriented layer over Prometheus.
//
// Metrics are identified by a measurement name plus a set of tags. Asking for
// the same name and tags twice returns the same metric.
package metrics2

import (
	"time"
)

// Int64Metric is a gauge that holds an int64.
type Int64Metric interface {
	Get() int64
	Update(v int64)
	Delete() error
}

// Float64SummaryMetric accumulates observations into quantiles.
type Float64SummaryMetric interface {
	Observe(v float64)
}

// Counter is an Int64Metric that is only ever moved by relative amounts.
type Counter interface {
	Get() int64
	Inc(i int64)
	Dec(i int64)
	Reset()
	Delete() error
}

// Timer measures elapsed time and reports it when stopped.
type Timer interface {
	Start()
	Stop() time.Duration
}

// Client creates metrics.
type Client interface {
	GetInt64Metric(name string, tags ...map[string]string) Int64Metric
	GetCounter(name string, tags ...map[string]string) Counter
	GetFloat64SummaryMetric(name string, tags ...map[string]string) Float64SummaryMetric
	NewTimer(name string, tags ...map[string]string) Timer
	Flush() error
}

// DefaultClient registers its metrics with prometheus.DefaultRegisterer.
var DefaultClient Client = newPromClient()

// GetInt64Metric uses DefaultClient.
func GetInt64Metric(name string, tags ...map[string]string) Int64Metric {
	return DefaultClient.GetInt64Metric(name, tags...)
}

// GetCounter uses DefaultClient.
func GetCounter(name string, tags ...map[string]string) Counter {
	return DefaultClient.GetCounter(name, tags...)
}

// GetFloat64SummaryMetric uses DefaultClient.
func GetFloat64SummaryMetric(name string, tags ...map[string]string) Float64SummaryMetric {
	return DefaultClient.GetFloat64SummaryMetric(name, tags...)
}

// NewTimer uses DefaultClient.
func NewTimer(name string, tags ...map[string]string) Timer {
	return DefaultClient.NewTimer(name, tags...)
}
