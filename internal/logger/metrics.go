package logger

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Metrics collects the counters, gauges and elapsed times of one run.
// It is a zapcore.ObjectMarshaler, so the whole set is logged as a single typed object.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	elapsed  map[string]time.Duration
}

var defaultMetrics = NewMetrics()

// NewMetrics creates an empty metrics set
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// IncrCounter adds one to a counter
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge records the latest value of a gauge
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming adds duration to the time spent in name
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elapsed[name] += duration
}

// Counter returns the current value of a counter
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Gauge returns the last value set for a gauge
func (m *Metrics) Gauge(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.gauges[name]
	return v, ok
}

// Elapsed returns the total time recorded under name
func (m *Metrics) Elapsed(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed[name]
}

// Reset clears all metrics
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.elapsed = make(map[string]time.Duration)
}

// MarshalLogObject writes counters, gauges and elapsed times as nested objects
// with keys in sorted order.
func (m *Metrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := enc.AddObject("counters", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, k := range sortedKeys(m.counters) {
			enc.AddInt64(k, m.counters[k])
		}
		return nil
	})); err != nil {
		return err
	}

	if err := enc.AddObject("gauges", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, k := range sortedKeys(m.gauges) {
			enc.AddFloat64(k, m.gauges[k])
		}
		return nil
	})); err != nil {
		return err
	}

	return enc.AddObject("elapsed", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, k := range sortedKeys(m.elapsed) {
			enc.AddDuration(k, m.elapsed[k])
		}
		return nil
	}))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IncrCounter increments a counter on the default metrics set
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// SetGauge sets a gauge on the default metrics set
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records elapsed time on the default metrics set
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// Counter reads a counter from the default metrics set
func Counter(name string) int64 {
	return defaultMetrics.Counter(name)
}

// ResetMetrics clears the default metrics set
func ResetMetrics() {
	defaultMetrics.Reset()
}

// LogMetrics writes the default metrics set as one INFO entry on the default logger
func LogMetrics(message string) {
	getDefault().Metrics(message, defaultMetrics)
}
