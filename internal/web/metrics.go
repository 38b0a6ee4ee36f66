package web

import (
	"sync/atomic"
	"time"
)

// Metrics tracks request statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal  atomic.Int64
	ClientErrors   atomic.Int64
	ServerErrors   atomic.Int64
	ActiveRequests atomic.Int32
	LoginsTotal    atomic.Int64
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// RequestStarted counts a request entering the handler chain
func (m *Metrics) RequestStarted() {
	m.RequestsTotal.Add(1)
	m.ActiveRequests.Add(1)
}

// RequestFinished records the response status of a finished request
func (m *Metrics) RequestFinished(status int) {
	m.ActiveRequests.Add(-1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
}

// IncLogins increments the successful logins counter
func (m *Metrics) IncLogins() {
	m.LoginsTotal.Add(1)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Status         string    `json:"status"`
	RequestsTotal  int64     `json:"requests_total"`
	ClientErrors   int64     `json:"client_errors"`
	ServerErrors   int64     `json:"server_errors"`
	ActiveRequests int32     `json:"active_requests"`
	LoginsTotal    int64     `json:"logins_total"`
	StartTime      time.Time `json:"start_time"`
	Uptime         string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Status:         "ok",
		RequestsTotal:  m.RequestsTotal.Load(),
		ClientErrors:   m.ClientErrors.Load(),
		ServerErrors:   m.ServerErrors.Load(),
		ActiveRequests: m.ActiveRequests.Load(),
		LoginsTotal:    m.LoginsTotal.Load(),
		StartTime:      m.StartTime,
		Uptime:         time.Since(m.StartTime).Round(time.Second).String(),
	}
}
