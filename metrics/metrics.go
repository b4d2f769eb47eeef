package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yourusername/guardrail/core"
)

// Metrics tracks throttled logging and upload validation statistics
type Metrics struct {
	logsEmitted     atomic.Int64
	throttleNotices atomic.Int64
	logsDropped     atomic.Int64
	warnings        atomic.Int64
	errors          atomic.Int64
	uploadsAccepted atomic.Int64
	uploadsRejected atomic.Int64

	// Per-reason rejection counts
	mu         sync.RWMutex
	rejections map[string]int64
	startTime  time.Time

	logMessages *prometheus.CounterVec
	severities  *prometheus.CounterVec
	uploads     *prometheus.CounterVec
}

// NewMetrics creates a new metrics tracker.
// Collectors are registered on reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rejections: make(map[string]int64),
		startTime:  time.Now(),
		logMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardrail",
			Name:      "log_messages_total",
			Help:      "Informational log messages by throttle verdict.",
		}, []string{"verdict"}),
		severities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardrail",
			Name:      "log_severity_total",
			Help:      "Unthrottled warning and error emissions.",
		}, []string{"level"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guardrail",
			Name:      "upload_checks_total",
			Help:      "Upload validation results.",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(m.logMessages, m.severities, m.uploads)
	}

	return m
}

// RecordLog records the throttle verdict for one informational message
func (m *Metrics) RecordLog(verdict core.Verdict) {
	switch verdict {
	case core.Emit:
		m.logsEmitted.Add(1)
	case core.Notice:
		m.throttleNotices.Add(1)
	case core.Drop:
		m.logsDropped.Add(1)
	}
	m.logMessages.WithLabelValues(verdict.String()).Inc()
}

// RecordSeverity records an unthrottled warning or error emission
func (m *Metrics) RecordSeverity(level string) {
	switch level {
	case "warn":
		m.warnings.Add(1)
	case "error":
		m.errors.Add(1)
	}
	m.severities.WithLabelValues(level).Inc()
}

// RecordUpload records an upload validation outcome.
// reason is empty for accepted files.
func (m *Metrics) RecordUpload(accepted bool, reason string) {
	if accepted {
		m.uploadsAccepted.Add(1)
		m.uploads.WithLabelValues("accepted").Inc()
		return
	}

	m.uploadsRejected.Add(1)
	m.uploads.WithLabelValues("rejected").Inc()

	if reason == "" {
		reason = "unknown"
	}
	m.mu.Lock()
	m.rejections[reason]++
	m.mu.Unlock()
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() *Snapshot {
	m.mu.RLock()
	reasons := make([]RejectionStats, 0, len(m.rejections))
	for reason, count := range m.rejections {
		reasons = append(reasons, RejectionStats{Reason: reason, Count: count})
	}
	m.mu.RUnlock()

	sort.Slice(reasons, func(i, j int) bool {
		if reasons[i].Count != reasons[j].Count {
			return reasons[i].Count > reasons[j].Count
		}
		return reasons[i].Reason < reasons[j].Reason
	})

	uptime := time.Since(m.startTime)

	return &Snapshot{
		LogsEmitted:     m.logsEmitted.Load(),
		ThrottleNotices: m.throttleNotices.Load(),
		LogsDropped:     m.logsDropped.Load(),
		Warnings:        m.warnings.Load(),
		Errors:          m.errors.Load(),
		UploadsAccepted: m.uploadsAccepted.Load(),
		UploadsRejected: m.uploadsRejected.Load(),
		Rejections:      reasons,
		UptimeSeconds:   int64(uptime.Seconds()),
		StartTime:       m.startTime,
	}
}

// RejectionStats counts rejected uploads for one reason
type RejectionStats struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// Snapshot represents a point-in-time view of metrics
type Snapshot struct {
	LogsEmitted     int64            `json:"logs_emitted"`
	ThrottleNotices int64            `json:"throttle_notices"`
	LogsDropped     int64            `json:"logs_dropped"`
	Warnings        int64            `json:"warnings"`
	Errors          int64            `json:"errors"`
	UploadsAccepted int64            `json:"uploads_accepted"`
	UploadsRejected int64            `json:"uploads_rejected"`
	Rejections      []RejectionStats `json:"rejections"`
	UptimeSeconds   int64            `json:"uptime_seconds"`
	StartTime       time.Time        `json:"start_time"`
}
