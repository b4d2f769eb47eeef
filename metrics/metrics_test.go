package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/guardrail/core"
)

func TestMetrics_RecordLog(t *testing.T) {
	m := NewMetrics(nil)

	for i := 0; i < 5; i++ {
		m.RecordLog(core.Emit)
	}
	m.RecordLog(core.Notice)
	m.RecordLog(core.Drop)
	m.RecordLog(core.Drop)

	snap := m.GetSnapshot()
	assert.Equal(t, int64(5), snap.LogsEmitted)
	assert.Equal(t, int64(1), snap.ThrottleNotices)
	assert.Equal(t, int64(2), snap.LogsDropped)
}

func TestMetrics_RecordSeverity(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordSeverity("warn")
	m.RecordSeverity("warn")
	m.RecordSeverity("error")

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.Warnings)
	assert.Equal(t, int64(1), snap.Errors)
}

func TestMetrics_RecordUpload(t *testing.T) {
	m := NewMetrics(nil)

	m.RecordUpload(true, "")
	m.RecordUpload(false, "mime_type")
	m.RecordUpload(false, "mime_type")
	m.RecordUpload(false, "size")
	m.RecordUpload(false, "")

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.UploadsAccepted)
	assert.Equal(t, int64(4), snap.UploadsRejected)

	require.Len(t, snap.Rejections, 3)
	assert.Equal(t, RejectionStats{Reason: "mime_type", Count: 2}, snap.Rejections[0])
	assert.Equal(t, RejectionStats{Reason: "size", Count: 1}, snap.Rejections[1])
	assert.Equal(t, RejectionStats{Reason: "unknown", Count: 1}, snap.Rejections[2])
}

func TestMetrics_PrometheusCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordLog(core.Emit)
	m.RecordLog(core.Notice)
	m.RecordSeverity("error")
	m.RecordUpload(false, "size")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.logMessages.WithLabelValues("emit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logMessages.WithLabelValues("notice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.severities.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("rejected")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}
