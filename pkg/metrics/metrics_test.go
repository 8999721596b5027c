package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBookingSubmission(t *testing.T) {
	m := NewWithRegistry("salon", prometheus.NewRegistry())

	m.RecordBookingSubmission("created")
	m.RecordBookingSubmission("created")
	m.RecordBookingSubmission("slot_full")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingSubmissions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingSubmissions.WithLabelValues("slot_full")))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordBookingSubmission("created")
		m.RecordSlotTxRetry("postgres")
	})
}
