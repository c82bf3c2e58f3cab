package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordOperation("consume", OutcomeOK, 5*time.Millisecond)
	m.RecordOperation("consume", OutcomeOK, 5*time.Millisecond)
	m.RecordOperation("consume", "InsufficientUnits", time.Millisecond)

	expected := `
# HELP kitty_ledger_operations_total Ledger operations by name and outcome (ok or failure reason).
# TYPE kitty_ledger_operations_total counter
kitty_ledger_operations_total{operation="consume",outcome="InsufficientUnits"} 1
kitty_ledger_operations_total{operation="consume",outcome="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "kitty_ledger_operations_total"))

	n, err := testutil.GatherAndCount(reg, "kitty_ledger_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("consume", OutcomeOK, time.Millisecond)
		m.RecordRetry()
		m.RecordExhausted()
	})
}
