package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounter_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	c := NewCounter(reg)
	c.WithLabelValues(LaudoCreated).Inc()
	c.WithLabelValues(LaudoCreated).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues(LaudoCreated)))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "laudos_general_counters", mfs[0].GetName())

	assert.Panics(t, func() { NewCounter(reg) }, "second registration on the same registry must fail")
}

func TestNewCounter_NilRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCounter(nil).WithLabelValues(RequestsTotal).Inc()
		NewCounter(nil).WithLabelValues(RequestsTotal).Inc()
	})
}
