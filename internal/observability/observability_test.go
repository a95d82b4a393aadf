package observability_test

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportkeys/internal/observability"
)

func TestLogger_WritesContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("transportkeys", "test", &buf).WithContact("bob").WithTransport("lan")
	log.KeySetAdded("ks-1", true, 42, "abcd")

	out := buf.String()
	for _, want := range []string{`"contact_id":"bob"`, `"transport_id":"lan"`, `"key_set_id":"ks-1"`, `"time_period":42`} {
		assert.Contains(t, out, want)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := observability.NewLogger("transportkeys", "test", &buf)
	require.NoError(t, log.SetLevel("warn"))
	log.Info("hidden")
	assert.Empty(t, buf.String())

	assert.Error(t, log.SetLevel("loud"))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.RecordRotation(false, 2)
	m.RecordRotation(true, 1)
	m.RecordStoreOperation("save", nil)
	m.RecordStoreOperation("save", errors.New("disk full"))
	m.SetKeySets(3, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RotationsTotal.WithLabelValues("ephemeral")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues("save", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.KeySets.WithLabelValues("ephemeral")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), "transportkeys_rotations_total"))
}
