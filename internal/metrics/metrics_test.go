package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordEvaluation(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(EvaluationsTotal.WithLabelValues("staked"))

	assert.NotPanics(t, func() {
		RecordEvaluation("staked", 0.0004, 0.62)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(EvaluationsTotal.WithLabelValues("staked")))
}

func TestRecordTags(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name string
		tags []string
	}{
		{name: "no tags", tags: nil},
		{name: "single gate tag", tags: []string{"mid_value"}},
		{name: "gate and tracking tags", tags: []string{"dog_value", "fade", "serve_conflict"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordTags(tt.tags)
			})
		})
	}
}

func TestRecordRejection(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RejectionsTotal.WithLabelValues("price_below_floor"))

	RecordRejection("price_below_floor")

	assert.Equal(t, before+1, testutil.ToFloat64(RejectionsTotal.WithLabelValues("price_below_floor")))
}

func TestSetActiveProfileClearsPrevious(t *testing.T) {
	InitRegistry()

	SetActiveProfile("default", "1.0.0")
	SetActiveProfile("aggressive", "2.0.0")

	assert.Equal(t, 1, testutil.CollectAndCount(ProfileInfo))
	assert.Equal(t, float64(1), testutil.ToFloat64(ProfileInfo.WithLabelValues("aggressive", "2.0.0")))
}

func TestUpdateMemoHitRatio(t *testing.T) {
	InitRegistry()

	UpdateMemoHitRatio(0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(MemoHitRatio))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordBreakout()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "matchedge_breakouts_total"))
}
