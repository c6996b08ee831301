package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/health"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()
		assert.True(t, health.Run(context.Background(), nil).Healthy())
	})

	t.Run("one failure marks the report unhealthy", func(t *testing.T) {
		t.Parallel()
		report := health.Run(context.Background(), health.Checks{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
		})
		assert.False(t, report.Healthy())
		assert.Equal(t, health.StatusHealthy, report.Checks["postgres"].Status)
		assert.Equal(t, "dial tcp: refused", report.Checks["redis"].Error)
	})

	t.Run("timeout cancels slow checks", func(t *testing.T) {
		t.Parallel()
		report := health.Run(context.Background(), health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, health.WithTimeout(10*time.Millisecond))
		assert.False(t, report.Healthy())
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("readiness json", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler(health.Checks{
			"catalog": func(context.Context) error { return errors.New("no active locale") },
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var report health.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, health.StatusUnhealthy, report.Status)
		assert.Equal(t, "no active locale", report.Checks["catalog"].Error)
	})
}
