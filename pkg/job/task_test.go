package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"* * * * *", "0 * * * *", "*/15 * * * *", "@hourly"} {
		s, err := parseSchedule(expr)
		require.NoError(t, err, expr)
		now := time.Now()
		assert.True(t, s.Next(now).After(now), expr)
	}

	_, err := parseSchedule("every hour")
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()
	_, err := NewManager(nil)
	require.ErrorIs(t, err, ErrPoolRequired)
}

type tickTask struct{ runs *int }

func (tickTask) Name() string { return "tick" }
func (tickTask) Schedule() string { return "@every 1m" }
func (t tickTask) Handle(context.Context) error {
	*t.runs++
	return nil
}

func TestScheduledExecutorIgnoresPayload(t *testing.T) {
	t.Parallel()

	var runs int
	exec := scheduled(tickTask{runs: &runs})
	require.NoError(t, exec(context.Background(), []byte(`{"ignored":true}`)))
	assert.Equal(t, 1, runs)

	_, err := parseSchedule(tickTask{}.Schedule())
	require.NoError(t, err)
}
