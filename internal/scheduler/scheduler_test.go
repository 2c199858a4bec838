package scheduler

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ekiden-tracker/internal/engine"
	"github.com/yourusername/ekiden-tracker/internal/provider"
)

func testScheduler(t *testing.T) *Scheduler {
	t.Helper()

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	// A file provider pointed at an empty dir; the scheduler's behavior
	// under test never depends on fetches succeeding.
	p := provider.NewFileProvider(t.TempDir(), provider.DefaultDocumentPaths(), quiet)
	svc := engine.NewRefreshService(p, engine.NewSnapshotStore(), quiet)

	return NewScheduler(svc, log.New(io.Discard, "", 0))
}

func TestSchedulePollingFloorsInterval(t *testing.T) {
	s := testScheduler(t)

	require.NoError(t, s.SchedulePolling(1))
	require.NoError(t, s.Start())
	defer s.Stop()

	// A sub-5s interval is floored to 5s
	next := s.GetNextRun()
	require.False(t, next.IsZero())
	assert.LessOrEqual(t, time.Until(next), 5*time.Second+time.Second)
}

func TestStartWithoutJobs(t *testing.T) {
	s := testScheduler(t)

	err := s.Start()
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestStartTwice(t *testing.T) {
	s := testScheduler(t)

	require.NoError(t, s.SchedulePolling(30))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
}

func TestScheduleWhileRunning(t *testing.T) {
	s := testScheduler(t)

	require.NoError(t, s.SchedulePolling(30))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.SchedulePolling(30))
	assert.Error(t, s.ScheduleCourseRefresh("@every 6h"))
}

func TestScheduleCourseRefreshInvalidExpression(t *testing.T) {
	s := testScheduler(t)

	assert.Error(t, s.ScheduleCourseRefresh("not a cron expression"))
}

func TestStopIdempotent(t *testing.T) {
	s := testScheduler(t)

	require.NoError(t, s.SchedulePolling(30))
	require.NoError(t, s.Start())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop())
}

func TestEntries(t *testing.T) {
	s := testScheduler(t)

	require.NoError(t, s.SchedulePolling(30))
	require.NoError(t, s.ScheduleCourseRefresh("@every 6h"))

	assert.Len(t, s.Entries(), 2)
}
