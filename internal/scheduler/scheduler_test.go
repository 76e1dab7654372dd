package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRuns(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := New(20*time.Millisecond, log)

	var runs atomic.Int32
	require.NoError(t, s.Start(context.Background(), func(context.Context) {
		runs.Add(1)
	}))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestSchedulerNoOverlap(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := New(10*time.Millisecond, log)

	var (
		running atomic.Int32
		overlap atomic.Bool
		runs    atomic.Int32
	)
	require.NoError(t, s.Start(context.Background(), func(context.Context) {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(35 * time.Millisecond)
		running.Add(-1)
		runs.Add(1)
	}))

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()
	assert.False(t, overlap.Load())
}

func TestSchedulerStop(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := New(10*time.Millisecond, log)

	var runs atomic.Int32
	require.NoError(t, s.Start(context.Background(), func(context.Context) {
		runs.Add(1)
	}))
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestSchedulerCancelsJob(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	s := New(time.Hour, log)

	canceled := make(chan struct{})
	require.NoError(t, s.Start(context.Background(), func(ctx context.Context) {
		<-ctx.Done()
		close(canceled)
	}))
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("job was not canceled")
	}
}

func TestSchedulerInterval(t *testing.T) {
	s := New(0, nil)
	assert.Error(t, s.Start(context.Background(), func(context.Context) {}))
}
