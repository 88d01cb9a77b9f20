package resource

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/countof"
)

func TestController_Memory(t *testing.T) {
	metrics := &countof.BasicMetricsCollector{}
	c := NewController(Config{MemoryLimit: countof.Bytes(100), Metrics: metrics})
	ctx := context.Background()

	require.NoError(t, c.AcquireMemory(ctx, countof.Bytes(50)))
	assert.Equal(t, countof.Bytes(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(ctx, countof.Bytes(40)))
	assert.Equal(t, countof.Bytes(90), c.MemoryUsage())

	// TryAcquire 20 (should fail)
	assert.False(t, c.TryAcquireMemory(countof.Bytes(20)))
	assert.Equal(t, countof.Bytes(90), c.MemoryUsage())

	// Acquire 20 (should block until the deadline)
	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireMemory(tctx, countof.Bytes(20)), context.DeadlineExceeded)

	c.ReleaseMemory(countof.Bytes(50))
	assert.Equal(t, countof.Bytes(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(ctx, countof.Bytes(20)))
	assert.Equal(t, countof.Bytes(60), c.MemoryUsage())

	stats := metrics.GetStats()
	assert.Equal(t, uint64(3), stats.AllocCount)
	assert.Equal(t, uint64(2), stats.RejectCount)
	assert.Equal(t, countof.Bytes(40), stats.RejectBytes)
	assert.Equal(t, countof.Bytes(60), stats.Live())
}

func TestController_AcquireMemoryLargerThanLimit(t *testing.T) {
	c := NewController(Config{MemoryLimit: countof.To[countof.Byte](countof.KBs(4))})

	err := c.AcquireMemory(context.Background(), countof.To[countof.Byte](countof.Pages(1)))
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Contains(t, err.Error(), "8.0 KiB")
	assert.True(t, c.MemoryUsage().IsZero())
}

func TestController_AcquireMemoryWakesUp(t *testing.T) {
	c := NewController(Config{MemoryLimit: countof.Bytes(10)})
	require.True(t, c.TryAcquireMemory(countof.Bytes(10)))

	done := make(chan error, 1)
	go func() {
		done <- c.AcquireMemory(context.Background(), countof.Bytes(5))
	}()

	c.ReleaseMemory(countof.Bytes(5))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("AcquireMemory did not return after release")
	}
	assert.Equal(t, countof.Bytes(10), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), countof.Bytes(1000)))
	assert.Equal(t, countof.Bytes(1000), c.MemoryUsage())
	assert.True(t, c.MemoryLimit().IsZero())

	c.ReleaseMemory(countof.Bytes(500))
	assert.Equal(t, countof.Bytes(500), c.MemoryUsage())
}

func TestController_Concurrency(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 2})

	require.NoError(t, c.AcquireBackground(context.Background()))
	require.NoError(t, c.AcquireBackground(context.Background()))

	assert.False(t, c.TryAcquireBackground())

	c.ReleaseBackground()

	assert.True(t, c.TryAcquireBackground())
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireBackground())
	assert.False(t, c.TryAcquireBackground())
}

func TestController_ConcurrentMemory(t *testing.T) {
	c := NewController(Config{MemoryLimit: countof.To[countof.Byte](countof.KBs(64))})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				n := countof.To[countof.Byte](countof.KBs(1))
				if assert.NoError(t, c.AcquireMemory(context.Background(), n)) {
					c.ReleaseMemory(n)
				}
			}
		}()
	}
	wg.Wait()

	assert.True(t, c.MemoryUsage().IsZero())
}

func TestController_IO(t *testing.T) {
	c := NewController(Config{IOLimitPerSec: countof.Bytes(1000)})

	// The bucket starts full.
	assert.True(t, c.TryAcquireIO(countof.Bytes(1000)))
	assert.False(t, c.TryAcquireIO(countof.Bytes(500)))
	assert.False(t, c.TryAcquireIO(countof.Bytes(2000)), "larger than burst")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireIO(ctx, countof.Bytes(500)))
}

func TestController_IOUnlimited(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireIO(countof.To[countof.Byte](countof.GBs(1))))
	assert.NoError(t, c.AcquireIO(context.Background(), countof.To[countof.Byte](countof.GBs(1))))
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	assert.NoError(t, c.AcquireMemory(ctx, countof.Bytes(1)))
	assert.True(t, c.TryAcquireMemory(countof.Bytes(1)))
	c.ReleaseMemory(countof.Bytes(1))
	assert.True(t, c.MemoryUsage().IsZero())
	assert.True(t, c.MemoryLimit().IsZero())

	assert.NoError(t, c.AcquireBackground(ctx))
	assert.True(t, c.TryAcquireBackground())
	c.ReleaseBackground()

	assert.NoError(t, c.AcquireIO(ctx, countof.Bytes(1)))
	assert.True(t, c.TryAcquireIO(countof.Bytes(1)))
}
