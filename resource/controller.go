package resource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/hupe1980/countof"
	"github.com/hupe1980/countof/internal/conv"
)

// ErrMemoryLimitExceeded is returned when a single request is larger than
// the whole memory limit and can therefore never be granted.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimit is the hard limit for managed memory.
	// If zero, no hard limit is enforced (only tracking).
	MemoryLimit countof.ByteCount

	// MaxBackgroundWorkers is the maximum number of concurrent background jobs.
	// If 0, defaults to 1.
	MaxBackgroundWorkers int64

	// IOLimitPerSec is the maximum IO throughput for background tasks.
	// If zero, unlimited.
	IOLimitPerSec countof.ByteCount

	// Logger receives limit warnings. Defaults to a no-op logger.
	Logger *countof.Logger

	// Metrics receives memory reservations, releases and rejections.
	// Defaults to a no-op collector.
	Metrics countof.MetricsCollector
}

// Controller manages global resources (memory, concurrency, IO).
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Uint64

	// Concurrency
	bgSem *semaphore.Weighted

	// IO
	ioLimiter *rate.Limiter
	ioBurst   uint64

	logger  *countof.Logger
	metrics countof.MetricsCollector
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		bgSem:   semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
		logger:  countof.NoopLogger(),
		metrics: countof.NoopMetricsCollector{},
	}
	if cfg.Logger != nil {
		c.logger = cfg.Logger.WithComponent("resource")
	}
	if cfg.Metrics != nil {
		c.metrics = cfg.Metrics
	}

	if !cfg.MemoryLimit.IsZero() {
		c.memSem = semaphore.NewWeighted(weight(cfg.MemoryLimit))
	}

	if !cfg.IOLimitPerSec.IsZero() {
		c.ioBurst = min(cfg.IOLimitPerSec.ToUint64(), math.MaxInt32)
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitPerSec.ToUint64()), int(c.ioBurst))
	}

	return c
}

// weight converts a byte count into a semaphore weight, saturating at
// math.MaxInt64.
func weight(n countof.ByteCount) int64 {
	w, err := conv.ToInt64(n.ToUint64())
	if err != nil {
		return math.MaxInt64
	}
	return w
}

// AcquireMemory reserves n bytes. If a hard limit is configured and usage
// would exceed it, this blocks until memory is released or ctx is done.
// A request larger than the limit fails immediately with
// ErrMemoryLimitExceeded.
func (c *Controller) AcquireMemory(ctx context.Context, n countof.ByteCount) error {
	if c == nil || n.IsZero() {
		return nil
	}

	if c.memSem != nil {
		if n.Gt(c.cfg.MemoryLimit) {
			c.reject(ctx, n)
			return fmt.Errorf("%w: requested %s, limit %s", ErrMemoryLimitExceeded,
				countof.Humanize(n), countof.Humanize(c.cfg.MemoryLimit))
		}
		if err := c.memSem.Acquire(ctx, weight(n)); err != nil {
			c.reject(ctx, n)
			return err
		}
	}

	c.reserve(n)
	return nil
}

// TryAcquireMemory reserves n bytes without blocking.
// Returns false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(n countof.ByteCount) bool {
	if c == nil || n.IsZero() {
		return true
	}

	if c.memSem != nil && !c.memSem.TryAcquire(weight(n)) {
		c.reject(context.Background(), n)
		return false
	}

	c.reserve(n)
	return true
}

func (c *Controller) reserve(n countof.ByteCount) {
	c.memUsed.Add(n.ToUint64())
	c.metrics.RecordAlloc(n, nil)
}

func (c *Controller) reject(ctx context.Context, n countof.ByteCount) {
	c.metrics.RecordReject(n)
	c.logger.LogLimit(ctx, n, c.MemoryUsage(), c.cfg.MemoryLimit)
}

// ReleaseMemory releases n previously reserved bytes.
func (c *Controller) ReleaseMemory(n countof.ByteCount) {
	if c == nil || n.IsZero() {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(weight(n))
	}
	c.memUsed.Add(^(n.ToUint64() - 1))
	c.metrics.RecordFree(n)
}

// MemoryUsage returns the memory currently reserved.
func (c *Controller) MemoryUsage() countof.ByteCount {
	if c == nil {
		return countof.Bytes(0)
	}
	return countof.Bytes(c.memUsed.Load())
}

// MemoryLimit returns the configured memory limit (zero if unlimited).
func (c *Controller) MemoryLimit() countof.ByteCount {
	if c == nil {
		return countof.Bytes(0)
	}
	return c.cfg.MemoryLimit
}

// AcquireBackground reserves a background worker slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.bgSem.Acquire(ctx, 1)
}

// TryAcquireBackground reserves a background worker slot without blocking.
func (c *Controller) TryAcquireBackground() bool {
	if c == nil {
		return true
	}
	return c.bgSem.TryAcquire(1)
}

// ReleaseBackground releases a background worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// AcquireIO waits until the IO limit allows n bytes. Requests larger than
// one second of budget are granted in installments.
func (c *Controller) AcquireIO(ctx context.Context, n countof.ByteCount) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	for left := n.ToUint64(); left > 0; {
		step := min(left, c.ioBurst)
		if err := c.ioLimiter.WaitN(ctx, int(step)); err != nil { //nolint:gosec // step <= ioBurst <= MaxInt32
			return err
		}
		left -= step
	}
	return nil
}

// TryAcquireIO takes IO tokens for n bytes without blocking.
// Returns true if the tokens were available.
func (c *Controller) TryAcquireIO(n countof.ByteCount) bool {
	if c == nil || c.ioLimiter == nil {
		return true
	}
	if n.ToUint64() > c.ioBurst {
		return false
	}
	return c.ioLimiter.AllowN(time.Now(), int(n.ToUint64())) //nolint:gosec // bounded by ioBurst
}
