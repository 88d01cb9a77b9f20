// Package resource implements the Controller for global limits and governance.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: Track and limit memory reserved by arenas and mappings
//   - Concurrency: Limit background workers (block compression, etc.)
//   - IO: Rate-limit background IO so it does not starve foreground work
//
// All sizes are byte counts. A page count or a KiB count has to be converted
// with countof.To before it can be charged, so a budget is never exceeded by
// a unit mix-up.
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and an atomic
// counter for usage. AcquireMemory blocks until the reservation fits or the
// context is done; TryAcquireMemory fails fast:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimit: countof.To[countof.Byte](countof.GBs(1)),
//	})
//
//	if !rc.TryAcquireMemory(countof.To[countof.Byte](countof.MBs(1))) {
//	    // over budget, caller decides retry/backoff
//	}
//
// *Controller satisfies the arena's MemoryAcquirer, so every chunk an arena
// maps is charged against the same budget.
//
// # Background Worker Limits
//
//	if err := rc.AcquireBackground(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseBackground()
//
// # IO Rate Limiting
//
// Token bucket rate limiter with a burst of one second of budget:
//
//	writer := resource.NewRateLimitedWriter(ctx, file, rc)
//	reader := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Configuration
//
// ParseConfig reads limits from string settings ("memory_limit": "512MiB").
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
