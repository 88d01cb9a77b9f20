package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/countof"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Magnitude returns a pseudo-random magnitude in [0, limit).
// A zero limit draws from the full uint64 range.
func (r *RNG) Magnitude(limit uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit == 0 {
		return r.rand.Uint64()
	}
	return r.rand.Uint64() % limit
}

// Magnitudes returns n pseudo-random magnitudes in [0, limit).
// Locks only once per call.
func (r *RNG) Magnitudes(n int, limit uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, n)
	for i := range out {
		v := r.rand.Uint64()
		if limit != 0 {
			v %= limit
		}
		out[i] = v
	}
	return out
}

// Count returns a pseudo-random count of U below limit.
func Count[U any](r *RNG, limit countof.Count[U]) countof.Count[U] {
	return countof.Of[U](r.Magnitude(limit.ToUint64()))
}

// Text returns n pseudo-random printable ASCII characters, never NUL.
func (r *RNG) Text(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(' ' + r.rand.Intn('~'-' '+1))
	}
	return string(b)
}

// CString returns a NUL-terminated narrow string with n pseudo-random
// printable characters.
func (r *RNG) CString(n int) []countof.Char {
	return countof.CString(r.Text(n))
}

// WString returns a NUL-terminated wide string with n pseudo-random
// characters from the basic multilingual plane, never NUL or a surrogate.
func (r *RNG) WString(n int) []countof.WChar {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]countof.WChar, n+1)
	for i := range n {
		c := 1 + r.rand.Intn(0xD7FF)
		out[i] = countof.WChar(c) //nolint:gosec // c < 0xD800
	}
	return out
}
