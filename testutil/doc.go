// Package testutil provides testing utilities for countof.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG for generating magnitudes, typed
// counts and NUL-terminated narrow and wide strings.
//
//	rng := testutil.NewRNG(seed)
//	n := testutil.Count(rng, countof.Pages(1 << 20))   // PageCount below 2^20
//	s := rng.CString(16)                               // 16 chars + NUL
//	w := rng.WString(16)                               // 16 wchars + NUL
package testutil
