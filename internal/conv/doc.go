// Package conv provides checked integer conversions.
//
// Counts are stored as uint64. Handing them to APIs that take int, int64 or
// uint32 goes through these helpers wherever the value comes from outside
// (file sizes, block headers, configuration), so an oversized value becomes
// an error instead of a silently truncated length.
//
// The unchecked accessors on countof.Count (ToInt, ToUlong) stay unchecked;
// this package is for the layers built on top of them.
package conv
