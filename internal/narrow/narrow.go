// Package narrow decides which of two fixed numeric widths a decoded number
// occupies.
package narrow

import "math"

const (
	// Int32Min and Int32Max bound the values stored as 32-bit integers.
	Int32Min = math.MinInt32
	Int32Max = math.MaxInt32

	// Float32Min and Float32Max bound the values stored as 32-bit floats.
	Float32Min = -math.MaxFloat32
	Float32Max = math.MaxFloat32
)

// FitsInt32 reports whether v lies in the inclusive int32 range.
func FitsInt32(v int64) bool { return v >= Int32Min && v <= Int32Max }

// FitsFloat32 reports whether v lies in the inclusive range of finite float32
// values. This is a range check only: a value inside the range may still lose
// precision when converted. NaN and infinities never fit.
func FitsFloat32(v float64) bool { return v >= Float32Min && v <= Float32Max }

// Uint64ToInt64 converts v when it does not exceed math.MaxInt64.
func Uint64ToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
