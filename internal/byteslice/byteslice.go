// SPDX-License-Identifier: Unlicense OR MIT

// Package byteslice converts between typed slices and their byte
// representation for buffer and uniform uploads.
package byteslice

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Slice returns a byte view of s sharing its memory.
func Slice[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// Float32s decodes n native-endian float32 values from b starting at off.
// It returns false if b is too short.
func Float32s(b []byte, off, n int) ([]float32, bool) {
	if off < 0 || n < 0 || off+4*n > len(b) {
		return nil, false
	}
	v := make([]float32, n)
	for i := range v {
		v[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[off+4*i:]))
	}
	return v, true
}
