// SPDX-License-Identifier: Unlicense OR MIT

package byteslice

import "testing"

func TestRoundTrip(t *testing.T) {
	in := []float32{1, -2.5, 3.25, 0}
	b := Slice(in)
	if len(b) != 16 {
		t.Fatalf("got %d bytes, expected 16", len(b))
	}
	out, ok := Float32s(b, 4, 2)
	if !ok {
		t.Fatal("decode failed")
	}
	if out[0] != -2.5 || out[1] != 3.25 {
		t.Errorf("got %v, expected [-2.5 3.25]", out)
	}
	if _, ok := Float32s(b, 8, 3); ok {
		t.Error("expected out of range decode to fail")
	}
	if Slice([]float32(nil)) != nil {
		t.Error("expected nil view of empty slice")
	}
}
