// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"testing"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in   string
		ver  [2]int
		gles bool
	}{
		{"OpenGL ES 3.0 Mesa 21.0", [2]int{3, 0}, true},
		{"WebGL 2.0", [2]int{3, 0}, true},
		{"4.6.0 NVIDIA 470.86", [2]int{4, 6}, false},
		{"3.3 (Core Profile) Mesa 21.2.6", [2]int{3, 3}, false},
	}
	for _, test := range tests {
		ver, gles, err := ParseGLVersion(test.in)
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if ver != test.ver || gles != test.gles {
			t.Errorf("%q: got %v (es=%v), expected %v (es=%v)", test.in, ver, gles, test.ver, test.gles)
		}
	}
	if _, _, err := ParseGLVersion("garbage"); err == nil {
		t.Error("expected error for unparseable version")
	}
}
