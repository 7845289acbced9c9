// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"gioui.org/glsafe/gl"
	"gioui.org/glsafe/internal/glstub"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	d, err := NewDevice(glstub.New(), nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if _, err := d.Framebuffers().Allocate(FramebufferDesc{}); err == nil {
		t.Fatal("expected an incomplete framebuffer")
	}
	out := buf.String()
	for _, want := range []string{"device created", "framebuffer incomplete", "missing attachment"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
	d, err := NewDevice(glstub.New(), nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()
	if _, err := d.Buffers().New(4, gl.STATIC_DRAW); err != nil {
		t.Fatal(err)
	}
}
