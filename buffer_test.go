// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"testing"

	"gioui.org/glsafe/gl"
)

func TestBufferBindIdempotent(t *testing.T) {
	d, f := newTestDevice(t)
	b := mustBuffer(t, d, 16)
	d.Buffers().Unbind()
	f.Reset()
	for i := 0; i < 3; i++ {
		if err := d.Buffers().Bind(b); err != nil {
			t.Fatal(err)
		}
	}
	if n := f.Calls("BindBuffer"); n != 1 {
		t.Errorf("got %d BindBuffer calls, expected 1", n)
	}
	if !d.Buffers().IsBound(b) || d.Buffers().Bound() != b {
		t.Error("buffer not reported as bound")
	}
	d.Buffers().Unbind()
	d.Buffers().Unbind()
	if n := f.Calls("BindBuffer"); n != 2 {
		t.Errorf("got %d BindBuffer calls, expected 2", n)
	}
	if d.Buffers().Bound() != nil {
		t.Error("expected no buffer bound after Unbind")
	}
}

func TestBufferUnbindOnDelete(t *testing.T) {
	d, f := newTestDevice(t)
	b := mustBuffer(t, d, 16)
	if err := d.Buffers().Bind(b); err != nil {
		t.Fatal(err)
	}
	if err := d.Buffers().Delete(b); err != nil {
		t.Fatal(err)
	}
	if d.Buffers().IsBound(b) || d.Buffers().Bound() != nil {
		t.Error("deleted buffer still bound")
	}
	if err := d.Buffers().Bind(b); !errors.Is(err, ErrResourceDeleted) {
		t.Errorf("got %v, expected ErrResourceDeleted", err)
	}
	if err := d.Buffers().Delete(b); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("got %v, expected ErrAlreadyDeleted", err)
	}
	// Binding a new buffer must reach the driver even though the tracker
	// was cleared without a native call.
	b2 := mustBuffer(t, d, 16)
	d.Buffers().Unbind()
	f.Reset()
	if err := d.Buffers().Bind(b2); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BindBuffer"); n != 1 {
		t.Errorf("got %d BindBuffer calls, expected 1", n)
	}
}

func TestBufferUpload(t *testing.T) {
	d, f := newTestDevice(t)
	b, err := d.Buffers().NewWithData(make([]byte, 32), gl.DYNAMIC_DRAW)
	if err != nil {
		t.Fatal(err)
	}
	if b.Size() != 32 {
		t.Errorf("got size %d, expected 32", b.Size())
	}
	f.Reset()
	if err := d.Buffers().Upload(b, 8, make([]byte, 8)); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BufferData"); n != 0 {
		t.Errorf("partial upload orphaned the buffer")
	}
	if err := d.Buffers().Upload(b, 0, make([]byte, 32)); err != nil {
		t.Fatal(err)
	}
	if n := f.Calls("BufferData"); n != 1 {
		t.Errorf("got %d BufferData calls for a full upload, expected 1", n)
	}
	if err := d.Buffers().Upload(b, 30, make([]byte, 4)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, expected ErrInvalidArgument", err)
	}
	if _, err := d.Buffers().New(16, gl.TRIANGLES); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v for an unknown usage, expected ErrInvalidArgument", err)
	}
}

func TestBufferUploadRejectedKeepsBinding(t *testing.T) {
	d, f := newTestDevice(t)
	a := mustBuffer(t, d, 16)
	b := mustBuffer(t, d, 16)
	if err := d.Buffers().Bind(a); err != nil {
		t.Fatal(err)
	}
	f.Reset()
	if err := d.Buffers().Upload(b, 12, make([]byte, 8)); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, expected ErrInvalidArgument", err)
	}
	if d.Buffers().Bound() != a {
		t.Errorf("rejected upload changed the array buffer binding to %v", d.Buffers().Bound())
	}
	if n := f.Calls("BindBuffer"); n != 0 {
		t.Errorf("got %d BindBuffer calls for a rejected upload, expected 0", n)
	}
}

func TestBufferDriverError(t *testing.T) {
	d, f := newTestDevice(t)
	f.FailOn("BufferData", gl.OUT_OF_MEMORY)
	_, err := d.Buffers().New(1<<20, gl.STATIC_DRAW)
	if !errors.Is(err, ErrDriver) {
		t.Fatalf("got %v, expected ErrDriver", err)
	}
	if d.Buffers().Bound() != nil {
		t.Error("failed buffer left bound")
	}
	if n := f.Calls("DeleteBuffer"); n != 1 {
		t.Errorf("got %d DeleteBuffer calls, expected 1", n)
	}
}
