// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"errors"
	"fmt"

	"gioui.org/glsafe/gl"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them; test with errors.Is.
var (
	ErrResourceDeleted              = errors.New("resource deleted")
	ErrAlreadyDeleted               = errors.New("resource already deleted")
	ErrWrongContext                 = errors.New("resource belongs to an incompatible context")
	ErrResourceNotBound             = errors.New("required resource not bound")
	ErrIndexBufferAlreadyConfigured = errors.New("vertex array index buffer already configured")
	ErrAttributeAlreadyAssigned     = errors.New("vertex attribute already assigned")
	ErrFeedbackLoop                 = errors.New("framebuffer feedback loop")
	ErrFramebufferInvalid           = errors.New("framebuffer incomplete")
	ErrNonCompliantDevice           = errors.New("device does not meet minimum limits")
	ErrAttachmentMisconfigured      = errors.New("attachment misconfigured")
	ErrInvalidArgument              = errors.New("invalid argument")
	ErrQueryActive                  = errors.New("query already active")
	ErrDriver                       = errors.New("driver error")
)

// Error describes a rejected operation.
type Error struct {
	// Op is the name of the rejected operation, such as "Buffers.Bind".
	Op   string
	Kind error
	// Object is the offending object, if any.
	Object Object
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("glsafe: %s: %v", e.Op, e.Kind)
	if e.Object != nil {
		msg += fmt.Sprintf(" (%v)", e.Object)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, o Object, format string, args ...interface{}) error {
	e := &Error{Op: op, Kind: kind, Object: o}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

func invalidArg(op string, format string, args ...interface{}) error {
	return newError(op, ErrInvalidArgument, nil, format, args...)
}

// FramebufferStatus is the outcome of a framebuffer completeness check.
type FramebufferStatus uint8

const (
	StatusComplete FramebufferStatus = iota
	StatusMissingAttachment
	StatusIncompleteAttachment
	StatusIncompleteDrawBuffer
	StatusIncompleteReadBuffer
	StatusUnsupported
	StatusUnknown
)

func (s FramebufferStatus) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusMissingAttachment:
		return "missing attachment"
	case StatusIncompleteAttachment:
		return "incomplete attachment"
	case StatusIncompleteDrawBuffer:
		return "incomplete draw buffer"
	case StatusIncompleteReadBuffer:
		return "incomplete read buffer"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

func statusFromGL(st gl.Enum) FramebufferStatus {
	switch st {
	case gl.FRAMEBUFFER_COMPLETE:
		return StatusComplete
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACH:
		return StatusMissingAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return StatusIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return StatusIncompleteDrawBuffer
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return StatusIncompleteReadBuffer
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return StatusUnsupported
	default:
		return StatusUnknown
	}
}

// FramebufferError reports a framebuffer that failed the driver's
// completeness check.
type FramebufferError struct {
	Framebuffer *Framebuffer
	Status      FramebufferStatus
	// Code is the raw value returned by the driver.
	Code gl.Enum
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("glsafe: %v: %v: %s (status %#x)", e.Framebuffer, ErrFramebufferInvalid, e.Status, e.Code)
}

func (e *FramebufferError) Unwrap() error {
	return ErrFramebufferInvalid
}

// LimitError reports a device limit below the required minimum.
type LimitError struct {
	Limit    string
	Reported int
	Required int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("glsafe: %v: %s is %d, need at least %d", ErrNonCompliantDevice, e.Limit, e.Reported, e.Required)
}

func (e *LimitError) Unwrap() error {
	return ErrNonCompliantDevice
}

// glErr polls the driver error flag.
func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}

// driverErr wraps a failed glErr poll.
func driverErr(op string, o Object, err error) error {
	return newError(op, ErrDriver, o, "%v", err)
}
