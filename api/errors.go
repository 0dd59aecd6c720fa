// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the buffer gateway.
// Every gateway failure surfaces as an *Error carrying a code, the failing
// operation and the OS error number reported back to scripting code.

package api

import (
	"errors"
	"fmt"
	"syscall"
)

// Common errors used across the library.
var (
	ErrBusy              = errors.New("buffer busy")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoDevice          = errors.New("no such device or address")
	ErrBufferPoolClosed  = errors.New("buffer pool is closed")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrNotSupported      = errors.New("operation not supported")
	ErrNotFound          = errors.New("resource not found")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeBusy
	ErrCodeInvalidArgument
	ErrCodeNoDevice
	ErrCodeOS
	ErrCodeNotSupported
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeBusy:
		return "busy"
	case ErrCodeInvalidArgument:
		return "invalid"
	case ErrCodeNoDevice:
		return "nodevice"
	case ErrCodeOS:
		return "os"
	case ErrCodeNotSupported:
		return "notsupported"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Errno   syscall.Errno
	Err     error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap exposes the sentinel or OS error behind e.
func (e *Error) Unwrap() error { return e.Err }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Errno:   errnoForCode(code),
		Err:     sentinelForCode(code),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Busy reports that op found the buffer already held.
func Busy(op string) *Error {
	e := NewError(ErrCodeBusy, ErrBusy.Error())
	e.Op = op
	return e
}

// Invalid reports a caller error: bad length or an unbacked buffer.
func Invalid(op, why string) *Error {
	e := NewError(ErrCodeInvalidArgument, why)
	e.Op = op
	return e
}

// NoDevice reports a missing base region where storage was expected.
func NoDevice(op string) *Error {
	e := NewError(ErrCodeNoDevice, ErrNoDevice.Error())
	e.Op = op
	return e
}

// OSError wraps a failed system call verbatim. Errors that are not an
// errno are reported as EIO.
func OSError(op string, err error) *Error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		errno = syscall.EIO
	}
	return &Error{
		Code:    ErrCodeOS,
		Op:      op,
		Message: err.Error(),
		Errno:   errno,
		Err:     err,
	}
}

// Errno extracts the OS error number carried by err, 0 for nil.
func Errno(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Errno
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	switch {
	case errors.Is(err, ErrBusy):
		return syscall.EBUSY
	case errors.Is(err, ErrInvalidArgument):
		return syscall.EINVAL
	case errors.Is(err, ErrNoDevice):
		return syscall.ENXIO
	}
	return syscall.EIO
}

// CodeOf classifies err into the gateway taxonomy.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

func errnoForCode(code ErrorCode) syscall.Errno {
	switch code {
	case ErrCodeBusy:
		return syscall.EBUSY
	case ErrCodeInvalidArgument:
		return syscall.EINVAL
	case ErrCodeNoDevice:
		return syscall.ENXIO
	case ErrCodeNotSupported:
		return syscall.ENOTSUP
	case ErrCodeOK:
		return 0
	default:
		return syscall.EIO
	}
}

func sentinelForCode(code ErrorCode) error {
	switch code {
	case ErrCodeBusy:
		return ErrBusy
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeNoDevice:
		return ErrNoDevice
	case ErrCodeNotSupported:
		return ErrNotSupported
	default:
		return nil
	}
}
