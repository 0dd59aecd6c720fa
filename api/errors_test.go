package api_test

import (
	"errors"
	"fmt"
	"io"
	"syscall"
	"testing"

	"github.com/momentics/hioload-iovec/api"
)

func TestTaxonomy(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		code     api.ErrorCode
		errno    syscall.Errno
	}{
		{api.Busy("read"), api.ErrBusy, api.ErrCodeBusy, syscall.EBUSY},
		{api.Invalid("write", "length exceeds capacity"), api.ErrInvalidArgument, api.ErrCodeInvalidArgument, syscall.EINVAL},
		{api.NoDevice("pread"), api.ErrNoDevice, api.ErrCodeNoDevice, syscall.ENXIO},
		{api.OSError("recvfrom", syscall.ECONNREFUSED), syscall.ECONNREFUSED, api.ErrCodeOS, syscall.ECONNREFUSED},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, tc.sentinel) {
			t.Errorf("%v does not match %v", tc.err, tc.sentinel)
		}
		if api.CodeOf(tc.err) != tc.code || api.Errno(tc.err) != tc.errno {
			t.Errorf("%v: code %v errno %v", tc.err, api.CodeOf(tc.err), api.Errno(tc.err))
		}
		wrapped := fmt.Errorf("outer: %w", tc.err)
		if api.Errno(wrapped) != tc.errno {
			t.Errorf("wrapped %v lost errno", tc.err)
		}
	}
}

func TestErrnoFallbacks(t *testing.T) {
	if api.Errno(nil) != 0 || api.CodeOf(nil) != api.ErrCodeOK {
		t.Fatal("nil error classified")
	}
	if api.Errno(syscall.EAGAIN) != syscall.EAGAIN {
		t.Fatal("bare errno not passed through")
	}
	if api.Errno(io.EOF) != syscall.EIO || api.CodeOf(io.EOF) != api.ErrCodeInternal {
		t.Fatal("foreign error not mapped to EIO")
	}
	if e := api.OSError("copyin", io.ErrUnexpectedEOF); e.Errno != syscall.EIO || !errors.Is(e, io.ErrUnexpectedEOF) {
		t.Fatalf("non-errno cause: %+v", e)
	}
}

func TestErrorMessage(t *testing.T) {
	err := api.Invalid("write", "length exceeds capacity").WithContext("length", 32)
	if got := err.Error(); got != "write: length exceeds capacity (context: map[length:32])" {
		t.Fatalf("message %q", got)
	}
}

func TestTransferStatus(t *testing.T) {
	n, msg, errno := api.NewTransfer(12, nil).Status()
	if n != 12 || msg != "" || errno != 0 {
		t.Fatalf("success = %d %q %d", n, msg, errno)
	}
	tr := api.NewTransfer(-1, api.Busy("read"))
	if tr.Ok() {
		t.Fatal("failed transfer reported ok")
	}
	n, msg, errno = tr.Status()
	if n != -1 || msg != syscall.EBUSY.Error() || errno != int(syscall.EBUSY) {
		t.Fatalf("failure = %d %q %d", n, msg, errno)
	}
	if !(api.Result[string]{Value: "x"}).Ok() {
		t.Fatal("result without error not ok")
	}
}
