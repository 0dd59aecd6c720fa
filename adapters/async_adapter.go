// File: adapters/async_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness-gated variants of the file and socket adapters.

package adapters

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/reactor"
)

// pollSlice bounds a single reactor wait so cancellation is noticed promptly.
const pollSlice = 50 * time.Millisecond

// Async waits for a descriptor to become ready, then performs the
// synchronous operation. Each wait uses its own reactor, so concurrent
// operations on different descriptors never steal each other's events.
type Async struct {
	files      *FileAdapter
	sockets    *SocketAdapter
	newReactor func() (reactor.EventReactor, error)
}

// NewAsync wraps the synchronous adapters.
func NewAsync(files *FileAdapter, sockets *SocketAdapter) *Async {
	return &Async{files: files, sockets: sockets, newReactor: reactor.NewReactor}
}

// Read waits for fd to become readable, then reads as FileAdapter.Read does.
func (a *Async) Read(ctx context.Context, fd int, b *iovec.Buffer, n int) (int, error) {
	if err := a.gate(ctx, "read", fd, reactor.EventRead, b, b.ReadLength, n); err != nil {
		return -1, err
	}
	return a.files.Read(fd, b, n)
}

// Write waits for fd to become writable, then writes as FileAdapter.Write does.
func (a *Async) Write(ctx context.Context, fd int, b *iovec.Buffer, n int) (int, error) {
	if err := a.gate(ctx, "write", fd, reactor.EventWrite, b, b.WriteLength, n); err != nil {
		return -1, err
	}
	return a.files.Write(fd, b, n)
}

// Recv waits for fd to become readable, then receives as SocketAdapter.Recv does.
func (a *Async) Recv(ctx context.Context, fd int, b *iovec.Buffer, n int, flags int) (int, error) {
	if err := a.gate(ctx, "recv", fd, reactor.EventRead, b, b.ReadLength, n); err != nil {
		return -1, err
	}
	return a.sockets.Recv(fd, b, n, flags)
}

// Send waits for fd to become writable, then sends as SocketAdapter.Send does.
func (a *Async) Send(ctx context.Context, fd int, b *iovec.Buffer, n int, flags int) (int, error) {
	if err := a.gate(ctx, "send", fd, reactor.EventWrite, b, b.WriteLength, n); err != nil {
		return -1, err
	}
	return a.sockets.Send(fd, b, n, flags)
}

// gate waits for readiness unless the request is already doomed, in which
// case the synchronous call reports the rejection without waiting. A held
// guard counts as doomed.
func (a *Async) gate(ctx context.Context, op string, fd int, ev reactor.EventType, b *iovec.Buffer, resolve func(int) int, n int) error {
	if b == nil || b.Busy() || b.Check(op, resolve(n)) != nil {
		return nil
	}
	return a.wait(ctx, op, fd, ev)
}

func (a *Async) wait(ctx context.Context, op string, fd int, ev reactor.EventType) error {
	if err := ctx.Err(); err != nil {
		return contextError(op, err)
	}
	r, err := a.newReactor()
	if err != nil {
		return api.OSError(op, err)
	}
	defer r.Close()
	if err := r.Register(fd, ev, 0); err != nil {
		// epoll refuses regular files and block devices; those never block.
		if errors.Is(err, syscall.EPERM) {
			return nil
		}
		return api.OSError(op, err)
	}

	events := make([]reactor.Event, 1)
	for {
		slice := pollSlice
		if deadline, ok := ctx.Deadline(); ok {
			if left := time.Until(deadline); left < slice {
				slice = left
			}
		}
		if slice < 0 {
			slice = 0
		}
		n, err := r.Wait(events, int(slice/time.Millisecond))
		if err != nil {
			return api.OSError(op, err)
		}
		if n > 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return contextError(op, err)
		}
	}
}

// contextError maps a context failure onto the errno taxonomy.
func contextError(op string, err error) error {
	errno := syscall.ECANCELED
	if errors.Is(err, context.DeadlineExceeded) {
		errno = syscall.ETIMEDOUT
	}
	return &api.Error{
		Code:    api.ErrCodeOS,
		Op:      op,
		Message: err.Error(),
		Errno:   errno,
		Err:     err,
	}
}
