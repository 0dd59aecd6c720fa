// File: core/iovec/guard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-buffer non-reentrant critical section.

package iovec

import "github.com/momentics/hioload-iovec/api"

// Guard is the token for a held buffer. Obtain it with Acquire and release it
// with a deferred Release so every exit path clears the busy flag.
type Guard struct {
	b    *Buffer
	done bool
}

// Acquire takes the buffer's guard on behalf of op, failing with
// api.ErrBusy when another operation holds it.
func (b *Buffer) Acquire(op string) (Guard, error) {
	return b.acquire(op)
}

func (b *Buffer) acquire(op string) (Guard, error) {
	if !b.busy.CompareAndSwap(false, true) {
		return Guard{}, api.Busy(op)
	}
	return Guard{b: b}, nil
}

// Release clears the busy flag. Calling it again is a no-op.
func (g *Guard) Release() {
	if g.done || g.b == nil {
		return
	}
	g.done = true
	g.b.busy.Store(false)
}

// Buffer returns the guarded buffer.
func (g *Guard) Buffer() *Buffer { return g.b }

// Base returns the full-capacity region, nil when the buffer lost its storage.
// The slice must not be retained past Release.
func (g *Guard) Base() []byte {
	if g.done || g.b == nil {
		return nil
	}
	return g.b.base
}

// Len returns the current length.
func (g *Guard) Len() int { return g.b.Len() }

// SetLen records n valid bytes. n outside [0, capacity] is a programming
// error and panics.
func (g *Guard) SetLen(n int) {
	if g.done {
		panic("iovec: SetLen after Release")
	}
	if n < 0 || n > g.b.capacity {
		panic("iovec: length out of range")
	}
	g.b.length.Store(int64(n))
}
