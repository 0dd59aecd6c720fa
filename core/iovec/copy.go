// File: core/iovec/copy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Copy-in / copy-out primitives between a Buffer and caller memory.

package iovec

import (
	"io"

	"github.com/momentics/hioload-iovec/api"
)

// CopyIn copies n bytes of src into the buffer and sets its length to n.
// n == Auto copies all of src. A src shorter than n fails before any byte
// moves.
func (b *Buffer) CopyIn(src []byte, n int) error {
	const op = "copyin"
	if n == Auto {
		n = len(src)
	}
	if err := b.Check(op, n); err != nil {
		return err
	}
	g, err := b.acquire(op)
	if err != nil {
		return err
	}
	defer g.Release()

	base := g.Base()
	if base == nil {
		return api.NoDevice(op)
	}
	if len(src) < n {
		return api.Invalid(op, "source shorter than length").
			WithContext("length", n).
			WithContext("source", len(src))
	}
	copy(base[:n], src[:n])
	g.SetLen(n)
	return nil
}

// CopyInFrom fills the buffer with exactly n bytes read from r. n == Auto
// reads a full capacity. If r cannot supply n bytes the previous length is
// restored; region bytes past it may have been overwritten.
func (b *Buffer) CopyInFrom(r io.Reader, n int) error {
	const op = "copyin"
	n = b.ReadLength(n)
	if err := b.Check(op, n); err != nil {
		return err
	}
	g, err := b.acquire(op)
	if err != nil {
		return err
	}
	defer g.Release()

	base := g.Base()
	if base == nil {
		return api.NoDevice(op)
	}
	prev := g.Len()
	g.SetLen(n)
	if _, err := io.ReadFull(r, base[:n]); err != nil {
		g.SetLen(prev)
		return api.OSError(op, err)
	}
	return nil
}

// CopyOut copies n bytes from the start of the region into dst. n == Auto
// copies the current length. The buffer's length is unchanged.
func (b *Buffer) CopyOut(dst []byte, n int) error {
	const op = "copyout"
	n = b.WriteLength(n)
	if err := b.Check(op, n); err != nil {
		return err
	}
	if len(dst) < n {
		return api.Invalid(op, "destination shorter than length").
			WithContext("length", n).
			WithContext("destination", len(dst))
	}
	g, err := b.acquire(op)
	if err != nil {
		return err
	}
	defer g.Release()

	base := g.Base()
	if base == nil {
		return api.NoDevice(op)
	}
	copy(dst[:n], base[:n])
	return nil
}

// CopyOutTo writes n bytes of the region to w.
func (b *Buffer) CopyOutTo(w io.Writer, n int) (int, error) {
	const op = "copyout"
	n = b.WriteLength(n)
	if err := b.Check(op, n); err != nil {
		return 0, err
	}
	g, err := b.acquire(op)
	if err != nil {
		return 0, err
	}
	defer g.Release()

	base := g.Base()
	if base == nil {
		return 0, api.NoDevice(op)
	}
	written, err := w.Write(base[:n])
	if err != nil {
		return written, api.OSError(op, err)
	}
	return written, nil
}

// Bytes returns a copy of the valid bytes.
func (b *Buffer) Bytes() ([]byte, error) {
	out := make([]byte, b.Len())
	if err := b.CopyOut(out, len(out)); err != nil {
		return nil, err
	}
	return out, nil
}
