// File: core/iovec/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package iovec

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/pool"
)

// Auto selects the default transfer length: the current length for
// write-type operations, the capacity for read-type ones.
const Auto = -1

// DefaultPool backs buffers created by New. It refuses capacities above the
// default configuration's MaxCapacity.
var DefaultPool api.RegionPool = pool.NewRegionPool(pool.Options{
	MaxSize: control.DefaultConfig().MaxCapacity,
	Retain:  control.DefaultConfig().PoolRetain,
})

// Buffer is a gateway memory region with a fixed capacity.
type Buffer struct {
	// base spans the full capacity; nil while unbacked. Only mutated
	// while the guard is held.
	base     []byte
	region   api.Region
	capacity int

	length atomic.Int64
	own    atomic.Int32 // api.Ownership
	busy   atomic.Bool
}

// New creates an owned buffer from DefaultPool, seeded with seed.
func New(capacity int, seed []byte) (*Buffer, error) {
	return NewFrom(DefaultPool, capacity, seed)
}

// NewFrom creates an owned buffer of the given capacity whose region comes
// from p. A non-empty seed is copied in and sets the length.
func NewFrom(p api.RegionPool, capacity int, seed []byte) (*Buffer, error) {
	if capacity < 0 {
		return nil, api.Invalid("new", "negative capacity").WithContext("capacity", capacity)
	}
	if len(seed) > capacity {
		return nil, api.Invalid("new", "seed exceeds capacity").
			WithContext("capacity", capacity).
			WithContext("seed", len(seed))
	}
	b := &Buffer{capacity: capacity}
	if err := b.Back(p); err != nil {
		return nil, err
	}
	copy(b.base, seed)
	b.length.Store(int64(len(seed)))
	return b, nil
}

// Declare creates a buffer with a capacity but no storage. Operations fail
// with api.ErrInvalidArgument until Back attaches a region.
func Declare(capacity int) (*Buffer, error) {
	if capacity < 0 {
		return nil, api.Invalid("declare", "negative capacity").WithContext("capacity", capacity)
	}
	return &Buffer{capacity: capacity}, nil
}

// Borrow wraps caller memory without copying. The first length bytes of mem
// are valid; capacity is len(mem). The caller keeps mem alive and must not
// touch it while an operation is in progress.
func Borrow(mem []byte, length int) (*Buffer, error) {
	if mem == nil {
		return nil, api.NoDevice("borrow")
	}
	if length < 0 || length > len(mem) {
		return nil, api.Invalid("borrow", "length exceeds capacity").
			WithContext("capacity", len(mem)).
			WithContext("length", length)
	}
	b := &Buffer{base: mem[:len(mem):len(mem)], capacity: len(mem)}
	b.length.Store(int64(length))
	b.own.Store(int32(api.Borrowed))
	return b, nil
}

// Back attaches an owned region from p to an unbacked buffer.
func (b *Buffer) Back(p api.RegionPool) error {
	const op = "back"
	g, err := b.acquire(op)
	if err != nil {
		return err
	}
	defer g.Release()
	if b.Backed() {
		return api.Invalid(op, "buffer already backed")
	}
	r, err := p.Get(b.capacity)
	if err != nil {
		return err
	}
	b.region = r
	b.base = r.Bytes()
	b.length.Store(0)
	b.own.Store(int32(api.Owned))
	runtime.SetFinalizer(b, (*Buffer).finalize)
	return nil
}

// Free detaches the buffer from its storage. Owned regions go back to their
// pool; borrowed memory is left alone. Free on an unbacked buffer is a no-op.
func (b *Buffer) Free() error {
	g, err := b.acquire("free")
	if err != nil {
		return err
	}
	defer g.Release()
	b.detach()
	return nil
}

func (b *Buffer) detach() {
	if b.region != nil {
		b.region.Release()
		b.region = nil
		runtime.SetFinalizer(b, nil)
	}
	b.base = nil
	b.length.Store(0)
	b.own.Store(int32(api.Unbacked))
}

// finalize returns the region of a collected buffer that was never freed.
func (b *Buffer) finalize() {
	if b.region != nil {
		b.region.Release()
		b.region = nil
	}
}

// Len returns the number of valid bytes.
func (b *Buffer) Len() int { return int(b.length.Load()) }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Backed reports whether the buffer holds storage.
func (b *Buffer) Backed() bool { return b.Ownership() != api.Unbacked }

// Busy reports whether an operation currently holds the guard.
func (b *Buffer) Busy() bool { return b.busy.Load() }

// Ownership returns the storage variant.
func (b *Buffer) Ownership() api.Ownership { return api.Ownership(b.own.Load()) }

func (b *Buffer) String() string {
	s := fmt.Sprintf("iovec(len=%d cap=%d %s", b.Len(), b.capacity, b.Ownership())
	if b.Busy() {
		s += " busy"
	}
	return s + ")"
}

// Check validates a transfer of n bytes before any guard is taken: the
// buffer must be backed and n must lie within the capacity.
func (b *Buffer) Check(op string, n int) error {
	if !b.Backed() {
		return api.Invalid(op, "buffer not backed")
	}
	if n < 0 || n > b.capacity {
		return api.Invalid(op, "length exceeds capacity").
			WithContext("length", n).
			WithContext("capacity", b.capacity)
	}
	return nil
}

// ReadLength resolves Auto for read-type operations.
func (b *Buffer) ReadLength(n int) int {
	if n == Auto {
		return b.capacity
	}
	return n
}

// WriteLength resolves Auto for write-type operations.
func (b *Buffer) WriteLength(n int) int {
	if n == Auto {
		return b.Len()
	}
	return n
}
