// File: pool/regionpool.go
// Size-classed region pooling for owned buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-iovec/api"
)

// Predefined (power-of-two) region size classes (bytes)
// This table can be tuned for deployment needs.
var sizeClasses = [...]int{
	2 * 1024,        // 2K
	4 * 1024,        // 4K
	8 * 1024,        // 8K
	16 * 1024,       // 16K
	32 * 1024,       // 32K
	64 * 1024,       // 64K
	128 * 1024,      // 128K
	256 * 1024,      // 256K
	512 * 1024,      // 512K
	1 * 1024 * 1024, // 1M
}

// sizeClassUpperBound returns the smallest class >= requested size, or -1
// when size exceeds the biggest class.
func sizeClassUpperBound(size int) int {
	for _, c := range sizeClasses {
		if size <= c {
			return c
		}
	}
	return -1
}

// Options tune a RegionPool.
type Options struct {
	// MaxSize rejects requests above it. Zero means no limit.
	MaxSize int
	// Retain caps the number of idle regions kept per class.
	Retain int
}

// RegionPool hands out zeroed regions, recycling released ones per size class.
type RegionPool struct {
	mu      sync.Mutex
	classes map[int]*queue.Queue // size class -> idle []byte backing arrays
	opts    Options
	closed  bool

	allocs   atomic.Int64
	frees    atomic.Int64
	reused   atomic.Int64
	retained atomic.Int64
}

// NewRegionPool creates an empty pool.
func NewRegionPool(opts Options) *RegionPool {
	if opts.Retain < 0 {
		opts.Retain = 0
	}
	return &RegionPool{
		classes: make(map[int]*queue.Queue),
		opts:    opts,
	}
}

// Get returns a zeroed region of exactly size bytes.
func (p *RegionPool) Get(size int) (api.Region, error) {
	if size < 0 || (p.opts.MaxSize > 0 && size > p.opts.MaxSize) {
		return nil, api.Invalid("pool.get", "region size out of range").WithContext("size", size)
	}
	class := sizeClassUpperBound(size)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, api.ErrBufferPoolClosed
	}
	var data []byte
	if q, ok := p.classes[class]; ok && class > 0 && q.Length() > 0 {
		data = q.Remove().([]byte)
		p.retained.Add(-1)
		p.reused.Add(1)
	}
	p.mu.Unlock()

	if data == nil {
		n := class
		if n < 0 {
			n = size
		}
		if data = alloc(n); data == nil {
			return nil, api.Invalid("pool.get", "region size cannot be allocated").WithContext("size", size)
		}
	}
	p.allocs.Add(1)
	return &region{data: data[:size], class: class, pool: p}, nil
}

// alloc returns nil instead of panicking when the runtime refuses the length.
func alloc(n int) (data []byte) {
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()
	return make([]byte, n)
}

// put zeroes data and queues it for reuse when its class has room.
func (p *RegionPool) put(data []byte, class int) {
	p.frees.Add(1)
	if class < 0 {
		return // oversize, left to the GC
	}
	full := data[:cap(data)]
	clear(full)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	q, ok := p.classes[class]
	if !ok {
		q = queue.New()
		p.classes[class] = q
	}
	if q.Length() >= p.opts.Retain {
		return
	}
	q.Add(full)
	p.retained.Add(1)
}

// SetRetain changes the per-class idle limit; surplus idle regions are dropped.
func (p *RegionPool) SetRetain(n int) {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Retain = n
	for _, q := range p.classes {
		for q.Length() > n {
			q.Remove()
			p.retained.Add(-1)
		}
	}
}

// SetMaxSize changes the largest region Get will hand out.
func (p *RegionPool) SetMaxSize(n int) {
	p.mu.Lock()
	p.opts.MaxSize = n
	p.mu.Unlock()
}

// Close drops all idle regions; later Gets fail.
func (p *RegionPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.classes = make(map[int]*queue.Queue)
	p.retained.Store(0)
}

// Stats returns allocation counters.
func (p *RegionPool) Stats() api.RegionPoolStats {
	allocs, frees := p.allocs.Load(), p.frees.Load()
	return api.RegionPoolStats{
		TotalAlloc: allocs,
		TotalFree:  frees,
		InUse:      allocs - frees,
		Reused:     p.reused.Load(),
		Retained:   p.retained.Load(),
	}
}

// region implements api.Region.
type region struct {
	mu    sync.Mutex
	data  []byte
	class int
	pool  *RegionPool
}

// Bytes returns the data slice.
func (r *region) Bytes() []byte { return r.data }

// Release returns the region to the pool. Repeated calls are no-ops.
func (r *region) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return
	}
	r.pool.put(r.data, r.class)
	r.data = nil
}
