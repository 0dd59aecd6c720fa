// Package api
// Author: momentics
//
// Native memory regions and the pool that hands them to the buffer gateway.
//
// A region is a fixed block of memory that a gateway buffer owns exclusively
// while it is backed. Regions go back to their pool when the owning buffer is
// freed; after Release the region must not be used.

package api

// Region describes an exclusively owned block of native memory.
type Region interface {
	// Bytes returns the full region; len equals the requested size.
	Bytes() []byte

	// Release returns the region to its pool.
	// After Release, the region must not be used.
	Release()
}

// RegionPool abstracts memory region management for owned buffers.
type RegionPool interface {
	// Get returns a zeroed region of exactly size bytes.
	Get(size int) (Region, error)

	// Stats exposes resource/accounting metrics for observability.
	Stats() RegionPoolStats
}

// RegionPoolStats aggregates region allocation/reuse stats.
type RegionPoolStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	Reused     int64
	Retained   int64
}

// Ownership tells whether releasing a buffer frees its region.
type Ownership int

const (
	// Unbacked buffers hold no storage yet.
	Unbacked Ownership = iota
	// Owned buffers release their region to the pool on Free.
	Owned
	// Borrowed buffers view caller memory that outlives them.
	Borrowed
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	default:
		return "unbacked"
	}
}
