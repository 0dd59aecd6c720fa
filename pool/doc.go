// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer for the buffer gateway.
// Implements size-classed region pooling for owned gateway buffers: regions are
// zeroed on return, queued FIFO per class and handed out again before any new
// allocation. See regionpool.go for implementation details.
package pool
