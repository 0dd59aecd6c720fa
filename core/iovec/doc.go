// Package iovec
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared native-buffer gateway. A Buffer is a bounds-checked memory region that
// scripting code allocates once and then hands, unmodified, to raw system calls
// and to helpers that exchange bytes with native code.
//
// Every operation that touches the region holds the buffer's Guard for exactly
// its own duration. The guard is a non-reentrant critical section: a second
// operation on the same buffer (for example from a signal or hook callback
// fired during a pending read) fails with api.ErrBusy instead of queuing.
//
// Buffers come in two variants. Owned buffers draw their region from an
// api.RegionPool and return it on Free; Borrowed buffers view caller memory
// and never release it.
package iovec
