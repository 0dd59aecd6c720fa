// Package adapters
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// I/O adapters binding gateway buffers to file and socket system calls, plus
// the control adapter exposing configuration and metrics through api.Control.
//
// Every I/O adapter follows one sequence: resolve and bounds-check the
// transfer length, take the buffer's guard, confirm the region is present,
// issue exactly one system call on the region, record the transferred count
// for read-type calls, and release the guard on every path.
package adapters
