// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw system call surface for the buffer gateway. Each call maps onto exactly
// one kernel entry point; errors, EINTR included, are returned verbatim with no
// retry. The Syscalls interface lets tests substitute scripted results.

package transport
