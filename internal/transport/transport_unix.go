//go:build unix

// File: internal/transport/transport_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// POSIX syscall surface over golang.org/x/sys/unix.

package transport

import (
	"github.com/momentics/hioload-iovec/api"
	"golang.org/x/sys/unix"
)

type unixSyscalls struct{}

func newSyscallsInternal() Syscalls { return unixSyscalls{} }

func (unixSyscalls) Read(fd int, p []byte) (int, error) { return unix.Read(fd, p) }

func (unixSyscalls) Write(fd int, p []byte) (int, error) { return unix.Write(fd, p) }

func (unixSyscalls) Pread(fd int, p []byte, off int64) (int, error) {
	return unix.Pread(fd, p, off)
}

func (unixSyscalls) Pwrite(fd int, p []byte, off int64) (int, error) {
	return unix.Pwrite(fd, p, off)
}

func (unixSyscalls) Readlink(path string, p []byte) (int, error) {
	return unix.Readlink(path, p)
}

func (unixSyscalls) Readlinkat(dirfd int, path string, p []byte) (int, error) {
	return unix.Readlinkat(dirfd, path, p)
}

func (unixSyscalls) Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	return unix.Recvfrom(fd, p, flags)
}

// Sendto goes through sendmsg(2) so the byte count is reported; a nil to
// sends on a connected socket.
func (unixSyscalls) Sendto(fd int, p []byte, flags int, to unix.Sockaddr) (int, error) {
	return unix.SendmsgN(fd, p, nil, to, flags)
}

func (unixSyscalls) Features() api.TransportFeatures {
	return DetectTransportFeatures()
}
