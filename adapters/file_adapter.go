// File: adapters/file_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// read/write/pread/pwrite/readlink/readlinkat over gateway buffers.

package adapters

import (
	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/internal/transport"
	"github.com/sirupsen/logrus"
)

var _ api.FileIO[*iovec.Buffer] = (*FileAdapter)(nil)

// FileAdapter moves bytes between buffers and descriptors or paths.
type FileAdapter struct {
	sys transport.Syscalls
	engine
}

// NewFileAdapter creates a file adapter over sys. log and metrics may be nil.
func NewFileAdapter(sys transport.Syscalls, log logrus.FieldLogger, metrics *control.MetricsRegistry) *FileAdapter {
	return &FileAdapter{sys: sys, engine: newEngine(log, metrics)}
}

// Read reads up to n bytes (iovec.Auto: capacity) from fd into b and sets
// b's length to the count read, 0 at end of file.
func (a *FileAdapter) Read(fd int, b *iovec.Buffer, n int) (int, error) {
	return a.transfer("read", inbound, b, n, logrus.Fields{"fd": fd}, func(p []byte) (int, error) {
		return a.sys.Read(fd, p)
	})
}

// Write writes n bytes (iovec.Auto: current length) of b to fd.
func (a *FileAdapter) Write(fd int, b *iovec.Buffer, n int) (int, error) {
	return a.transfer("write", outbound, b, n, logrus.Fields{"fd": fd}, func(p []byte) (int, error) {
		return a.sys.Write(fd, p)
	})
}

// PRead is Read at an absolute file offset.
func (a *FileAdapter) PRead(fd int, b *iovec.Buffer, n int, off int64) (int, error) {
	return a.transfer("pread", inbound, b, n, logrus.Fields{"fd": fd, "offset": off}, func(p []byte) (int, error) {
		return a.sys.Pread(fd, p, off)
	})
}

// PWrite is Write at an absolute file offset.
func (a *FileAdapter) PWrite(fd int, b *iovec.Buffer, n int, off int64) (int, error) {
	return a.transfer("pwrite", outbound, b, n, logrus.Fields{"fd": fd, "offset": off}, func(p []byte) (int, error) {
		return a.sys.Pwrite(fd, p, off)
	})
}

// ReadLink stores the target of the symbolic link at path in b. The result
// is not NUL-terminated and is truncated silently at n bytes, as readlink(2)
// does.
func (a *FileAdapter) ReadLink(path string, b *iovec.Buffer, n int) (int, error) {
	return a.transfer("readlink", inbound, b, n, logrus.Fields{"path": path}, func(p []byte) (int, error) {
		return a.sys.Readlink(path, p)
	})
}

// ReadLinkAt is ReadLink relative to the directory open at dirfd.
func (a *FileAdapter) ReadLinkAt(dirfd int, path string, b *iovec.Buffer, n int) (int, error) {
	return a.transfer("readlinkat", inbound, b, n, logrus.Fields{"dirfd": dirfd, "path": path}, func(p []byte) (int, error) {
		return a.sys.Readlinkat(dirfd, path, p)
	})
}
