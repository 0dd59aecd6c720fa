// Package transport
// Author: momentics <momentics@gmail.com>
//
// Platform-independent facade for the syscall surface used by the gateway
// adapters.

package transport

import (
	"sync"

	"github.com/momentics/hioload-iovec/api"
	"golang.org/x/sys/unix"
)

// Syscalls is the set of kernel entry points the adapters drive. Every method
// performs a single call on p as given and reports the kernel's count.
type Syscalls interface {
	Read(fd int, p []byte) (int, error)
	Write(fd int, p []byte) (int, error)
	Pread(fd int, p []byte, off int64) (int, error)
	Pwrite(fd int, p []byte, off int64) (int, error)
	Readlink(path string, p []byte) (int, error)
	Readlinkat(dirfd int, path string, p []byte) (int, error)
	Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error)
	Sendto(fd int, p []byte, flags int, to unix.Sockaddr) (int, error)
	Features() api.TransportFeatures
}

// Wrapper implements Syscalls and forwards to a swappable implementation.
type Wrapper struct {
	impl Syscalls
	mu   sync.RWMutex
}

// NewSyscalls returns the host implementation behind a Wrapper.
func NewSyscalls() *Wrapper {
	return &Wrapper{impl: newSyscallsInternal()}
}

// Wrap puts impl behind a Wrapper.
func Wrap(impl Syscalls) *Wrapper {
	return &Wrapper{impl: impl}
}

func (w *Wrapper) get() Syscalls {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.impl
}

func (w *Wrapper) Read(fd int, p []byte) (int, error) { return w.get().Read(fd, p) }

func (w *Wrapper) Write(fd int, p []byte) (int, error) { return w.get().Write(fd, p) }

func (w *Wrapper) Pread(fd int, p []byte, off int64) (int, error) {
	return w.get().Pread(fd, p, off)
}

func (w *Wrapper) Pwrite(fd int, p []byte, off int64) (int, error) {
	return w.get().Pwrite(fd, p, off)
}

func (w *Wrapper) Readlink(path string, p []byte) (int, error) {
	return w.get().Readlink(path, p)
}

func (w *Wrapper) Readlinkat(dirfd int, path string, p []byte) (int, error) {
	return w.get().Readlinkat(dirfd, path, p)
}

func (w *Wrapper) Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	return w.get().Recvfrom(fd, p, flags)
}

func (w *Wrapper) Sendto(fd int, p []byte, flags int, to unix.Sockaddr) (int, error) {
	return w.get().Sendto(fd, p, flags, to)
}

// Features reports the capabilities of the current implementation.
func (w *Wrapper) Features() api.TransportFeatures { return w.get().Features() }

// SetImplementation allows hot-swapping the underlying implementation.
func (w *Wrapper) SetImplementation(impl Syscalls) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.impl = impl
}
