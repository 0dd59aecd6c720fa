// Package fake
// Author: momentics <momentics@gmail.com>
//
// Scripted syscall surface for testing the gateway adapters without a kernel.

package fake

import (
	"sync"

	"github.com/momentics/hioload-iovec/api"
	"golang.org/x/sys/unix"
)

// Call records one invocation against Syscalls.
type Call struct {
	Op    string
	FD    int
	Path  string
	Len   int
	Off   int64
	Flags int
	To    unix.Sockaddr
	Data  []byte // bytes handed to write-type calls
}

// Syscalls implements transport.Syscalls with scripted results.
//
// Reads serve Input in chunks of at most Chunk bytes (0 means unlimited).
// Err, when set, fails every call with that error. Hook runs inside each call
// before the result is produced, which is where reentrant use is simulated.
type Syscalls struct {
	mu     sync.Mutex
	Input  []byte
	Chunk  int
	Link   string
	Peer   unix.Sockaddr
	Err    error
	Hook   func(op string)
	Calls  []Call
	Output []byte
}

// NewSyscalls creates a fake serving input on read-type calls.
func NewSyscalls(input []byte) *Syscalls {
	return &Syscalls{Input: append([]byte(nil), input...)}
}

func (s *Syscalls) record(c Call) error {
	if s.Hook != nil {
		s.Hook(c.Op)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, c)
	return s.Err
}

// CallCount returns how many calls reached the fake.
func (s *Syscalls) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

func (s *Syscalls) serve(p []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(p)
	if s.Chunk > 0 && n > s.Chunk {
		n = s.Chunk
	}
	n = copy(p[:n], s.Input)
	s.Input = s.Input[n:]
	return n
}

func (s *Syscalls) sink(p []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(p)
	if s.Chunk > 0 && n > s.Chunk {
		n = s.Chunk
	}
	s.Output = append(s.Output, p[:n]...)
	return n
}

func (s *Syscalls) Read(fd int, p []byte) (int, error) {
	if err := s.record(Call{Op: "read", FD: fd, Len: len(p)}); err != nil {
		return -1, err
	}
	return s.serve(p), nil
}

func (s *Syscalls) Write(fd int, p []byte) (int, error) {
	if err := s.record(Call{Op: "write", FD: fd, Len: len(p), Data: append([]byte(nil), p...)}); err != nil {
		return -1, err
	}
	return s.sink(p), nil
}

func (s *Syscalls) Pread(fd int, p []byte, off int64) (int, error) {
	if err := s.record(Call{Op: "pread", FD: fd, Len: len(p), Off: off}); err != nil {
		return -1, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if off >= int64(len(s.Input)) {
		return 0, nil
	}
	n := len(p)
	if s.Chunk > 0 && n > s.Chunk {
		n = s.Chunk
	}
	return copy(p[:n], s.Input[off:]), nil
}

func (s *Syscalls) Pwrite(fd int, p []byte, off int64) (int, error) {
	if err := s.record(Call{Op: "pwrite", FD: fd, Len: len(p), Off: off, Data: append([]byte(nil), p...)}); err != nil {
		return -1, err
	}
	return s.sink(p), nil
}

func (s *Syscalls) Readlink(path string, p []byte) (int, error) {
	if err := s.record(Call{Op: "readlink", Path: path, Len: len(p)}); err != nil {
		return -1, err
	}
	return copy(p, s.Link), nil
}

func (s *Syscalls) Readlinkat(dirfd int, path string, p []byte) (int, error) {
	if err := s.record(Call{Op: "readlinkat", FD: dirfd, Path: path, Len: len(p)}); err != nil {
		return -1, err
	}
	return copy(p, s.Link), nil
}

func (s *Syscalls) Recvfrom(fd int, p []byte, flags int) (int, unix.Sockaddr, error) {
	if err := s.record(Call{Op: "recvfrom", FD: fd, Len: len(p), Flags: flags}); err != nil {
		return -1, nil, err
	}
	return s.serve(p), s.Peer, nil
}

func (s *Syscalls) Sendto(fd int, p []byte, flags int, to unix.Sockaddr) (int, error) {
	if err := s.record(Call{Op: "sendto", FD: fd, Len: len(p), Flags: flags, To: to, Data: append([]byte(nil), p...)}); err != nil {
		return -1, err
	}
	return s.sink(p), nil
}

func (s *Syscalls) Features() api.TransportFeatures {
	return api.TransportFeatures{Positional: true, SocketFlags: true, OS: []string{"fake"}}
}
