//go:build unix && !linux

// File: reactor/reactor_poll.go
// Author: momentics <momentics@gmail.com>
//
// poll(2)-based reactor for unix systems without epoll.

package reactor

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sys/unix"
)

type watch struct {
	events EventType
	udata  uintptr
}

// pollReactor rebuilds the pollfd set on every Wait.
type pollReactor struct {
	mu      sync.Mutex
	watches map[int]watch
	closed  bool
}

// NewReactor constructs a poll(2) reactor.
func NewReactor() (EventReactor, error) {
	return &pollReactor{watches: make(map[int]watch)}, nil
}

func (r *pollReactor) Register(fd int, events EventType, udata uintptr) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if _, ok := r.watches[fd]; ok {
		return fmt.Errorf("poll register %d: %w", fd, unix.EEXIST)
	}
	r.watches[fd] = watch{events: events, udata: udata}
	return nil
}

func (r *pollReactor) Unregister(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if _, ok := r.watches[fd]; !ok {
		return fmt.Errorf("poll unregister %d: %w", fd, unix.ENOENT)
	}
	delete(r.watches, fd)
	return nil
}

func (r *pollReactor) Wait(events []Event, timeoutMs int) (int, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, ErrClosed
	}
	fds := make([]unix.PollFd, 0, len(r.watches))
	for fd, w := range r.watches {
		pfd := unix.PollFd{Fd: int32(fd)}
		if w.events&EventRead != 0 {
			pfd.Events |= unix.POLLIN
		}
		if w.events&EventWrite != 0 {
			pfd.Events |= unix.POLLOUT
		}
		fds = append(fds, pfd)
	}
	r.mu.Unlock()
	sort.Slice(fds, func(i, j int) bool { return fds[i].Fd < fds[j].Fd })

	if timeoutMs < 0 {
		timeoutMs = -1
	}
	if _, err := unix.Poll(fds, timeoutMs); err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("poll: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, pfd := range fds {
		if pfd.Revents == 0 || n == len(events) {
			continue
		}
		var et EventType
		if pfd.Revents&unix.POLLIN != 0 {
			et |= EventRead
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			et |= EventWrite
		}
		if pfd.Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			et |= EventError
		}
		fd := int(pfd.Fd)
		events[n] = Event{Fd: fd, Events: et, UserData: r.watches[fd].udata}
		n++
	}
	return n, nil
}

func (r *pollReactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.watches = nil
	return nil
}
