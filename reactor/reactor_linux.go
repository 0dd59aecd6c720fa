//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// linuxReactor is an epoll-based event reactor.
type linuxReactor struct {
	mu     sync.Mutex
	epfd   int
	udata  map[int]uintptr
	closed bool
}

// NewReactor constructs a new platform-specific EventReactor for Linux.
func NewReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &linuxReactor{epfd: epfd, udata: make(map[int]uintptr)}, nil
}

// Register adds file descriptor to epoll.
func (r *linuxReactor) Register(fd int, events EventType, udata uintptr) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	ev := unix.EpollEvent{Fd: int32(fd)}
	if events&EventRead != 0 {
		ev.Events |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		ev.Events |= unix.EPOLLOUT
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	r.udata[fd] = udata
	return nil
}

// Unregister removes a file descriptor from the epoll watch list.
func (r *linuxReactor) Unregister(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	delete(r.udata, fd)
	return nil
}

// Wait waits for epoll events and fills the result into events slice.
func (r *linuxReactor) Wait(events []Event, timeoutMs int) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, ErrClosed
	}
	epfd := r.epfd
	r.mu.Unlock()

	raw := make([]unix.EpollEvent, len(events))
	if timeoutMs < 0 {
		timeoutMs = -1
	}
	n, err := unix.EpollWait(epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		fd := int(raw[i].Fd)
		var et EventType
		if raw[i].Events&unix.EPOLLIN != 0 {
			et |= EventRead
		}
		if raw[i].Events&unix.EPOLLOUT != 0 {
			et |= EventWrite
		}
		if raw[i].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			et |= EventError
		}
		events[i] = Event{Fd: fd, Events: et, UserData: r.udata[fd]}
	}
	return n, nil
}

// Close closes the epoll instance.
func (r *linuxReactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.epfd)
}
