// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness reactor interface.

package reactor

import "errors"

// ErrClosed is returned by operations on a closed reactor.
var ErrClosed = errors.New("reactor: closed")

// EventType is a bit set of readiness conditions.
type EventType uint8

const (
	EventRead EventType = 1 << iota
	EventWrite
	// EventError reports an error or hang-up condition. It is always
	// delivered, whether or not it was requested.
	EventError
)

func (e EventType) String() string {
	s := ""
	for _, f := range []struct {
		bit  EventType
		name string
	}{{EventRead, "r"}, {EventWrite, "w"}, {EventError, "e"}} {
		if e&f.bit != 0 {
			s += f.name
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// EventReactor defines basic reactor operations across OS platforms.
type EventReactor interface {
	// Register watches fd for events. userData is echoed back in Event.
	Register(fd int, events EventType, userData uintptr) error

	// Unregister stops watching fd.
	Unregister(fd int) error

	// Wait blocks up to timeoutMs (negative: forever) and fills events.
	// It returns 0 on timeout or when interrupted by a signal.
	Wait(events []Event, timeoutMs int) (n int, err error)

	// Close releases the reactor's resources.
	Close() error
}

// Event contains event information returned by Wait call.
type Event struct {
	Fd       int
	Events   EventType
	UserData uintptr
}
