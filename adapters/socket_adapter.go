// File: adapters/socket_adapter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// recv/recvfrom/send/sendto over gateway buffers. Flags pass straight through.

package adapters

import (
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/internal/transport"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// SocketAdapter moves bytes between buffers and sockets.
type SocketAdapter struct {
	sys transport.Syscalls
	engine
}

// NewSocketAdapter creates a socket adapter over sys. log and metrics may be nil.
func NewSocketAdapter(sys transport.Syscalls, log logrus.FieldLogger, metrics *control.MetricsRegistry) *SocketAdapter {
	return &SocketAdapter{sys: sys, engine: newEngine(log, metrics)}
}

// Recv receives up to n bytes (iovec.Auto: capacity) into b and sets its
// length to the count received.
func (a *SocketAdapter) Recv(fd int, b *iovec.Buffer, n int, flags int) (int, error) {
	count, _, err := a.RecvFrom(fd, b, n, flags)
	return count, err
}

// RecvFrom is Recv that also reports the sender's address. The address is
// nil for connected stream sockets.
func (a *SocketAdapter) RecvFrom(fd int, b *iovec.Buffer, n int, flags int) (int, unix.Sockaddr, error) {
	var from unix.Sockaddr
	count, err := a.transfer("recvfrom", inbound, b, n, logrus.Fields{"fd": fd, "flags": flags}, func(p []byte) (int, error) {
		got, sa, err := a.sys.Recvfrom(fd, p, flags)
		from = sa
		return got, err
	})
	if err != nil {
		return count, nil, err
	}
	return count, from, nil
}

// Send sends n bytes (iovec.Auto: current length) of b on a connected socket.
func (a *SocketAdapter) Send(fd int, b *iovec.Buffer, n int, flags int) (int, error) {
	return a.transfer("send", outbound, b, n, logrus.Fields{"fd": fd, "flags": flags}, func(p []byte) (int, error) {
		return a.sys.Sendto(fd, p, flags, nil)
	})
}

// SendTo sends n bytes of b to the address to.
func (a *SocketAdapter) SendTo(fd int, b *iovec.Buffer, n int, flags int, to unix.Sockaddr) (int, error) {
	return a.transfer("sendto", outbound, b, n, logrus.Fields{"fd": fd, "flags": flags}, func(p []byte) (int, error) {
		return a.sys.Sendto(fd, p, flags, to)
	})
}
