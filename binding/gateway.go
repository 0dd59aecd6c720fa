// File: binding/gateway.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Gateway entry points: buffer construction, copy primitives, file and
// socket adapters.

package binding

import (
	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/core/iovec"
)

// scratchSize bounds readlinkstr results.
const scratchSize = 4096

func (m *Module) registerGateway() {
	m.Register("iovec", m.newBuffer)
	m.Register("copyin", m.copyIn)
	m.Register("copyout", m.copyOut)
	m.Register("free", m.free)
	m.Register("len", m.length)
	m.Register("cap", m.capacity)
	m.Register("read", m.read)
	m.Register("write", m.write)
	m.Register("pread", m.pread)
	m.Register("pwrite", m.pwrite)
	m.Register("readlink", m.readlink)
	m.Register("readlinkat", m.readlinkat)
	m.Register("recv", m.recv)
	m.Register("recvfrom", m.recvfrom)
	m.Register("send", m.send)
	m.Register("sendto", m.sendto)
	m.Register("readlinkstr", m.readlinkstr)
}

// failure renders err as {nil, message, errno}.
func failure(err error) []any {
	_, msg, errno := api.NewTransfer(-1, err).Status()
	return []any{nil, msg, errno}
}

func count(n int, err error) []any {
	if err != nil {
		return failure(err)
	}
	return []any{n}
}

func (m *Module) pool() api.RegionPool {
	if m.opts.Pool != nil {
		return m.opts.Pool
	}
	return iovec.DefaultPool
}

// iovec([capacity [, seed [, seedlen]]])
func (m *Module) newBuffer(v ...any) []any {
	a := args{"iovec", v}
	cfg := m.opts.Config.Get()
	capacity := a.optInt(1, cfg.DefaultCapacity)
	var seed []byte
	if a.get(2) != nil {
		seed = a.bytes(2)
	}
	if a.get(3) != nil {
		n := a.int(3)
		if n < 0 || n > len(seed) {
			return failure(api.Invalid("iovec", "seed length out of range").WithContext("seedlen", n))
		}
		seed = seed[:n]
	}
	if capacity > cfg.MaxCapacity {
		return failure(api.Invalid("iovec", "capacity above limit").
			WithContext("capacity", capacity).
			WithContext("limit", cfg.MaxCapacity))
	}
	b, err := iovec.NewFrom(m.pool(), capacity, seed)
	if err != nil {
		return failure(err)
	}
	return []any{b}
}

// copyin(buf, src [, n]) -> length
func (m *Module) copyIn(v ...any) []any {
	a := args{"copyin", v}
	b := a.buffer(1)
	if err := b.CopyIn(a.bytes(2), a.length(3)); err != nil {
		return failure(err)
	}
	return []any{b.Len()}
}

// copyout(buf [, n]) -> string
func (m *Module) copyOut(v ...any) []any {
	a := args{"copyout", v}
	b := a.buffer(1)
	n := b.WriteLength(a.length(2))
	if err := b.Check("copyout", n); err != nil {
		return failure(err)
	}
	dst := make([]byte, n)
	if err := b.CopyOut(dst, n); err != nil {
		return failure(err)
	}
	return []any{string(dst)}
}

// free(buf) -> true
func (m *Module) free(v ...any) []any {
	a := args{"free", v}
	if err := a.buffer(1).Free(); err != nil {
		return failure(err)
	}
	return []any{true}
}

func (m *Module) length(v ...any) []any {
	a := args{"len", v}
	return []any{a.buffer(1).Len()}
}

func (m *Module) capacity(v ...any) []any {
	a := args{"cap", v}
	return []any{a.buffer(1).Cap()}
}

// read(fd, buf [, n])
func (m *Module) read(v ...any) []any {
	a := args{"read", v}
	return count(m.opts.Files.Read(a.int(1), a.buffer(2), a.length(3)))
}

// write(fd, buf [, n])
func (m *Module) write(v ...any) []any {
	a := args{"write", v}
	return count(m.opts.Files.Write(a.int(1), a.buffer(2), a.length(3)))
}

// pread(fd, buf, n, offset); n may be nil
func (m *Module) pread(v ...any) []any {
	a := args{"pread", v}
	return count(m.opts.Files.PRead(a.int(1), a.buffer(2), a.length(3), a.int64(4)))
}

// pwrite(fd, buf, n, offset); n may be nil
func (m *Module) pwrite(v ...any) []any {
	a := args{"pwrite", v}
	return count(m.opts.Files.PWrite(a.int(1), a.buffer(2), a.length(3), a.int64(4)))
}

// readlink(path, buf [, n])
func (m *Module) readlink(v ...any) []any {
	a := args{"readlink", v}
	return count(m.opts.Files.ReadLink(a.str(1), a.buffer(2), a.length(3)))
}

// readlinkat(dirfd, path, buf [, n])
func (m *Module) readlinkat(v ...any) []any {
	a := args{"readlinkat", v}
	return count(m.opts.Files.ReadLinkAt(a.int(1), a.str(2), a.buffer(3), a.length(4)))
}

// recv(fd, buf [, n [, flags]])
func (m *Module) recv(v ...any) []any {
	a := args{"recv", v}
	return count(m.opts.Sockets.Recv(a.int(1), a.buffer(2), a.length(3), a.optInt(4, 0)))
}

// recvfrom(fd, buf [, n [, flags]]) -> count, address
func (m *Module) recvfrom(v ...any) []any {
	a := args{"recvfrom", v}
	n, from, err := m.opts.Sockets.RecvFrom(a.int(1), a.buffer(2), a.length(3), a.optInt(4, 0))
	if err != nil {
		return failure(err)
	}
	if addr := FromSockaddr(from); addr != nil {
		return []any{n, addr}
	}
	return []any{n, nil}
}

// send(fd, buf [, n [, flags]])
func (m *Module) send(v ...any) []any {
	a := args{"send", v}
	return count(m.opts.Sockets.Send(a.int(1), a.buffer(2), a.length(3), a.optInt(4, 0)))
}

// sendto(fd, buf, n, flags, address); n and flags may be nil
func (m *Module) sendto(v ...any) []any {
	a := args{"sendto", v}
	fd, b, n, flags := a.int(1), a.buffer(2), a.length(3), a.optInt(4, 0)
	to, err := ToSockaddr(a.table(5))
	if err != nil {
		return failure(api.Invalid("sendto", err.Error()))
	}
	return count(m.opts.Sockets.SendTo(fd, b, n, flags, to))
}

// readlinkstr(path) -> target, read through a pooled scratch region
func (m *Module) readlinkstr(v ...any) []any {
	a := args{"readlinkstr", v}
	path := a.str(1)
	r, err := m.pool().Get(scratchSize)
	if err != nil {
		return failure(err)
	}
	defer r.Release()
	b, err := iovec.Borrow(r.Bytes(), 0)
	if err != nil {
		return failure(err)
	}
	n, err := m.opts.Files.ReadLink(path, b, iovec.Auto)
	if err != nil {
		return failure(err)
	}
	return []any{string(r.Bytes()[:n])}
}
