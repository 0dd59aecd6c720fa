// File: binding/sockaddr.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Conversion between script address tables and unix.Sockaddr.

package binding

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// Address families as named in script tables.
const (
	FamilyInet  = "inet"
	FamilyInet6 = "inet6"
	FamilyUnix  = "unix"
)

// ToSockaddr builds a socket address from a table with keys family, addr,
// port (inet, inet6) or path (unix). A missing family is inferred from addr.
func ToSockaddr(t map[string]any) (unix.Sockaddr, error) {
	family, _ := t["family"].(string)
	if family == FamilyUnix || (family == "" && t["path"] != nil) {
		path, ok := t["path"].(string)
		if !ok {
			return nil, fmt.Errorf("unix address needs a path")
		}
		return &unix.SockaddrUnix{Name: path}, nil
	}

	s, ok := t["addr"].(string)
	if !ok {
		return nil, fmt.Errorf("address needs addr")
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("parse addr: %w", err)
	}
	port := 0
	if p, ok := integer(t["port"]); ok {
		if p < 0 || p > 65535 {
			return nil, fmt.Errorf("port %d out of range", p)
		}
		port = int(p)
	} else if t["port"] != nil {
		return nil, fmt.Errorf("port must be an integer")
	}

	switch {
	case family == FamilyInet6 || (family == "" && ip.Is6() && !ip.Is4In6()):
		return &unix.SockaddrInet6{Port: port, Addr: ip.As16()}, nil
	case family == FamilyInet || family == "":
		if !ip.Is4() && !ip.Is4In6() {
			return nil, fmt.Errorf("%s is not an inet address", s)
		}
		return &unix.SockaddrInet4{Port: port, Addr: ip.Unmap().As4()}, nil
	}
	return nil, fmt.Errorf("unsupported address family %q", family)
}

// FromSockaddr renders sa as a table. nil yields nil.
func FromSockaddr(sa unix.Sockaddr) map[string]any {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return map[string]any{
			"family": FamilyInet,
			"addr":   netip.AddrFrom4(a.Addr).String(),
			"port":   a.Port,
		}
	case *unix.SockaddrInet6:
		return map[string]any{
			"family": FamilyInet6,
			"addr":   netip.AddrFrom16(a.Addr).String(),
			"port":   a.Port,
		}
	case *unix.SockaddrUnix:
		return map[string]any{
			"family": FamilyUnix,
			"path":   a.Name,
		}
	}
	return nil
}
