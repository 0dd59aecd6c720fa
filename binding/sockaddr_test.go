package binding_test

import (
	"testing"

	"github.com/momentics/hioload-iovec/binding"
	"golang.org/x/sys/unix"
)

func TestToSockaddr(t *testing.T) {
	sa, err := binding.ToSockaddr(map[string]any{"addr": "192.168.1.2", "port": 80.0})
	if err != nil {
		t.Fatal(err)
	}
	if in4, ok := sa.(*unix.SockaddrInet4); !ok || in4.Port != 80 || in4.Addr != [4]byte{192, 168, 1, 2} {
		t.Fatalf("inet = %#v", sa)
	}

	sa, err = binding.ToSockaddr(map[string]any{"addr": "fe80::1", "port": 443})
	if err != nil {
		t.Fatal(err)
	}
	if in6, ok := sa.(*unix.SockaddrInet6); !ok || in6.Port != 443 || in6.Addr[0] != 0xfe {
		t.Fatalf("inet6 = %#v", sa)
	}

	sa, err = binding.ToSockaddr(map[string]any{"path": "/run/sock"})
	if err != nil {
		t.Fatal(err)
	}
	if un, ok := sa.(*unix.SockaddrUnix); !ok || un.Name != "/run/sock" {
		t.Fatalf("unix = %#v", sa)
	}

	bad := []map[string]any{
		{},
		{"addr": "not-an-ip"},
		{"addr": "1.2.3.4", "port": 70000},
		{"addr": "1.2.3.4", "port": "http"},
		{"family": "inet", "addr": "::1"},
		{"family": "unix"},
		{"family": "appletalk", "addr": "1.2.3.4"},
	}
	for _, tc := range bad {
		if _, err := binding.ToSockaddr(tc); err == nil {
			t.Errorf("%v accepted", tc)
		}
	}
}

func TestFromSockaddrRoundTrip(t *testing.T) {
	for _, tc := range []map[string]any{
		{"family": "inet", "addr": "127.0.0.1", "port": 8080},
		{"family": "inet6", "addr": "2001:db8::5", "port": 1},
		{"family": "unix", "path": "/tmp/x"},
	} {
		sa, err := binding.ToSockaddr(tc)
		if err != nil {
			t.Fatal(err)
		}
		got := binding.FromSockaddr(sa)
		for k, v := range tc {
			if got[k] != v {
				t.Fatalf("%v -> %v", tc, got)
			}
		}
	}
	if binding.FromSockaddr(nil) != nil {
		t.Fatal("nil address rendered")
	}
}
