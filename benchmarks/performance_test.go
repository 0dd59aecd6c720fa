// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for the buffer gateway.

package benchmarks

import (
	"io"
	"testing"

	"github.com/momentics/hioload-iovec/adapters"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/facade"
	"github.com/momentics/hioload-iovec/fake"
	"github.com/momentics/hioload-iovec/internal/transport"
	"github.com/momentics/hioload-iovec/pool"
	"golang.org/x/sys/unix"
)

// BenchmarkRegionPoolAllocation tests region pool get/release performance.
func BenchmarkRegionPoolAllocation(b *testing.B) {
	p := pool.NewRegionPool(pool.Options{Retain: 256})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r, err := p.Get(4096)
			if err != nil {
				b.Error(err)
				return
			}
			r.Release()
		}
	})
}

// BenchmarkCopyRoundTrip measures guarded copy-in/copy-out of 4 KiB.
func BenchmarkCopyRoundTrip(b *testing.B) {
	buf, err := iovec.New(4096, nil)
	if err != nil {
		b.Fatal(err)
	}
	defer buf.Free()
	src := make([]byte, 4096)
	dst := make([]byte, 4096)

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := buf.CopyIn(src, iovec.Auto); err != nil {
			b.Fatal(err)
		}
		if err := buf.CopyOut(dst, iovec.Auto); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGuardContention measures busy rejection under parallel use of
// one buffer.
func BenchmarkGuardContention(b *testing.B) {
	buf, _ := iovec.New(64, []byte("x"))
	defer buf.Free()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if g, err := buf.Acquire("bench"); err == nil {
				g.Release()
			}
		}
	})
}

// BenchmarkAdapterOverhead measures the adapter sequence against a fake
// kernel that does no work.
func BenchmarkAdapterOverhead(b *testing.B) {
	sys := fake.NewSyscalls(nil)
	fa := adapters.NewFileAdapter(sys, nil, control.NewMetricsRegistry())
	buf, _ := iovec.New(512, nil)
	defer buf.Free()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fa.Read(0, buf, iovec.Auto); err != nil {
			b.Fatal(err)
		}
		if i%1024 == 0 {
			sys.Calls = sys.Calls[:0]
		}
	}
}

// BenchmarkPipeThroughput moves 4 KiB chunks through a host pipe.
func BenchmarkPipeThroughput(b *testing.B) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		b.Fatal(err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	fa := adapters.NewFileAdapter(transport.NewSyscalls(), nil, nil)
	out, _ := iovec.New(4096, make([]byte, 4096))
	in, _ := iovec.New(4096, nil)
	defer out.Free()
	defer in.Free()

	b.SetBytes(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fa.Write(fds[1], out, iovec.Auto); err != nil {
			b.Fatal(err)
		}
		for got := 0; got < 4096; {
			n, err := fa.Read(fds[0], in, 4096-got)
			if err != nil {
				b.Fatal(err)
			}
			got += n
		}
	}
}

// BenchmarkModuleCall measures dispatch through the scripting entry table.
func BenchmarkModuleCall(b *testing.B) {
	cfg := control.DefaultConfig()
	cfg.LogLevel = "error"
	gw, err := facade.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	defer gw.Close()
	gw.Logger().SetOutput(io.Discard)
	ret, _ := gw.Module().Call("iovec", 128, "payload")
	buf := ret[0].(*iovec.Buffer)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gw.Module().Call("len", buf); err != nil {
			b.Fatal(err)
		}
	}
}
