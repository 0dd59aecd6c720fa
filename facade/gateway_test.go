package facade_test

import (
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/facade"
	"github.com/momentics/hioload-iovec/fake"
)

func newGateway(t *testing.T) *facade.Gateway {
	t.Helper()
	cfg := control.DefaultConfig()
	cfg.MaxCapacity = 1 << 16
	cfg.LogLevel = "debug"
	g, err := facade.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.Logger().SetOutput(io.Discard)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestGatewayLifecycle(t *testing.T) {
	g := newGateway(t)
	sys := fake.NewSyscalls([]byte("payload"))
	g.SetSyscalls(sys)

	b, err := g.NewBuffer(16, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := g.Files().Read(0, b, iovec.Auto); err != nil || n != 7 {
		t.Fatalf("read = %d, %v", n, err)
	}
	if _, err := g.Files().Write(1, b, 32); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("oversized write: %v", err)
	}

	stats := g.Control().Stats()
	if stats[control.MetricBytesIn] != int64(7) || stats[control.MetricRejectsInvalid] != int64(1) {
		t.Fatalf("stats %v", stats)
	}
	if _, ok := stats["debug.pool"].(api.RegionPoolStats); !ok {
		t.Fatalf("pool probe missing: %v", stats)
	}
	if f, ok := stats["debug.transport.features"].(api.TransportFeatures); !ok || f.OS[0] != "fake" {
		t.Fatalf("transport probe: %v", stats["debug.transport.features"])
	}

	if err := b.Free(); err != nil {
		t.Fatal(err)
	}
	if s := g.PoolStats(); s.InUse != 0 || s.Retained != 1 {
		t.Fatalf("pool stats %+v", s)
	}

	if _, err := g.NewBuffer(1<<20, nil); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("capacity above limit: %v", err)
	}

	if err := g.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.NewBuffer(8, nil); !errors.Is(err, api.ErrBufferPoolClosed) {
		t.Fatalf("buffer after close: %v", err)
	}
}

func TestGatewayReload(t *testing.T) {
	g := newGateway(t)
	reloaded := false
	g.Control().OnReload(func() { reloaded = true })

	if err := g.Control().SetConfig(map[string]any{"pool_retain": 0, "log_level": "warn"}); err != nil {
		t.Fatal(err)
	}
	if !reloaded || g.Config().PoolRetain != 0 || g.Logger().GetLevel().String() != "warning" {
		t.Fatalf("reload not applied: %+v level %v", g.Config(), g.Logger().GetLevel())
	}

	b, _ := g.NewBuffer(8, nil)
	b.Free()
	if s := g.PoolStats(); s.Retained != 0 {
		t.Fatalf("retained %d after retain=0", s.Retained)
	}

	if err := g.Control().SetConfig(map[string]any{"max_capacity": 0}); err == nil {
		t.Fatal("invalid update accepted")
	}
}

func TestGatewayModule(t *testing.T) {
	g := newGateway(t)
	sys := fake.NewSyscalls(nil)
	sys.Err = syscall.EPIPE
	g.SetSyscalls(sys)

	ret, err := g.Module().Call("iovec", 8, "abc")
	if err != nil {
		t.Fatal(err)
	}
	b := ret[0].(*iovec.Buffer)
	ret, err = g.Module().Call("write", 1, b)
	if err != nil {
		t.Fatal(err)
	}
	if ret[0] != nil || ret[2] != int(syscall.EPIPE) {
		t.Fatalf("write = %v", ret)
	}
	if g.Metrics().Counter(control.MetricErrorsOS) != 1 {
		t.Fatal("module call bypassed gateway metrics")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.LogLevel = "loud"
	if _, err := facade.New(cfg); err == nil {
		t.Fatal("invalid config accepted")
	}
}
