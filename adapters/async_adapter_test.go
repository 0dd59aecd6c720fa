package adapters_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/momentics/hioload-iovec/adapters"
	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/internal/transport"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

func newAsync() *adapters.Async {
	sys := transport.NewSyscalls()
	return adapters.NewAsync(adapters.NewFileAdapter(sys, nil, nil), adapters.NewSocketAdapter(sys, nil, nil))
}

func TestAsyncReadWaitsForData(t *testing.T) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	as := newAsync()
	in := mustBuffer(t, 16, "")
	out := mustBuffer(t, 16, "late")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := as.Read(gctx, fds[0], in, iovec.Auto)
		return err
	})
	g.Go(func() error {
		time.Sleep(20 * time.Millisecond)
		_, err := as.Write(gctx, fds[1], out, iovec.Auto)
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if contents(t, in) != "late" {
		t.Fatalf("read %q", contents(t, in))
	}
}

func TestAsyncRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("on disk"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fd := int(f.Fd())

	as := newAsync()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := mustBuffer(t, 16, "")
	n, err := as.Read(ctx, fd, in, iovec.Auto)
	if err != nil || n != 7 {
		t.Fatalf("read regular file: %d, %v", n, err)
	}
	if contents(t, in) != "on disk" {
		t.Fatalf("read %q", contents(t, in))
	}

	out := mustBuffer(t, 16, "!")
	if n, err := as.Write(ctx, fd, out, iovec.Auto); err != nil || n != 1 {
		t.Fatalf("write regular file: %d, %v", n, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "on disk!" {
		t.Fatalf("file holds %q", data)
	}
}

func TestAsyncBusyBufferSkipsWait(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	as := newAsync()
	b := mustBuffer(t, 8, "")
	g, err := b.Acquire("test")
	if err != nil {
		t.Fatal(err)
	}
	defer g.Release()

	start := time.Now()
	n, err := as.Recv(context.Background(), fds[0], b, iovec.Auto, 0)
	if n != -1 || !errors.Is(err, api.ErrBusy) {
		t.Fatalf("got %d, %v", n, err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("busy buffer waited for readiness")
	}
}

func TestAsyncCancellation(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	as := newAsync()
	b := mustBuffer(t, 8, "keep")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	n, err := as.Recv(ctx, fds[0], b, iovec.Auto, 0)
	if n != -1 || !errors.Is(err, context.DeadlineExceeded) || api.Errno(err) != syscall.ETIMEDOUT {
		t.Fatalf("got %d, %v", n, err)
	}
	if b.Len() != 4 || b.Busy() {
		t.Fatalf("buffer changed: %v", b)
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := as.Send(ctx, fds[0], b, iovec.Auto, 0); api.Errno(err) != syscall.ECANCELED {
		t.Fatalf("canceled send: %v", err)
	}
}

func TestAsyncRejectsWithoutWaiting(t *testing.T) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	as := newAsync()
	b := mustBuffer(t, 8, "")
	start := time.Now()
	n, err := as.Recv(context.Background(), fds[0], b, 64, 0)
	if n != -1 || !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("got %d, %v", n, err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("oversized request waited for readiness")
	}
}
