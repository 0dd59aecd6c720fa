package pool_test

import (
	"errors"
	"math"
	"testing"

	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/pool"
)

func TestRegionPoolReuse(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{Retain: 4})
	r1, err := p.Get(1000)
	if err != nil {
		t.Fatal(err)
	}
	copy(r1.Bytes(), "secret")
	r1.Release()

	r2, err := p.Get(1500)
	if err != nil {
		t.Fatal(err)
	}
	if len(r2.Bytes()) != 1500 {
		t.Fatalf("region length = %d, want 1500", len(r2.Bytes()))
	}
	for i, c := range r2.Bytes() {
		if c != 0 {
			t.Fatalf("reused region not zeroed at %d", i)
		}
	}
	st := p.Stats()
	if st.Reused != 1 || st.InUse != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	r2.Release()
	r2.Release() // second release is a no-op
	if got := p.Stats().TotalFree; got != 2 {
		t.Errorf("TotalFree = %d, want 2", got)
	}
}

func TestRegionPoolRejectsOversize(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{MaxSize: 64})
	if _, err := p.Get(65); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := p.Get(-1); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for negative size, got %v", err)
	}
}

func TestRegionPoolRetainLimit(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{Retain: 1})
	a, _ := p.Get(10)
	b, _ := p.Get(10)
	a.Release()
	b.Release()
	if got := p.Stats().Retained; got != 1 {
		t.Fatalf("Retained = %d, want 1", got)
	}
	p.SetRetain(0)
	if got := p.Stats().Retained; got != 0 {
		t.Fatalf("Retained after SetRetain(0) = %d", got)
	}
}

func TestRegionPoolLargeAllocationNotRetained(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{Retain: 8})
	r, err := p.Get(4 * 1024 * 1024)
	if err != nil {
		t.Fatal(err)
	}
	r.Release()
	if got := p.Stats().Retained; got != 0 {
		t.Errorf("oversize region retained: %d", got)
	}
}

func TestRegionPoolClosed(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{})
	p.Close()
	if _, err := p.Get(8); !errors.Is(err, api.ErrBufferPoolClosed) {
		t.Fatalf("expected closed error, got %v", err)
	}
}

func TestRegionPoolRejectsUnallocatableSize(t *testing.T) {
	p := pool.NewRegionPool(pool.Options{})
	if _, err := p.Get(math.MaxInt); !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if st := p.Stats(); st.TotalAlloc != 0 {
		t.Errorf("failed get counted as allocation: %+v", st)
	}
}
