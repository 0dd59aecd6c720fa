// File: facade/gateway.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"fmt"
	"os"
	"sync"

	"github.com/momentics/hioload-iovec/adapters"
	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/binding"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/momentics/hioload-iovec/internal/transport"
	"github.com/momentics/hioload-iovec/pool"
	"github.com/sirupsen/logrus"
)

// Gateway is the assembled buffer gateway.
type Gateway struct {
	config  *control.ConfigStore
	log     *logrus.Logger
	pool    *pool.RegionPool
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
	control *adapters.ControlAdapter
	sys     *transport.Wrapper

	files   *adapters.FileAdapter
	sockets *adapters.SocketAdapter
	async   *adapters.Async
	module  *binding.Module

	mu     sync.Mutex
	closed bool
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Gateway)(nil)

// New validates cfg and wires every component. Logs go to stderr; use
// Logger().SetOutput to redirect them.
func New(cfg control.Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gateway config: %w", err)
	}
	g := &Gateway{
		config:  control.NewConfigStore(cfg),
		log:     control.NewLogger(cfg, os.Stderr),
		pool:    pool.NewRegionPool(pool.Options{MaxSize: cfg.MaxCapacity, Retain: cfg.PoolRetain}),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
		sys:     transport.NewSyscalls(),
	}
	g.control = adapters.NewControlAdapter(g.config, g.metrics, g.debug)

	log := g.log.WithField("component", "iovec")
	g.files = adapters.NewFileAdapter(g.sys, log, g.metrics)
	g.sockets = adapters.NewSocketAdapter(g.sys, log, g.metrics)
	g.async = adapters.NewAsync(g.files, g.sockets)
	g.module = binding.NewModule(binding.Options{
		Pool:    g.pool,
		Config:  g.config,
		Files:   g.files,
		Sockets: g.sockets,
		Log:     log,
	})

	g.debug.RegisterProbe("pool", func() any { return g.pool.Stats() })
	g.debug.RegisterProbe("metrics.updated", func() any { return g.metrics.Updated() })
	g.debug.RegisterProbe("transport.features", func() any { return g.sys.Features() })
	g.config.OnReload(g.reload)

	g.log.WithFields(logrus.Fields{
		"max_capacity": cfg.MaxCapacity,
		"pool_retain":  cfg.PoolRetain,
		"entrypoints":  g.module.Len(),
	}).Info("gateway started")
	return g, nil
}

func (g *Gateway) reload(cfg control.Config) {
	g.pool.SetRetain(cfg.PoolRetain)
	g.pool.SetMaxSize(cfg.MaxCapacity)
	control.SetLevel(g.log, cfg.LogLevel)
	g.log.WithField("config", g.config.GetSnapshot()).Info("configuration reloaded")
}

// NewBuffer creates an owned buffer from the gateway's pool.
func (g *Gateway) NewBuffer(capacity int, seed []byte) (*iovec.Buffer, error) {
	if limit := g.config.Get().MaxCapacity; capacity > limit {
		return nil, api.Invalid("new", "capacity above limit").
			WithContext("capacity", capacity).
			WithContext("limit", limit)
	}
	return iovec.NewFrom(g.pool, capacity, seed)
}

// SetSyscalls replaces the syscall implementation behind every adapter.
func (g *Gateway) SetSyscalls(impl transport.Syscalls) { g.sys.SetImplementation(impl) }

func (g *Gateway) Files() *adapters.FileAdapter { return g.files }
func (g *Gateway) Sockets() *adapters.SocketAdapter { return g.sockets }
func (g *Gateway) Async() *adapters.Async { return g.async }
func (g *Gateway) Module() *binding.Module { return g.module }
func (g *Gateway) Control() api.Control { return g.control }
func (g *Gateway) Metrics() *control.MetricsRegistry { return g.metrics }
func (g *Gateway) Logger() *logrus.Logger { return g.log }
func (g *Gateway) Config() control.Config { return g.config.Get() }
func (g *Gateway) PoolStats() api.RegionPoolStats { return g.pool.Stats() }

// Close drops idle pool regions. Buffers still alive keep their regions;
// new buffers fail with api.ErrBufferPoolClosed. Close is idempotent.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	g.pool.Close()
	g.log.WithField("pool", g.pool.Stats()).Info("gateway closed")
	return nil
}

// Shutdown implements api.GracefulShutdown by delegating to Close().
func (g *Gateway) Shutdown() error {
	return g.Close()
}
