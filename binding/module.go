// File: binding/module.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package binding

import (
	"fmt"
	"slices"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/momentics/hioload-iovec/adapters"
	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/internal/transport"
	"github.com/sirupsen/logrus"
)

// Func is a scripting entry point.
type Func func(args ...any) []any

// ArgError reports an argument of the wrong shape.
type ArgError struct {
	Func string
	Pos  int // 1-based
	Want string
	Got  any
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("bad argument #%d to '%s' (%s expected, got %s)", e.Pos, e.Func, e.Want, typeName(e.Got))
}

// Options wires a Module to the gateway.
type Options struct {
	Pool    api.RegionPool
	Config  *control.ConfigStore
	Files   *adapters.FileAdapter
	Sockets *adapters.SocketAdapter
	Log     logrus.FieldLogger
}

// Module is an ordered table of entry points.
type Module struct {
	funcs *orderedmap.OrderedMap[string, Func]
	opts  Options
}

// NewModule creates a module with the gateway entry points registered.
func NewModule(opts Options) *Module {
	if opts.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		opts.Log = l
	}
	if opts.Config == nil {
		opts.Config = control.NewConfigStore(control.DefaultConfig())
	}
	if opts.Files == nil || opts.Sockets == nil {
		sys := transport.NewSyscalls()
		if opts.Files == nil {
			opts.Files = adapters.NewFileAdapter(sys, opts.Log, nil)
		}
		if opts.Sockets == nil {
			opts.Sockets = adapters.NewSocketAdapter(sys, opts.Log, nil)
		}
	}
	m := &Module{
		funcs: orderedmap.NewOrderedMap[string, Func](),
		opts:  opts,
	}
	m.registerGateway()
	return m
}

// Register adds or replaces an entry point. Replacement keeps the
// original position.
func (m *Module) Register(name string, fn Func) {
	m.funcs.Set(name, fn)
}

// Lookup returns the entry point registered under name.
func (m *Module) Lookup(name string) (Func, bool) {
	return m.funcs.Get(name)
}

// Names lists entry points in registration order.
func (m *Module) Names() []string {
	return slices.Collect(m.funcs.Keys())
}

// Len returns the number of entry points.
func (m *Module) Len() int { return m.funcs.Len() }

// Call invokes the named entry point. Argument errors come back as
// *ArgError; any other panic propagates.
func (m *Module) Call(name string, args ...any) (ret []any, err error) {
	fn, ok := m.funcs.Get(name)
	if !ok {
		return nil, fmt.Errorf("binding %q: %w", name, api.ErrNotFound)
	}
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(*ArgError)
			if !ok {
				panic(r)
			}
			m.opts.Log.WithFields(logrus.Fields{"func": name, "pos": ae.Pos}).Debug("argument error")
			ret, err = nil, ae
		}
	}()
	return fn(args...), nil
}
