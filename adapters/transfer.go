// File: adapters/transfer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared acquire/validate/invoke/update/release sequence.

package adapters

import (
	"syscall"

	"github.com/momentics/hioload-iovec/api"
	"github.com/momentics/hioload-iovec/control"
	"github.com/momentics/hioload-iovec/core/iovec"
	"github.com/sirupsen/logrus"
)

type direction int

const (
	// inbound transfers fill the buffer and set its length.
	inbound direction = iota
	// outbound transfers drain the buffer and leave its length alone.
	outbound
)

// engine carries the collaborators every adapter needs.
type engine struct {
	log     logrus.FieldLogger
	metrics *control.MetricsRegistry
}

func newEngine(log logrus.FieldLogger, metrics *control.MetricsRegistry) engine {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return engine{log: log, metrics: metrics}
}

// transfer runs call on the buffer's region under its guard. fields tag the
// debug log line. The returned count is -1 on failure.
func (e engine) transfer(op string, dir direction, b *iovec.Buffer, n int, fields logrus.Fields, call func(p []byte) (int, error)) (int, error) {
	if b == nil {
		return -1, e.reject(op, fields, api.Invalid(op, "nil buffer"))
	}
	if dir == inbound {
		n = b.ReadLength(n)
	} else {
		n = b.WriteLength(n)
	}
	if err := b.Check(op, n); err != nil {
		return -1, e.reject(op, fields, err)
	}

	g, err := b.Acquire(op)
	if err != nil {
		return -1, e.reject(op, fields, err)
	}
	defer g.Release()

	base := g.Base()
	if base == nil {
		return -1, e.reject(op, fields, api.NoDevice(op))
	}
	if n > len(base) {
		return -1, e.reject(op, fields, api.Invalid(op, "length exceeds region"))
	}

	got, err := call(base[:n])
	if err != nil {
		oe := api.OSError(op, err)
		e.metrics.Add(control.MetricErrorsOS, 1)
		e.log.WithFields(fields).WithFields(logrus.Fields{"op": op, "n": n, "errno": int(oe.Errno)}).Debug("syscall failed")
		return -1, oe
	}
	if got < 0 || got > n {
		e.metrics.Add(control.MetricErrorsOS, 1)
		return -1, api.OSError(op, syscall.EIO).WithContext("count", got)
	}

	e.metrics.Add(control.MetricOps, 1)
	if dir == inbound {
		g.SetLen(got)
		e.metrics.Add(control.MetricBytesIn, int64(got))
	} else {
		e.metrics.Add(control.MetricBytesOut, int64(got))
	}
	e.log.WithFields(fields).WithFields(logrus.Fields{"op": op, "n": n, "count": got}).Debug("transfer")
	return got, nil
}

func (e engine) reject(op string, fields logrus.Fields, err error) error {
	switch api.CodeOf(err) {
	case api.ErrCodeBusy:
		e.metrics.Add(control.MetricRejectsBusy, 1)
	default:
		e.metrics.Add(control.MetricRejectsInvalid, 1)
	}
	e.log.WithFields(fields).WithFields(logrus.Fields{"op": op, "reason": api.CodeOf(err).String()}).Debug("transfer rejected")
	return err
}
