// Package api
// Author: momentics@gmail.com
//
// Transfer result shared by adapters and the scripting binding.

package api

// Result wraps any payload or error.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries a value.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Transfer is the outcome of one gateway operation: a non-negative byte
// count on success, or a typed failure.
type Transfer Result[int]

// NewTransfer pairs an adapter's return values.
func NewTransfer(count int, err error) Transfer {
	return Transfer{Value: count, Err: err}
}

// Ok reports whether the transfer succeeded.
func (t Transfer) Ok() bool { return t.Err == nil }

// Status renders the uniform (count, message, errno) triple used at the
// scripting boundary. On failure count is -1.
func (t Transfer) Status() (count int, message string, errno int) {
	if t.Err == nil {
		return t.Value, "", 0
	}
	e := Errno(t.Err)
	return -1, e.Error(), int(e)
}
