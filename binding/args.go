// File: binding/args.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Argument coercion. Failures panic with *ArgError; Module.Call recovers.

package binding

import (
	"fmt"
	"math"

	"github.com/momentics/hioload-iovec/core/iovec"
)

type args struct {
	fn string
	v  []any
}

func (a args) get(pos int) any {
	if pos > len(a.v) {
		return nil
	}
	return a.v[pos-1]
}

func (a args) fail(pos int, want string) {
	panic(&ArgError{Func: a.fn, Pos: pos, Want: want, Got: a.get(pos)})
}

// integer converts script numbers; floats must be integral.
func integer(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float32:
		return integer(float64(x))
	}
	return 0, false
}

func (a args) int64(pos int) int64 {
	n, ok := integer(a.get(pos))
	if !ok {
		a.fail(pos, "integer")
	}
	return n
}

func (a args) int(pos int) int {
	n := a.int64(pos)
	if n < math.MinInt || n > math.MaxInt {
		a.fail(pos, "integer")
	}
	return int(n)
}

// optInt returns def when the argument is absent or nil.
func (a args) optInt(pos int, def int) int {
	if a.get(pos) == nil {
		return def
	}
	return a.int(pos)
}

// length reads an optional transfer length; absent means iovec.Auto.
func (a args) length(pos int) int {
	return a.optInt(pos, iovec.Auto)
}

func (a args) str(pos int) string {
	switch x := a.get(pos).(type) {
	case string:
		return x
	case []byte:
		return string(x)
	}
	a.fail(pos, "string")
	return ""
}

// bytes accepts a string or byte slice without copying the latter.
func (a args) bytes(pos int) []byte {
	switch x := a.get(pos).(type) {
	case string:
		return []byte(x)
	case []byte:
		return x
	}
	a.fail(pos, "string")
	return nil
}

func (a args) buffer(pos int) *iovec.Buffer {
	b, ok := a.get(pos).(*iovec.Buffer)
	if !ok || b == nil {
		a.fail(pos, "iovec")
	}
	return b
}

func (a args) table(pos int) map[string]any {
	t, ok := a.get(pos).(map[string]any)
	if !ok {
		a.fail(pos, "table")
	}
	return t
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "no value"
	case string, []byte:
		return "string"
	case *iovec.Buffer:
		return "iovec"
	case map[string]any:
		return "table"
	case bool:
		return "boolean"
	}
	if _, ok := integer(v); ok {
		return "number"
	}
	if _, ok := v.(float64); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
