// Package binding
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scripting entry points for the buffer gateway. Each entry point is a
// Func taking loosely typed arguments as a script runtime would pass them
// (numbers as int or float64, strings, nil for omitted values) and returning
// either {result...} or the failure triple {nil, message, errno}.
//
// Arguments of the wrong shape are programming errors in the calling script
// and are raised as *ArgError from Module.Call, never folded into the
// failure triple.
package binding
