// Package facade
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Gateway assembles the buffer gateway behind a single value: configuration
// store, logger, region pool, metrics, syscall transport, the synchronous
// and asynchronous adapters, debug probes and the scripting module.
package facade
