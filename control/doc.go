// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics, logging and debug introspection for the
// buffer gateway.
//
// Provides concurrent-safe state handling primitives including:
//   - Typed gateway configuration loaded from TOML with environment overrides
//   - Snapshot reads and validated updates with reload listeners
//   - Operation counters for the I/O adapters
//   - Debug probe registration and state export
package control
