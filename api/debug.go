// Package api
// Author: momentics
//
// Live introspection of the gateway: pool usage, transfer counters and
// platform facts.

package api

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState runs every probe and returns its output by name.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}
