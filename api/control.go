// File: api/control.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime control surface of the gateway.

package api

// Control exposes the live configuration, transfer statistics and debug
// probes. Config maps use the TOML key names.
type Control interface {
	GetConfig() map[string]any
	// SetConfig merges values into the configuration and notifies reload
	// listeners. A rejected update leaves the configuration unchanged.
	SetConfig(cfg map[string]any) error
	Stats() map[string]any
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
}
