// File: internal/transport/feature_detect.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Advertises the detected capabilities of the syscall surface.

package transport

import (
	"runtime"

	"github.com/momentics/hioload-iovec/api"
)

// DetectTransportFeatures returns the set of available features for this OS.
func DetectTransportFeatures() api.TransportFeatures {
	return api.TransportFeatures{
		Vectored:    false,
		Positional:  true,
		SocketFlags: true,
		OS:          []string{runtime.GOOS},
	}
}
