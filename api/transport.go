// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Descriptor-level I/O contracts implemented by the gateway adapters.

package api

// FileIO moves bytes between gateway-owned memory and descriptors or paths.
// Read-type calls take the buffer's capacity when n is negative; write-type
// calls take its current length.
type FileIO[B any] interface {
	Read(fd int, b B, n int) (int, error)
	Write(fd int, b B, n int) (int, error)
	PRead(fd int, b B, n int, off int64) (int, error)
	PWrite(fd int, b B, n int, off int64) (int, error)
	ReadLink(path string, b B, n int) (int, error)
	ReadLinkAt(dirfd int, path string, b B, n int) (int, error)
}

// TransportFeatures describes what the syscall surface supports.
type TransportFeatures struct {
	Vectored    bool
	Positional  bool
	SocketFlags bool
	OS          []string
}
