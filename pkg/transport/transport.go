// Package transport provides access to the shared buffer used to exchange
// messages with a TMInterface server. The server creates a named file
// mapping per instance (TMInterface0, TMInterface1, ...) and both sides
// read and write the same fixed-size region.
package transport

// Buffer is a fixed-size shared region with positioned reads and writes.
// Implementations must be safe for concurrent use.
type Buffer interface {
	// ReadAt fills p from the buffer starting at off.
	ReadAt(p []byte, off int) error
	// WriteAt copies p into the buffer starting at off.
	WriteAt(p []byte, off int) error
	// Size returns the total buffer size in bytes.
	Size() int
	// Close releases the underlying region.
	Close() error
}
