package transport

import (
	"fmt"
	"sync"
)

// MemoryBuffer is an in-process Buffer. It backs tests and fake servers.
type MemoryBuffer struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBuffer creates a zeroed in-process buffer of the given size.
func NewMemoryBuffer(size int) *MemoryBuffer {
	return &MemoryBuffer{
		data: make([]byte, size),
	}
}

func (b *MemoryBuffer) ReadAt(p []byte, off int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if off < 0 || off+len(p) > len(b.data) {
		return fmt.Errorf("failed to read %d bytes at offset %d: buffer is %d bytes", len(p), off, len(b.data))
	}
	copy(p, b.data[off:])
	return nil
}

func (b *MemoryBuffer) WriteAt(p []byte, off int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if off < 0 || off+len(p) > len(b.data) {
		return fmt.Errorf("failed to write %d bytes at offset %d: buffer is %d bytes", len(p), off, len(b.data))
	}
	copy(b.data[off:], p)
	return nil
}

func (b *MemoryBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

func (b *MemoryBuffer) Close() error {
	return nil
}
