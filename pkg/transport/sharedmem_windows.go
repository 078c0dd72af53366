//go:build windows

package transport

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// SharedMemory is a Buffer over a named file mapping backed by the system
// paging file. Opening creates the mapping when it does not exist yet,
// which matches how the server and clients attach to the same region
// regardless of start order.
type SharedMemory struct {
	mu     sync.Mutex
	handle windows.Handle
	view   []byte
}

// OpenSharedMemory opens (or creates) the named mapping and maps a
// read-write view of the given size.
func OpenSharedMemory(name string, size int) (*SharedMemory, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping name: %v", err)
	}

	handle, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(size), namePtr)
	if err != nil {
		return nil, fmt.Errorf("failed to create file mapping %q: %v", name, err)
	}

	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(handle)
		return nil, fmt.Errorf("failed to map view of %q: %v", name, err)
	}

	return &SharedMemory{
		handle: handle,
		view:   unsafe.Slice((*byte)(unsafe.Pointer(addr)), size),
	}, nil
}

func (s *SharedMemory) ReadAt(p []byte, off int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return fmt.Errorf("shared memory is closed")
	}
	if off < 0 || off+len(p) > len(s.view) {
		return fmt.Errorf("failed to read %d bytes at offset %d: buffer is %d bytes", len(p), off, len(s.view))
	}
	copy(p, s.view[off:])
	return nil
}

func (s *SharedMemory) WriteAt(p []byte, off int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return fmt.Errorf("shared memory is closed")
	}
	if off < 0 || off+len(p) > len(s.view) {
		return fmt.Errorf("failed to write %d bytes at offset %d: buffer is %d bytes", len(p), off, len(s.view))
	}
	copy(s.view[off:], p)
	return nil
}

func (s *SharedMemory) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.view)
}

func (s *SharedMemory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&s.view[0]))
	s.view = nil
	if err := windows.UnmapViewOfFile(addr); err != nil {
		windows.CloseHandle(s.handle)
		return fmt.Errorf("failed to unmap view: %v", err)
	}
	if err := windows.CloseHandle(s.handle); err != nil {
		return fmt.Errorf("failed to close mapping handle: %v", err)
	}
	return nil
}
