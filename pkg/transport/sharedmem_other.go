//go:build !windows

package transport

import "fmt"

// OpenSharedMemory is only available on Windows, where the server runs.
// Use a MemoryBuffer on other platforms.
func OpenSharedMemory(name string, size int) (Buffer, error) {
	return nil, fmt.Errorf("shared memory transport for %q is only supported on windows", name)
}
