//go:build unix

package stralloc

import "golang.org/x/sys/unix"

// osMmap and osMunmap are the Unix half of the OS page interface, split by
// build tag the same way the teacher module splits its zero-copy file
// transports (internal/runtime/asyncio/zerocopy_unix_file.go vs the
// _windows_file.go sibling).
func osMmap(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func osMunmap(buf []byte) error {
	return unix.Munmap(buf)
}
