//go:build windows

package stralloc

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// osMmap and osMunmap are the Windows half of the OS page interface,
// mirroring the teacher module's use of golang.org/x/sys/windows in
// internal/runtime/asyncio/zerocopy_windows_file.go.
func osMmap(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func osMunmap(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&buf[0]))

	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
