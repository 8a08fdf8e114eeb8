package stralloc

import "sync"

// globalOnce guards lazy creation of globalInstance, mirroring the
// teacher's GlobalAllocator/Initialize pattern in internal/allocator.
var (
	globalOnce     sync.Once
	globalInstance *Allocator
)

// GlobalAllocator returns the process-wide default Allocator, creating it
// with default Config on first use. spec.md §9 calls this out explicitly
// as a design note: "a lazily initialized global guarded by a
// single-entry initialization primitive".
func GlobalAllocator() *Allocator {
	globalOnce.Do(func() {
		globalInstance = New()
	})

	return globalInstance
}

// Initialize configures the global Allocator explicitly. It must be
// called before any other package-level function and only once; later
// calls are ignored, same as the first call to GlobalAllocator.
func Initialize(opts ...Option) {
	globalOnce.Do(func() {
		globalInstance = New(opts...)
	})
}

// Alloc reserves a string of size bytes on the global Allocator.
func Alloc(size uint64) Handle { return GlobalAllocator().Allocate(size) }

// Free releases h on the global Allocator.
func Free(h Handle) { GlobalAllocator().Free(h) }

// Size returns Size(h) on the global Allocator.
func Size(h Handle) uint64 { return GlobalAllocator().Size(h) }

// Data returns Data(h) on the global Allocator.
func Data(h Handle) []byte { return GlobalAllocator().Data(h) }

// Concat concatenates x and y on the global Allocator.
func Concat(x, y Handle) Handle { return GlobalAllocator().Concat(x, y) }

// Compact runs compaction on the global Allocator.
func Compact() { GlobalAllocator().Compact() }

// LiveSize reports LiveSize() on the global Allocator.
func LiveSize() uint64 { return GlobalAllocator().LiveSize() }

// FreeSize reports FreeSize() on the global Allocator.
func FreeSize() uint64 { return GlobalAllocator().FreeSize() }

// UsedSize reports UsedSize() on the global Allocator.
func UsedSize() uint64 { return GlobalAllocator().UsedSize() }
