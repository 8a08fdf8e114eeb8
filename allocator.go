package stralloc

import "os"

// Config configures an Allocator, following the teacher's Config/Option
// pattern in internal/allocator/allocator.go.
type Config struct {
	// PageSize is the unit region directories scale geometrically from
	// (page_size*2^k). Defaults to the OS page size; tests override it
	// with a small value via WithPageSize to keep fixtures fast and the
	// two-region/three-region scenarios reachable without huge buffers.
	PageSize int

	// MaxDirectorySlots bounds how many regions either directory may
	// hold. spec.md §3 sizes this to fit one directory page (512 slots
	// at a 4 KiB page with 64-bit words); defaulted the same way here.
	MaxDirectorySlots int
}

type Option func(*Config)

// WithPageSize overrides the region-growth unit.
func WithPageSize(size int) Option {
	return func(c *Config) { c.PageSize = size }
}

// WithMaxDirectorySlots overrides the directory slot cap.
func WithMaxDirectorySlots(n int) Option {
	return func(c *Config) { c.MaxDirectorySlots = n }
}

func defaultConfig() *Config {
	pageSize := os.Getpagesize()
	if pageSize <= 0 {
		pageSize = 4096
	}

	return &Config{
		PageSize:          pageSize,
		MaxDirectorySlots: pageSize / wordSize,
	}
}

// Allocator is the process-wide allocator state: the two region
// directories spec.md §3 describes as "created on the first allocation
// and never freed". spec.md's design notes (§9) suggest threading this
// explicitly through the public API instead of a bare global — New does
// that; global.go layers the lazily-initialized package-level singleton
// on top for callers that want spec.md's bare Allocate/Free/... surface.
type Allocator struct {
	config  *Config
	handles *handleDirectory
	data    *dataDirectory
}

// New creates an Allocator. No memory is mapped until the first Allocate.
func New(opts ...Option) *Allocator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Allocator{
		config:  cfg,
		handles: newHandleDirectory(cfg.PageSize, cfg.MaxDirectorySlots),
		data:    newDataDirectory(cfg.PageSize, cfg.MaxDirectorySlots),
	}
}

// Allocate reserves a string of exactly size bytes and returns an opaque
// Handle, or the zero Handle if the OS refuses to map more memory.
// Content is not zero-filled, per spec.md's non-goals.
func (a *Allocator) Allocate(size uint64) Handle {
	requested := size
	if requested < minExtent {
		requested = minExtent
	}

	h, err := a.handles.allocate()
	if err != nil {
		return Handle{}
	}

	regionIdx, offset, capacity, err := a.data.allocate(requested)
	if err != nil {
		// Undo the handle reservation so it isn't leaked as a
		// permanently-occupied, never-live slot.
		h.region.release(int(h.slot))

		return Handle{}
	}

	rec := h.record()
	rec.Size = size
	rec.Capacity = capacity
	rec.DataRegion = uint64(regionIdx)
	rec.DataOffset = offset
	rec.OwningHandleRegion = uint64(h.region.index)

	return h
}

// Free releases h's buffer to its owning data region's free list and
// clears its handle-region bit. Freeing the null handle is a no-op; a
// second Free of the same handle is undefined, per spec.md §4.4.
func (a *Allocator) Free(h Handle) {
	if h.IsNil() {
		return
	}

	rec := h.record()
	a.data.regions[rec.DataRegion].free(rec.DataOffset, rec.Capacity)
	h.region.release(int(h.slot))
}

// Size returns the byte length originally passed to Allocate. Undefined
// on a stale handle.
func (a *Allocator) Size(h Handle) uint64 {
	return h.record().Size
}

// Data returns the Size(h) writable bytes backing h. The slice is a
// borrow: it is invalid after the next Free or Compact, per spec.md §4.5
// and §5 ("Shared resources").
func (a *Allocator) Data(h Handle) []byte {
	rec := h.record()

	return a.data.regions[rec.DataRegion].bytes(rec.DataOffset, rec.Size)
}

// Concat allocates a new handle of size Size(x)+Size(y) and copies x's
// bytes followed by y's into it. x and y are not consumed.
func (a *Allocator) Concat(x, y Handle) Handle {
	xSize := a.Size(x)
	ySize := a.Size(y)

	out := a.Allocate(xSize + ySize)
	if out.IsNil() {
		return out
	}

	dst := a.Data(out)
	copy(dst, a.Data(x))
	copy(dst[xSize:], a.Data(y))

	return out
}
