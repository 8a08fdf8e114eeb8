package stralloc

// regionByteSize returns the size of the k-th backing region in a
// directory: page_size * 2^k, per spec.md §3/§4.3.
func regionByteSize(pageSize, k int) int {
	return pageSize << uint(k)
}

// handleDirectory is the ordered sequence of handle regions. It only ever
// grows: handle regions are never unmapped (record addresses must stay
// stable across Compact, per spec.md §4.5's contract on handles).
type handleDirectory struct {
	pageSize int
	maxSlots int
	regions  []*handleRegion
}

func newHandleDirectory(pageSize, maxSlots int) *handleDirectory {
	return &handleDirectory{pageSize: pageSize, maxSlots: maxSlots}
}

// allocate scans existing regions in order for a free slot; if all are
// full, it maps and initializes the next geometrically-sized region and
// allocates from it, per spec.md §4.3 "allocate-handle".
func (hd *handleDirectory) allocate() (Handle, *Error) {
	for _, r := range hd.regions {
		if slot, ok := r.findFreeSlot(); ok {
			return Handle{region: r, slot: uint32(slot)}, nil
		}
	}

	idx := len(hd.regions)
	if idx >= hd.maxSlots {
		return Handle{}, &Error{Code: ErrDirectoryExhausted, Message: "handle directory exhausted"}
	}

	p, err := mapPage(regionByteSize(hd.pageSize, idx))
	if err != nil {
		return Handle{}, err
	}

	r := initializeHandleRegion(p)
	r.index = idx
	hd.regions = append(hd.regions, r)

	slot, ok := r.findFreeSlot()
	if !ok {
		return Handle{}, &Error{Code: ErrOutOfMemory, Message: "freshly mapped handle region has no free slot"}
	}

	return Handle{region: r, slot: uint32(slot)}, nil
}

// dataDirectory is the ordered sequence of data regions. Unlike the
// handle directory it can have empty slots below the index currently in
// use — spec.md §4.3 is explicit that allocate-data "never revisits lower
// indices for the same request" — and Compact rebuilds it from scratch.
type dataDirectory struct {
	pageSize int
	maxSlots int
	regions  []*dataRegion // nil entries are unused slots
}

func newDataDirectory(pageSize, maxSlots int) *dataDirectory {
	return &dataDirectory{pageSize: pageSize, maxSlots: maxSlots}
}

// allocate chooses the smallest slot index k whose region size can hold
// requested bytes, then walks forward from k asking each region for an
// extent, mapping a region lazily whenever it finds an empty slot.
func (dd *dataDirectory) allocate(requested uint64) (regionIdx int, offset, capacity uint64, err *Error) {
	k := 0
	for uint64(regionByteSize(dd.pageSize, k)) < requested {
		k++

		if k >= dd.maxSlots {
			return 0, 0, 0, &Error{Code: ErrDirectoryExhausted, Message: "no region size large enough for request"}
		}
	}

	for idx := k; idx < dd.maxSlots; idx++ {
		for len(dd.regions) <= idx {
			dd.regions = append(dd.regions, nil)
		}

		if dd.regions[idx] == nil {
			p, mapErr := mapPage(regionByteSize(dd.pageSize, idx))
			if mapErr != nil {
				return 0, 0, 0, mapErr
			}

			r := initializeDataRegion(p)
			r.index = idx
			dd.regions[idx] = r
		}

		if off, cap, ok := dd.regions[idx].allocate(requested); ok {
			return idx, off, cap, nil
		}
	}

	return 0, 0, 0, &Error{Code: ErrDirectoryExhausted, Message: "data directory exhausted"}
}

// nonEmptySlots reports how many directory slots currently hold a region.
func (dd *dataDirectory) nonEmptySlots() int {
	n := 0

	for _, r := range dd.regions {
		if r != nil {
			n++
		}
	}

	return n
}

func (hd *handleDirectory) nonEmptySlots() int {
	return len(hd.regions)
}
