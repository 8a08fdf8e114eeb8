package stralloc

// Compact relocates every live buffer into as few, tightly packed data
// regions as possible and unmaps whatever is left over, per spec.md §4.5.
//
// Any Data() slice obtained before this call is invalid afterwards;
// handles themselves remain valid — their address is unchanged, only
// their DataRegion/DataOffset/Capacity fields may change. Compact is a
// global barrier: no other operation may be in flight while it runs.
//
// A mapping failure part-way through is treated as fatal, per spec.md §7
// ("Compaction treats this as fatal... aborts the process").
func (a *Allocator) Compact() {
	var live []Handle

	for _, hr := range a.handles.regions {
		for slot := 0; slot < hr.capacity; slot++ {
			if hr.isLive(slot) {
				live = append(live, Handle{region: hr, slot: uint32(slot)})
			}
		}
	}

	newData := newDataDirectory(a.config.PageSize, a.config.MaxDirectorySlots)

	for _, h := range live {
		rec := h.record()

		oldRegion := a.data.regions[rec.DataRegion]
		oldBytes := oldRegion.bytes(rec.DataOffset, rec.Size)

		// Compaction is one of the two points (besides Allocate) where
		// Capacity may be adjusted, per spec.md §3 — repacking to
		// exactly Size (rounded up by the allocator's own tail-
		// absorption) sheds whatever slack the original allocation or
		// an earlier split left behind.
		newIdx, newOffset, newCapacity, err := newData.allocate(rec.Size)
		if err != nil {
			panic(err)
		}

		copy(newData.regions[newIdx].bytes(newOffset, rec.Size), oldBytes)

		rec.DataRegion = uint64(newIdx)
		rec.DataOffset = newOffset
		rec.Capacity = newCapacity
	}

	for _, dr := range newData.regions {
		if dr != nil {
			dr.coalesce()
		}
	}

	for _, dr := range a.data.regions {
		if dr == nil {
			continue
		}

		if err := dr.mem.unmap(); err != nil {
			panic(err)
		}
	}

	a.data = newData
}
