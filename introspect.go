package stralloc

// LiveSize returns the sum of Size across every currently-live handle,
// per spec.md §4.6. Bits beyond a region's record count are never live,
// regardless of how their padding reads.
func (a *Allocator) LiveSize() uint64 {
	var total uint64

	for _, hr := range a.handles.regions {
		for slot := 0; slot < hr.capacity; slot++ {
			if hr.isLive(slot) {
				total += hr.recordAt(slot).Size
			}
		}
	}

	return total
}

// FreeSize returns the sum of every free extent's size across every data
// region, per spec.md §4.6.
func (a *Allocator) FreeSize() uint64 {
	var total uint64

	for _, dr := range a.data.regions {
		if dr != nil {
			total += dr.freeSize()
		}
	}

	return total
}

// UsedSize returns the total bytes mapped from the OS across both
// directories, per spec.md §4.6. The directory pointer tables themselves
// are ordinary process memory here (plain Go slices), not a separate OS
// mapping, so unlike the original C layout there is no extra fixed
// directory overhead term to add — see DESIGN.md.
func (a *Allocator) UsedSize() uint64 {
	var total uint64

	for _, hr := range a.handles.regions {
		total += uint64(hr.mem.size)
	}

	for _, dr := range a.data.regions {
		if dr != nil {
			total += uint64(dr.mem.size)
		}
	}

	return total
}
