package stralloc

import "testing"

func newTestDataRegion(t *testing.T, pageSize int) *dataRegion {
	t.Helper()

	p, err := mapPage(pageSize)
	if err != nil {
		t.Fatalf("mapPage: %v", err)
	}
	t.Cleanup(func() { p.unmap() })

	return initializeDataRegion(p)
}

func TestDataRegionAllocateBasic(t *testing.T) {
	dr := newTestDataRegion(t, 4096)

	off, cap, ok := dr.allocate(100)
	if !ok {
		t.Fatal("allocate(100) failed")
	}
	if cap < 100 {
		t.Fatalf("capacity %d < requested 100", cap)
	}
	if off == 0 {
		t.Fatalf("offset should not land on the head slot")
	}
}

func TestDataRegionAllocateFloorsBelowMinExtent(t *testing.T) {
	dr := newTestDataRegion(t, 4096)

	for _, req := range []uint64{0, 1, 15} {
		_, cap, ok := dr.allocate(req)
		if !ok {
			t.Fatalf("allocate(%d) failed", req)
		}
		if cap < minExtent {
			t.Errorf("allocate(%d) capacity = %d, want >= %d", req, cap, minExtent)
		}
	}
}

func TestDataRegionTailAbsorption(t *testing.T) {
	dr := newTestDataRegion(t, 4096)

	// The whole region (minus the head word) is one extent. Requesting
	// everything but less than minExtent of slack should hand out the
	// entire extent, header bytes included, rather than split a
	// near-empty remainder cell.
	full := dr.wordAt(2 * wordSize)

	off, cap, ok := dr.allocate(full - wordSize)
	if !ok {
		t.Fatal("allocate near full extent size failed")
	}
	if cap != full {
		t.Fatalf("capacity = %d, want whole extent %d (tail absorbed)", cap, full)
	}

	if dr.wordAt(0) != 0 {
		t.Fatalf("free list head = %d, want 0 (extent fully consumed)", dr.wordAt(0))
	}

	_ = off
}

func TestDataRegionFreeThenReallocate(t *testing.T) {
	dr := newTestDataRegion(t, 4096)

	off, cap, ok := dr.allocate(64)
	if !ok {
		t.Fatal("allocate failed")
	}

	dr.free(off, cap)

	off2, cap2, ok := dr.allocate(64)
	if !ok {
		t.Fatal("allocate after free failed")
	}
	if off2 != off {
		t.Errorf("re-allocate did not reuse freed extent: got offset %d, want %d", off2, off)
	}
	_ = cap2
}

func TestDataRegionCoalesceMergesAdjacentFreeExtents(t *testing.T) {
	dr := newTestDataRegion(t, 4096)

	a, aCap, ok := dr.allocate(64)
	if !ok {
		t.Fatal("allocate a failed")
	}
	b, bCap, ok := dr.allocate(64)
	if !ok {
		t.Fatal("allocate b failed")
	}

	beforeFree := dr.freeSize()

	dr.free(a, aCap)
	dr.free(b, bCap)
	dr.coalesce()

	afterFree := dr.freeSize()
	if afterFree != beforeFree+aCap+bCap {
		t.Fatalf("freeSize after coalesce = %d, want %d", afterFree, beforeFree+aCap+bCap)
	}

	// A request spanning both freed extents combined should now succeed
	// as a single extent if they were physically adjacent and merged.
	if _, _, ok := dr.allocate(aCap + bCap - wordSize); !ok {
		t.Fatal("allocate spanning coalesced extents failed")
	}
}

func TestDataRegionAllocateFailsWhenExhausted(t *testing.T) {
	dr := newTestDataRegion(t, 256)

	full := dr.wordAt(2 * wordSize)

	if _, _, ok := dr.allocate(full - wordSize); !ok {
		t.Fatal("allocate of whole region failed")
	}

	if _, _, ok := dr.allocate(1); ok {
		t.Fatal("allocate succeeded on an exhausted region")
	}
}
