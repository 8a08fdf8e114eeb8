package stralloc

// dataRegion is a variable-size region holding raw byte buffers for
// strings, per spec.md §3/§4.2. Word 0 of the backing page holds the head
// pointer (a byte offset) of the free-extent list, or 0 for null. Each
// free extent is self-describing: its first word is the next extent's
// offset (0 = null), its second word is the extent's total size in bytes,
// including those two header words.
//
// Both the head word and an extent's own first word play the identical
// role of "a slot holding the offset of the next free extent" — so the
// allocation and coalescing code below treats offset 0 (the head slot)
// and any live extent's start interchangeably as a "next-pointer slot".
type dataRegion struct {
	mem   *page
	index int // this region's slot index within the data directory
}

const minExtent = 2 * wordSize

func initializeDataRegion(p *page) *dataRegion {
	d := &dataRegion{mem: p}
	d.setWordAt(0, wordSize)
	d.setWordAt(wordSize, 0)
	d.setWordAt(2*wordSize, uint64(p.size-wordSize))

	return d
}

func (d *dataRegion) wordAt(off int) uint64 {
	return wordsView(d.mem.buf, off, 1)[0]
}

func (d *dataRegion) setWordAt(off int, v uint64) {
	wordsView(d.mem.buf, off, 1)[0] = v
}

func ceilDivWordsU64(n uint64) uint64 {
	return (n + wordSize - 1) / wordSize
}

// allocate performs a first-fit scan of the free list and returns the
// byte offset and granted capacity of a buffer of at least requested
// bytes, or ok=false if nothing in this region fits. A requested size
// below the minimum two-word extent (including 0) is floored to it.
func (d *dataRegion) allocate(requested uint64) (offset uint64, capacity uint64, ok bool) {
	if requested < minExtent {
		requested = minExtent
	}

	prev := 0 // byte offset of the next-pointer slot preceding curr (0 = the region's head slot)
	curr := d.wordAt(0)

	for curr != 0 {
		size := d.wordAt(int(curr) + wordSize)
		if size >= requested {
			tail := size - requested
			if tail < minExtent {
				// Handing out the whole extent absorbs its former header
				// bytes into the buffer's capacity — the same trick the
				// original C source relies on implicitly.
				next := d.wordAt(int(curr))
				d.setWordAt(prev, next)

				return curr, size, true
			}

			allocatedWords := ceilDivWordsU64(requested)
			if allocatedWords == 1 {
				allocatedWords = 2
			}

			newCell := curr + allocatedWords*wordSize
			next := d.wordAt(int(curr))
			d.setWordAt(int(newCell), next)
			d.setWordAt(int(newCell)+wordSize, size-allocatedWords*wordSize)
			d.setWordAt(prev, newCell)

			return curr, requested, true
		}

		prev = int(curr)
		curr = d.wordAt(int(curr))
	}

	return 0, 0, false
}

// free inserts buffer [offset, offset+capacity) at the head of the free
// list (LIFO). Coalescing is not performed here; it is a separate pass.
func (d *dataRegion) free(offset, capacity uint64) {
	head := d.wordAt(0)
	d.setWordAt(int(offset), head)
	d.setWordAt(int(offset)+wordSize, capacity)
	d.setWordAt(0, offset)
}

// coalesce iteratively merges physically adjacent free extents until a
// full scan finds nothing left to merge. Termination is guaranteed
// because every merge strictly shortens the free list.
func (d *dataRegion) coalesce() {
	for d.coalesceOnce() {
	}
}

func (d *dataRegion) coalesceOnce() bool {
	cur := d.wordAt(0)

	for cur != 0 {
		size := d.wordAt(int(cur) + wordSize)
		end := cur + size

		prev2 := 0
		cur2 := d.wordAt(0)

		for cur2 != 0 {
			if cur2 == end {
				size2 := d.wordAt(int(cur2) + wordSize)
				next2 := d.wordAt(int(cur2))
				d.setWordAt(prev2, next2)
				d.setWordAt(int(cur)+wordSize, size+size2)

				return true
			}

			prev2 = int(cur2)
			cur2 = d.wordAt(int(cur2))
		}

		cur = d.wordAt(int(cur))
	}

	return false
}

// freeSize sums the size of every extent currently in the free list.
func (d *dataRegion) freeSize() uint64 {
	var total uint64

	cur := d.wordAt(0)
	for cur != 0 {
		total += d.wordAt(int(cur) + wordSize)
		cur = d.wordAt(int(cur))
	}

	return total
}

// bytes returns the n writable bytes starting at offset within this
// region's backing array.
func (d *dataRegion) bytes(offset, n uint64) []byte {
	return d.mem.buf[offset : offset+n : offset+n]
}
