package stralloc

// page is a single anonymous, readable/writable, private mapping obtained
// from the OS. It is the only primitive every other component depends on:
// handle regions and data regions are both just a page, interpreted two
// different ways.
type page struct {
	buf  []byte
	size int
}

// mapPage acquires a new anonymous rw mapping of exactly size bytes. size
// must already be a multiple of the platform page size; callers (the
// region directories) are the ones that round up to page_size*2^k. Returns
// an error wrapping ErrOutOfMemory if the OS refuses to map more memory.
func mapPage(size int) (*page, *Error) {
	buf, err := osMmap(size)
	if err != nil {
		return nil, &Error{Code: ErrOutOfMemory, Message: "map region: " + err.Error()}
	}

	return &page{buf: buf, size: size}, nil
}

// unmap releases the mapping back to the OS. The page must not be used
// afterwards.
func (p *page) unmap() error {
	if p == nil || p.buf == nil {
		return nil
	}

	err := osMunmap(p.buf)
	p.buf = nil

	return err
}
