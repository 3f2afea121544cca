package authz

// Page is a clamped offset/limit slice of an already-filtered query. No
// ordering is implied; callers wanting stable pagination must order the
// query themselves.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps page and size to sane positive bounds. Non-positive
// values fall back to the defaults; size is capped at max.
func NormalizePage(number, size, defaultSize, maxSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Page{Number: number, Size: size}
}

// Limit returns the row cap for the slice.
func (p Page) Limit() int {
	return p.Size
}

// Offset returns the number of rows skipped before the slice.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
