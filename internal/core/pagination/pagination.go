// Package pagination splits an ordered listing into fixed-size pages.
//
// Out-of-range page numbers are clamped rather than rejected: anything
// below 1 (or unparsable) is page 1, anything past the end is the last
// page. An empty listing still has one, empty, page.
package pagination

import "strconv"

type Page struct {
	Number   int
	NumPages int
	Size     int
	Count    int64
}

// New builds the page metadata for count items split into pages of size.
func New(count int64, number, size int) Page {
	if size < 1 {
		size = 1
	}
	if count < 0 {
		count = 0
	}

	numPages := int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Size:     size,
		Count:    count,
	}
}

// ParseNumber reads a page number from a query parameter, defaulting to 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasOtherPages() bool {
	return p.HasPrevious() || p.HasNext()
}

func (p Page) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

func (p Page) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

// StartIndex is the 1-based index of the first item on the page (0 when empty).
func (p Page) StartIndex() int64 {
	if p.Count == 0 {
		return 0
	}
	return int64(p.Offset()) + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page) EndIndex() int64 {
	end := int64(p.Offset() + p.Size)
	if end > p.Count {
		return p.Count
	}
	return end
}

// Numbers lists every page number, for rendering page links.
func (p Page) Numbers() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
