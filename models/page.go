package models

// Page is one page of a paginated post listing together with the pager
// information templates need to render page links.
type Page struct {
	// Posts holds the items of the current page, newest first.
	Posts []Post

	// Number is the 1-based page number that was requested.
	Number int

	// Size is the configured page size.
	Size int

	// Total is the total number of posts matching the listing, across all
	// pages.
	Total int64
}

// TotalPages returns how many pages the full result set spans.
// An empty result set still counts as one (empty) page.
func (p Page) TotalPages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 1
	}

	pages := int((p.Total + int64(p.Size) - 1) / int64(p.Size))
	if pages == 0 {
		pages = 1
	}
	return pages
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a further page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages() }

// PrevNumber returns the number of the previous page.
func (p Page) PrevNumber() int { return p.Number - 1 }

// NextNumber returns the number of the next page.
func (p Page) NextNumber() int { return p.Number + 1 }

// Numbers returns all page numbers from 1 to TotalPages for pager links.
func (p Page) Numbers() []int {
	nums := make([]int, p.TotalPages())
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
