// Package paging slices in-memory result sets into fixed-size pages.
package paging

// PageCount returns ceil(total/size); zero when there is nothing to show.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Bounds returns the half-open index range [start, end) of a 1-based page,
// clipped to total. A page past the end yields an empty range.
func Bounds(total, page, size int) (start, end int) {
	if size <= 0 || page < 1 {
		return 0, 0
	}
	start = (page - 1) * size
	end = start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}

// Slice returns the items of the given 1-based page. Out of range pages
// return an empty (non-nil) slice; the page is never clamped.
func Slice[T any](items []T, page, size int) []T {
	start, end := Bounds(len(items), page, size)
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
