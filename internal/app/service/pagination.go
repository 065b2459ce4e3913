package service

// ListParams filters and pages a listing. A blank Pattern means no filter.
type ListParams struct {
	Pattern  string
	Quantity *int
	Offset   *int
}

// MakeCut returns the window of items selected by quantity and offset.
// A nil quantity returns items unchanged; a nil offset starts at 0.
// Out-of-range values are clamped, never rejected.
func MakeCut[T any](items []T, quantity, offset *int) []T {
	if quantity == nil {
		return items
	}
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(items))
	}
	end := start + clamp(*quantity, 0, len(items)-start)
	return items[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
