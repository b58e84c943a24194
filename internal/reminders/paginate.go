package reminders

// PageInfo describes the slice a paginated result covers.
type PageInfo struct {
	TotalItems int  `json:"total_items"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	HasMore    bool `json:"has_more"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// paginate applies an offset/limit window to items. A negative offset is
// clamped to 0 and an offset past the end yields an empty page rather
// than an error. A limit <= 0 means "everything from offset on". Order
// is whatever the caller fetched; pagination never sorts.
func paginate[T any](items []T, limit, offset int) ([]T, PageInfo) {
	total := len(items)

	start := offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < total {
		end = start + limit
	}

	info := PageInfo{
		TotalItems: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    end < total,
	}
	if info.HasMore {
		next := end
		info.NextOffset = &next
	}
	return items[start:end], info
}
