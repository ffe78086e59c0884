package services

import "dataconnector/internal/domain"

// EffectivePageSize applies the ceiling and, in voice mode, the default cap.
// Neither raises the size above what was requested.
func EffectivePageSize(requested int, voiceMode bool, limits PageLimits) int {
	size := min(requested, limits.Max)
	if voiceMode {
		size = min(size, limits.Default)
	}
	return max(size, 1)
}

// Paginate slices one page out of records. A page past the end is empty.
func Paginate(records []domain.Record, page, pageSize int) domain.PageResult {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(records)
	totalPages := 1
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	// Pages past the end are compared before multiplying so huge page
	// numbers cannot overflow the offset.
	start := total
	if page <= totalPages {
		start = min((page-1)*pageSize, total)
	}
	end := min(start+pageSize, total)

	return domain.PageResult{
		Records:    records[start:end:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
