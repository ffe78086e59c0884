package services

import (
	"fmt"

	"dataconnector/internal/domain"
	"dataconnector/internal/utils"
)

// PageLimits bounds page sizes. Default also acts as the voice-mode cap.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits matches the documented API defaults.
var DefaultPageLimits = PageLimits{Default: 10, Max: 50}

// ValidateQuery checks a raw request against the schema of its domain and
// returns the normalized query. Nothing is fetched before this succeeds.
func ValidateQuery(raw domain.RawQuery, limits PageLimits) (domain.Query, error) {
	d, ok := domain.ParseDomain(raw.Source)
	if !ok {
		return domain.Query{}, domain.InvalidDomainError{Value: raw.Source}
	}

	if raw.Page < 1 {
		return domain.Query{}, domain.ValidationError{Field: "page", Msg: "must be greater than or equal to 1"}
	}
	if raw.PageSize < 1 || raw.PageSize > limits.Max {
		return domain.Query{}, domain.ValidationError{
			Field: "page_size",
			Msg:   fmt.Sprintf("must be between 1 and %d", limits.Max),
		}
	}

	order := raw.Order
	if order == "" {
		order = domain.OrderDesc
	}
	if order != domain.OrderAsc && order != domain.OrderDesc {
		return domain.Query{}, domain.InvalidOrderError{Value: raw.Order}
	}

	provided := raw.FilterValues()
	filters := domain.Filters{}
	for _, key := range domain.FilterCheckOrder {
		value := provided[key]
		if value == nil {
			continue
		}
		if !domain.AllowsFilter(d, key) {
			return domain.Query{}, domain.UnsupportedFilterError{Filter: key, Domain: d}
		}
		filters[key] = *value
	}

	for _, key := range []string{domain.FilterStartDate, domain.FilterEndDate} {
		if provided[key] == nil {
			continue
		}
		value := utils.TrimOrEmpty(provided[key])
		filters[key] = value
		if value == "" {
			continue
		}
		if _, err := utils.ParseDate(value); err != nil {
			return domain.Query{}, domain.ValidationError{Field: key, Msg: "expected a YYYY-MM-DD date", Err: err}
		}
	}

	sort := domain.Sort{Field: domain.DefaultSortKey(d), Direction: domain.OrderDesc}
	if raw.SortBy != nil {
		if !domain.AllowsSortField(d, *raw.SortBy) {
			return domain.Query{}, domain.UnsupportedSortFieldError{Field: *raw.SortBy, Domain: d}
		}
		sort = domain.Sort{Field: *raw.SortBy, Direction: order}
	}

	return domain.Query{
		Domain:    d,
		Page:      raw.Page,
		PageSize:  raw.PageSize,
		VoiceMode: raw.VoiceMode,
		Summarize: raw.Summarize,
		Filters:   filters,
		Sort:      sort,
	}, nil
}
