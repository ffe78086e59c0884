package repositories

import (
	"fmt"
	"time"

	"dataconnector/internal/domain"
	"dataconnector/internal/utils"
)

var equalityFilters = []string{domain.FilterStatus, domain.FilterPriority, domain.FilterMetric}

// applyFilters keeps records matching every filter d supports. Filters the
// domain does not declare are ignored here; rejecting them is the validator's job.
func applyFilters(d domain.Domain, records []domain.Record, filters domain.Filters) ([]domain.Record, error) {
	for _, key := range equalityFilters {
		want := filters.Get(key)
		if want == "" || !domain.AllowsFilter(d, key) {
			continue
		}
		records = keep(records, func(rec domain.Record) bool {
			got, ok := rec[key].(string)
			return ok && got == want
		})
	}

	start, end, err := dateBounds(d, filters)
	if err != nil {
		return nil, err
	}
	if start != nil || end != nil {
		records = keep(records, func(rec domain.Record) bool {
			return withinRange(rec, start, end)
		})
	}
	return records, nil
}

func dateBounds(d domain.Domain, filters domain.Filters) (start, end *time.Time, err error) {
	parse := func(key string) (*time.Time, error) {
		raw := filters.Get(key)
		if raw == "" || !domain.AllowsFilter(d, key) {
			return nil, nil
		}
		t, err := utils.ParseDate(raw)
		if err != nil {
			return nil, domain.ValidationError{Field: key, Msg: "expected a YYYY-MM-DD date", Err: err}
		}
		return &t, nil
	}
	if start, err = parse(domain.FilterStartDate); err != nil {
		return nil, nil, err
	}
	if end, err = parse(domain.FilterEndDate); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// withinRange is inclusive on both ends. A record whose date does not parse
// never matches.
func withinRange(rec domain.Record, start, end *time.Time) bool {
	raw, ok := rec["date"]
	if !ok || raw == nil {
		return false
	}
	day, err := utils.ParseDate(fmt.Sprint(raw))
	if err != nil {
		return false
	}
	if start != nil && day.Before(*start) {
		return false
	}
	if end != nil && day.After(*end) {
		return false
	}
	return true
}

func keep(records []domain.Record, pred func(domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
