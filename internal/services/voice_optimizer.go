package services

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"dataconnector/internal/domain"
	"dataconnector/internal/utils"
)

// fallbackFieldLimit bounds records of a domain without a reduced field list.
const fallbackFieldLimit = 6

// SummarizeForVoice projects each record onto the identity, recency and
// actionability fields of its domain. Absent fields are omitted.
//
// A domain without a reduced field list keeps its first six keys in sorted
// order: records are maps, so their original key order is not available.
func SummarizeForVoice(d domain.Domain, records []domain.Record) []domain.Record {
	fields := domain.ReducedFields(d)
	out := make([]domain.Record, 0, len(records))

	for _, rec := range records {
		reduced := domain.Record{}
		if len(fields) == 0 {
			keys := slices.Sorted(maps.Keys(rec))
			for _, k := range keys[:min(len(keys), fallbackFieldLimit)] {
				reduced[k] = rec[k]
			}
			out = append(out, reduced)
			continue
		}

		for _, key := range fields {
			if v, ok := rec[key]; ok {
				reduced[key] = v
			}
		}
		if d == domain.DomainAnalytics {
			if v, ok := reduced["date"]; ok {
				reduced["date"] = normalizeDate(v)
			}
		}
		out = append(out, reduced)
	}
	return out
}

func normalizeDate(v any) any {
	switch t := v.(type) {
	case time.Time:
		return utils.FormatDate(t)
	case string:
		if day, err := utils.ParseLooseDate(t); err == nil {
			return utils.FormatDate(day)
		}
		return t
	case nil:
		return nil
	default:
		return fmt.Sprint(t)
	}
}
