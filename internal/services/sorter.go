package services

import (
	"cmp"
	"fmt"
	"slices"

	"dataconnector/internal/domain"
)

// SortRecords returns a stably sorted copy of records. Absent values compare
// as the empty string; descending order keeps equal keys in input order.
func SortRecords(records []domain.Record, s domain.Sort) []domain.Record {
	out := slices.Clone(records)
	if s.Field == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b domain.Record) int {
		c := compareValues(a[s.Field], b[s.Field])
		if s.Direction == domain.OrderDesc {
			return -c
		}
		return c
	})
	return out
}

func compareValues(a, b any) int {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return cmp.Compare(sortString(a), sortString(b))
}

func sortString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
