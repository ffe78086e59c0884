package repositories

import (
	"context"
	"maps"
	"time"

	"dataconnector/internal/domain"
)

// MemorySource serves a fixed in-memory collection.
type MemorySource struct {
	Domain    domain.Domain
	Records   []domain.Record
	UpdatedAt time.Time
}

func (s MemorySource) Fetch(ctx context.Context, filters domain.Filters) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(s.Records))
	for _, rec := range s.Records {
		out = append(out, maps.Clone(rec))
	}
	return applyFilters(s.Domain, out, filters)
}

func (s MemorySource) LastUpdated() (time.Time, bool) {
	if s.UpdatedAt.IsZero() {
		return time.Time{}, false
	}
	return s.UpdatedAt, true
}
