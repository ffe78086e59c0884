package services

import (
	"context"
	"fmt"
	"time"

	"dataconnector/internal/domain"
	"dataconnector/internal/repositories"
	"dataconnector/internal/utils"
)

// DataService runs a request through validation, fetch, sort, pagination,
// optional voice summarization and envelope assembly.
type DataService struct {
	Sources   repositories.Sources
	Limits    PageLimits
	Now       func() time.Time
	RequestID string
}

func NewDataService(sources repositories.Sources, limits PageLimits) DataService {
	return DataService{Sources: sources, Limits: limits, Now: utils.NowUTC}
}

// Query answers one request. Validation errors are returned before any
// source is read.
func (s DataService) Query(ctx context.Context, raw domain.RawQuery) (domain.DataResponse, error) {
	q, err := ValidateQuery(raw, s.Limits)
	if err != nil {
		return domain.DataResponse{}, err
	}

	src, ok := s.Sources[q.Domain]
	if !ok || src == nil {
		return domain.DataResponse{}, domain.InternalError{Msg: fmt.Sprintf("no record source for %s", q.Domain)}
	}

	utils.LogEvent(s.RequestID, "data", "fetch", fmt.Sprintf("source=%s filters=%d", q.Domain, len(q.Filters)))

	records, err := src.Fetch(ctx, q.Filters)
	if err != nil {
		return domain.DataResponse{}, err
	}

	sorted := SortRecords(records, q.Sort)
	size := EffectivePageSize(q.PageSize, q.VoiceMode, s.Limits)
	page := Paginate(sorted, q.Page, size)

	data := page.Records
	if q.Summarize {
		data = SummarizeForVoice(q.Domain, data)
	}
	if data == nil {
		data = []domain.Record{}
	}

	return domain.DataResponse{
		Source:   q.Domain.String(),
		DataType: IdentifyDataType(sorted),
		Data:     data,
		Metadata: s.buildMetadata(page, len(data), src),
	}, nil
}

func (s DataService) buildMetadata(page domain.PageResult, returned int, src repositories.RecordSource) domain.Metadata {
	now := s.now()
	meta := domain.Metadata{
		TotalResults:    page.Total,
		Page:            page.Page,
		PageSize:        page.PageSize,
		ReturnedResults: returned,
		TotalPages:      page.TotalPages,
		HasMore:         page.HasMore,
		DataFreshness:   now.Format(domain.FreshnessLayout),
		VoiceHint:       fmt.Sprintf("Showing %d of %d results", returned, page.Total),
	}
	if updated, ok := src.LastUpdated(); ok {
		lastUpdated := updated.UTC().Format(domain.FreshnessLayout)
		staleness := int64(now.Sub(updated) / time.Second)
		meta.DataLastUpdated = &lastUpdated
		meta.DataStalenessSeconds = &staleness
	}
	return meta
}

func (s DataService) now() time.Time {
	if s.Now == nil {
		return utils.NowUTC()
	}
	return s.Now().UTC()
}
