package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	intconfig "dataconnector/internal/config"
	"dataconnector/internal/domain"
	"dataconnector/internal/repositories"
	"dataconnector/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dataBody struct {
	Source   string           `json:"source"`
	DataType string           `json:"data_type"`
	Data     []map[string]any `json:"data"`
	Metadata map[string]any   `json:"metadata"`
}

func newTestRouter(t *testing.T, sources repositories.Sources) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if sources == nil {
		sources = repositories.NewFileSources(filepath.Join("..", "..", "data"))
	}
	svc := services.NewDataService(sources, services.DefaultPageLimits)
	return NewRouter(intconfig.Env{}, svc)
}

func get(t *testing.T, r http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) dataBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body dataBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func detail(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestHealth(t *testing.T) {
	w := get(t, newTestRouter(t, nil), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSourcesDescribesSchemas(t *testing.T) {
	w := get(t, newTestRouter(t, nil), "/sources")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sources []domain.SourceSchema `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sources, 3)
	assert.Equal(t, domain.DomainSupport, body.Sources[1].Domain)
	assert.Equal(t, []string{"status", "priority"}, body.Sources[1].AllowedFilters)
}

func TestCRMStatusFilter(t *testing.T) {
	body := decodeData(t, get(t, newTestRouter(t, nil), "/data?source=crm&status=active"))

	assert.Equal(t, "crm", body.Source)
	assert.Equal(t, domain.DataTypeTabularCRM, body.DataType)
	require.NotEmpty(t, body.Data)
	for _, row := range body.Data {
		assert.Equal(t, "active", row["status"])
	}
	for _, key := range []string{
		"total_results", "page", "page_size", "returned_results", "total_pages",
		"has_more", "data_freshness", "data_last_updated", "data_staleness_seconds", "voice_hint",
	} {
		assert.Contains(t, body.Metadata, key)
	}
	assert.Len(t, body.Metadata, 10)
}

func TestSourceIsCaseInsensitive(t *testing.T) {
	r := newTestRouter(t, nil)
	upper := decodeData(t, get(t, r, "/data?source=Support&status=open"))
	lower := decodeData(t, get(t, r, "/data?source=support&status=open"))

	assert.Equal(t, "support", upper.Source)
	assert.Equal(t, lower.Data, upper.Data)
}

func TestAnalyticsMetricAndDateRange(t *testing.T) {
	body := decodeData(t, get(t, newTestRouter(t, nil),
		"/data?source=analytics&metric=daily_active_users&start_date=2024-01-01&end_date=2024-01-07&voice_mode=false"))

	assert.Equal(t, domain.DataTypeTimeSeries, body.DataType)
	require.Len(t, body.Data, 7)
	for _, row := range body.Data {
		assert.Equal(t, "daily_active_users", row["metric"])
		date, _ := row["date"].(string)
		assert.GreaterOrEqual(t, date, "2024-01-01")
		assert.LessOrEqual(t, date, "2024-01-07")
	}
	assert.Equal(t, "2024-01-07", body.Data[0]["date"], "default sort is newest first")
}

func TestDisallowedFiltersReturn400(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, d := range domain.Domains {
		for _, key := range domain.FilterCheckOrder {
			if domain.AllowsFilter(d, key) {
				continue
			}
			w := get(t, r, "/data?source="+string(d)+"&"+key+"=2024-01-01")
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s/%s", d, key)
		}
	}

	w := get(t, r, "/data?source=crm&priority=high")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Filter 'priority' is not allowed for source 'crm'.", detail(t, w))
}

func TestDisallowedSortFieldsReturn400(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, d := range domain.Domains {
		for _, field := range []string{"priority", "value", "email", "unknown"} {
			if domain.AllowsSortField(d, field) {
				continue
			}
			w := get(t, r, "/data?source="+string(d)+"&sort_by="+field)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s/%s", d, field)
		}
	}

	w := get(t, r, "/data?source=support&sort_by=created_at&order=asc")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidSourceAndBadDateReturn400(t *testing.T) {
	r := newTestRouter(t, nil)

	w := get(t, r, "/data?source=invalid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, r, "/data?source=analytics&start_date=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestShapeErrorsReturn422(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, target := range []string{
		"/data",
		"/data?source=crm&page=0",
		"/data?source=crm&page=abc",
		"/data?source=crm&page_size=0",
		"/data?source=crm&page_size=51",
		"/data?source=crm&order=up",
		"/data?source=crm&voice_mode=maybe",
	} {
		w := get(t, r, target)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, target)
		assert.IsType(t, []any{}, detail(t, w), target)
	}

	w := get(t, r, "/data?page=2")
	var body struct {
		Detail []struct {
			Loc []string `json:"loc"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Detail)
	assert.Equal(t, []string{"query", "source"}, body.Detail[0].Loc)
}

func TestPagination(t *testing.T) {
	r := newTestRouter(t, nil)

	body := decodeData(t, get(t, r, "/data?source=support&page=1&page_size=5"))
	assert.EqualValues(t, 5, body.Metadata["page_size"])
	assert.Len(t, body.Data, 5)

	beyond := decodeData(t, get(t, r, "/data?source=support&page=99&page_size=5"))
	assert.Empty(t, beyond.Data)
	assert.NotNil(t, beyond.Data)
	assert.Equal(t, false, beyond.Metadata["has_more"])
	assert.Equal(t, "Showing 0 of 50 results", beyond.Metadata["voice_hint"])
}

func TestPagesReassembleSortedCollection(t *testing.T) {
	r := newTestRouter(t, nil)

	all := decodeData(t, get(t, r, "/data?source=support&voice_mode=false&page_size=50&sort_by=ticket_id&order=asc"))
	require.Len(t, all.Data, 50)

	var joined []map[string]any
	for page := 1; page <= 7; page++ {
		body := decodeData(t, get(t, r, "/data?source=support&voice_mode=false&page_size=8&sort_by=ticket_id&order=asc&page="+itoa(page)))
		assert.EqualValues(t, 7, body.Metadata["total_pages"])
		joined = append(joined, body.Data...)
	}
	assert.Equal(t, all.Data, joined)
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

func TestVoiceModeCapsPageSize(t *testing.T) {
	r := newTestRouter(t, nil)

	capped := decodeData(t, get(t, r, "/data?source=support&page=1&page_size=50&voice_mode=true"))
	assert.EqualValues(t, 10, capped.Metadata["page_size"])

	defaulted := decodeData(t, get(t, r, "/data?source=support&page=1&page_size=50"))
	assert.EqualValues(t, 10, defaulted.Metadata["page_size"])

	full := decodeData(t, get(t, r, "/data?source=support&page=1&page_size=50&voice_mode=false"))
	assert.EqualValues(t, 50, full.Metadata["page_size"])
}

func TestSummarizeKeepsReducedFields(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, d := range domain.Domains {
		plain := decodeData(t, get(t, r, "/data?source="+string(d)))
		reduced := decodeData(t, get(t, r, "/data?source="+string(d)+"&summarize=true"))

		require.Len(t, reduced.Data, len(plain.Data))
		allowed := domain.ReducedFields(d)
		for _, row := range reduced.Data {
			for k := range row {
				assert.Contains(t, allowed, k)
			}
		}
	}

	body := decodeData(t, get(t, r, "/data?source=support&summarize=true"))
	require.NotEmpty(t, body.Data)
	for _, key := range []string{"ticket_id", "subject", "priority", "status"} {
		assert.Contains(t, body.Data[0], key)
	}
}

func TestRepeatedRequestsAreIdentical(t *testing.T) {
	r := newTestRouter(t, nil)
	target := "/data?source=crm&sort_by=status&order=asc&voice_mode=false&page_size=30"

	first := decodeData(t, get(t, r, target))
	second := decodeData(t, get(t, r, target))

	a, _ := json.Marshal(first.Data)
	b, _ := json.Marshal(second.Data)
	assert.Equal(t, string(a), string(b))
	for _, key := range []string{"total_results", "page", "page_size", "returned_results", "total_pages", "has_more"} {
		assert.Equal(t, first.Metadata[key], second.Metadata[key])
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, nil)

	w := get(t, r, "/data?source=crm", "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = get(t, r, "/data?source=crm&priority=high")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get(t, r, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

type brokenSource struct{ panics bool }

func (b brokenSource) Fetch(context.Context, domain.Filters) ([]domain.Record, error) {
	if b.panics {
		panic("dataset exploded")
	}
	return nil, domain.InternalError{Msg: "read failed: /secret/path"}
}

func (brokenSource) LastUpdated() (time.Time, bool) { return time.Time{}, false }

func TestInternalFailuresHideDetails(t *testing.T) {
	r := newTestRouter(t, repositories.Sources{
		domain.DomainCRM:     brokenSource{},
		domain.DomainSupport: brokenSource{panics: true},
	})

	for _, source := range []string{"crm", "support", "analytics"} {
		w := get(t, r, "/data?source="+source, "X-Request-ID", "req-"+source)
		require.Equal(t, http.StatusInternalServerError, w.Code, source)
		assert.JSONEq(t, `{"detail":"Internal server error","request_id":"req-`+source+`"}`, w.Body.String())
		assert.Equal(t, "req-"+source, w.Header().Get("X-Request-ID"))
	}
}

func TestHugePageNumberReturnsEmptyPage(t *testing.T) {
	body := decodeData(t, get(t, newTestRouter(t, nil), "/data?source=support&page=9223372036854775807"))

	assert.Empty(t, body.Data)
	assert.NotNil(t, body.Data)
	assert.Equal(t, false, body.Metadata["has_more"])
	assert.EqualValues(t, 50, body.Metadata["total_results"])
}

func TestUnparsableParametersAreNamed(t *testing.T) {
	r := newTestRouter(t, nil)
	cases := map[string][]string{
		"/data?source=crm&page=abc":          {"query", "page"},
		"/data?source=crm&page_size=ten":     {"query", "page_size"},
		"/data?source=crm&voice_mode=maybe":  {"query", "voice_mode"},
		"/data?source=crm&summarize=perhaps": {"query", "summarize"},
	}
	for target, loc := range cases {
		w := get(t, r, target)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, target)

		var body struct {
			Detail []struct {
				Loc   []string `json:"loc"`
				Input string   `json:"input"`
			} `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), target)
		require.Len(t, body.Detail, 1, target)
		assert.Equal(t, loc, body.Detail[0].Loc, target)
	}
}
