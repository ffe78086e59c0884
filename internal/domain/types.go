package domain

import "dataconnector/internal/utils"

// Domain is one of the three fixed business-data categories.
type Domain string

const (
	DomainCRM       Domain = "crm"
	DomainSupport   Domain = "support"
	DomainAnalytics Domain = "analytics"
)

// Domains lists every known domain in a stable order.
var Domains = []Domain{DomainCRM, DomainSupport, DomainAnalytics}

// ParseDomain matches a raw source token case-insensitively after trimming.
func ParseDomain(raw string) (Domain, bool) {
	normalized := Domain(utils.NormalizeToken(raw))
	for _, d := range Domains {
		if d == normalized {
			return d, true
		}
	}
	return "", false
}

func (d Domain) String() string { return string(d) }

// Record is one business item as decoded from its source.
type Record map[string]any

// Filter names, in the order they are checked against a domain's schema.
const (
	FilterStatus    = "status"
	FilterPriority  = "priority"
	FilterMetric    = "metric"
	FilterStartDate = "start_date"
	FilterEndDate   = "end_date"
)

var FilterCheckOrder = []string{FilterStatus, FilterPriority, FilterMetric, FilterStartDate, FilterEndDate}

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort defines sorting preference.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // asc / desc
}

// Filters maps filter name to its requested value.
type Filters map[string]string

// Get returns the value for key, or "" when unset.
func (f Filters) Get(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// RawQuery is a request as received, before validation.
// A nil filter pointer means the parameter was absent.
type RawQuery struct {
	Source    string
	Page      int
	PageSize  int
	VoiceMode bool
	Summarize bool
	Status    *string
	Priority  *string
	Metric    *string
	StartDate *string
	EndDate   *string
	SortBy    *string
	Order     string
}

// FilterValues returns the provided filters keyed by name.
func (r RawQuery) FilterValues() map[string]*string {
	return map[string]*string{
		FilterStatus:    r.Status,
		FilterPriority:  r.Priority,
		FilterMetric:    r.Metric,
		FilterStartDate: r.StartDate,
		FilterEndDate:   r.EndDate,
	}
}

// Query is the validated, normalized form of one request.
type Query struct {
	Domain    Domain
	Page      int
	PageSize  int
	VoiceMode bool
	Summarize bool
	Filters   Filters
	Sort      Sort
}

// PageResult is one page sliced out of a sorted collection.
type PageResult struct {
	Records    []Record
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	HasMore    bool
}

// Metadata accompanies every successful data response.
type Metadata struct {
	TotalResults         int     `json:"total_results"`
	Page                 int     `json:"page"`
	PageSize             int     `json:"page_size"`
	ReturnedResults      int     `json:"returned_results"`
	TotalPages           int     `json:"total_pages"`
	HasMore              bool    `json:"has_more"`
	DataFreshness        string  `json:"data_freshness"`
	DataLastUpdated      *string `json:"data_last_updated"`
	DataStalenessSeconds *int64  `json:"data_staleness_seconds"`
	VoiceHint            string  `json:"voice_hint"`
}

// DataResponse is the envelope returned for a data query.
type DataResponse struct {
	Source   string   `json:"source"`
	DataType string   `json:"data_type"`
	Data     []Record `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// Data shape labels.
const (
	DataTypeHierarchical   = "hierarchical"
	DataTypeTimeSeries     = "time_series"
	DataTypeTabularCRM     = "tabular_crm"
	DataTypeTabularSupport = "tabular_support"
	DataTypeGeneric        = "generic"
	DataTypeUnknown        = "unknown"
)

// FreshnessLayout is the fixed-width form used for freshness timestamps.
const FreshnessLayout = "2006-01-02T15:04:05.000000Z07:00"
