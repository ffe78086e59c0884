package domain

import "slices"

// SourceSchema declares what a domain accepts and how it is shaped for voice.
type SourceSchema struct {
	Domain         Domain   `json:"source"`
	AllowedFilters []string `json:"allowed_filters"`
	SortFields     []string `json:"sort_fields"`
	DefaultSortKey string   `json:"default_sort_key"`
	DefaultOrder   string   `json:"default_order"`
	ReducedFields  []string `json:"reduced_fields"`
}

var schemas = map[Domain]SourceSchema{
	DomainCRM: {
		Domain:         DomainCRM,
		AllowedFilters: []string{FilterStatus},
		SortFields:     []string{"customer_id", "name", "email", "created_at", "status"},
		DefaultSortKey: "created_at",
		DefaultOrder:   OrderDesc,
		ReducedFields:  []string{"customer_id", "name", "status", "created_at", "email"},
	},
	DomainSupport: {
		Domain:         DomainSupport,
		AllowedFilters: []string{FilterStatus, FilterPriority},
		SortFields:     []string{"ticket_id", "customer_id", "subject", "priority", "created_at", "status"},
		DefaultSortKey: "created_at",
		DefaultOrder:   OrderDesc,
		ReducedFields:  []string{"ticket_id", "subject", "priority", "status", "created_at", "customer_id"},
	},
	DomainAnalytics: {
		Domain:         DomainAnalytics,
		AllowedFilters: []string{FilterMetric, FilterStartDate, FilterEndDate},
		SortFields:     []string{"metric", "date", "value"},
		DefaultSortKey: "date",
		DefaultOrder:   OrderDesc,
		ReducedFields:  []string{"metric", "date", "value"},
	},
}

// SchemaFor returns a copy of the schema for d. Callers validate d first.
func SchemaFor(d Domain) SourceSchema {
	s := schemas[d]
	s.AllowedFilters = slices.Clone(s.AllowedFilters)
	s.SortFields = slices.Clone(s.SortFields)
	s.ReducedFields = slices.Clone(s.ReducedFields)
	return s
}

// Schemas returns every schema in domain order.
func Schemas() []SourceSchema {
	out := make([]SourceSchema, 0, len(Domains))
	for _, d := range Domains {
		out = append(out, SchemaFor(d))
	}
	return out
}

func AllowsFilter(d Domain, key string) bool {
	return slices.Contains(schemas[d].AllowedFilters, key)
}

func AllowsSortField(d Domain, field string) bool {
	return slices.Contains(schemas[d].SortFields, field)
}

func DefaultSortKey(d Domain) string {
	return schemas[d].DefaultSortKey
}

// ReducedFields is the ordered projection kept by voice summarization.
func ReducedFields(d Domain) []string {
	return slices.Clone(schemas[d].ReducedFields)
}
