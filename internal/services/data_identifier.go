package services

import "dataconnector/internal/domain"

// IdentifyDataType classifies a result set by its first record.
func IdentifyDataType(records []domain.Record) string {
	if len(records) == 0 {
		return domain.DataTypeUnknown
	}
	sample := records[0]

	for _, v := range sample {
		switch v.(type) {
		case map[string]any, []any, domain.Record, []domain.Record:
			return domain.DataTypeHierarchical
		}
	}

	has := func(key string) bool {
		_, ok := sample[key]
		return ok
	}
	switch {
	case has("date") && (has("metric") || has("value")):
		return domain.DataTypeTimeSeries
	case has("email") && (has("customer_id") || has("name")):
		return domain.DataTypeTabularCRM
	case has("ticket_id") && (has("priority") || has("subject")):
		return domain.DataTypeTabularSupport
	default:
		return domain.DataTypeGeneric
	}
}
