package repositories

import (
	"context"
	"path/filepath"
	"time"

	"dataconnector/internal/domain"
)

// RecordSource supplies the full collection for one domain, already filtered
// by the equality and date-range filters that domain supports.
type RecordSource interface {
	Fetch(ctx context.Context, filters domain.Filters) ([]domain.Record, error)
	// LastUpdated reports when the underlying dataset last changed, if known.
	LastUpdated() (time.Time, bool)
}

// Sources maps each domain to its provider.
type Sources map[domain.Domain]RecordSource

// Dataset file names under the data directory.
const (
	CustomersFile      = "customers.json"
	SupportTicketsFile = "support_tickets.json"
	AnalyticsFile      = "analytics.json"
)

// NewFileSources wires the three JSON fixtures found in dataDir.
func NewFileSources(dataDir string) Sources {
	return Sources{
		domain.DomainCRM:       NewJSONFileSource(domain.DomainCRM, filepath.Join(dataDir, CustomersFile)),
		domain.DomainSupport:   NewJSONFileSource(domain.DomainSupport, filepath.Join(dataDir, SupportTicketsFile)),
		domain.DomainAnalytics: NewJSONFileSource(domain.DomainAnalytics, filepath.Join(dataDir, AnalyticsFile)),
	}
}
