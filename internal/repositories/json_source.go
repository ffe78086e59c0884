package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dataconnector/internal/domain"
)

// JSONFileSource reads a JSON array of records from disk on every fetch.
type JSONFileSource struct {
	Domain domain.Domain
	Path   string
}

func NewJSONFileSource(d domain.Domain, path string) JSONFileSource {
	return JSONFileSource{Domain: d, Path: path}
}

func (s JSONFileSource) Fetch(ctx context.Context, filters domain.Filters) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, domain.InternalError{Msg: fmt.Sprintf("open %s dataset", s.Domain), Err: err}
	}
	defer f.Close()

	var records []domain.Record
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, domain.InternalError{Msg: fmt.Sprintf("decode %s dataset", s.Domain), Err: err}
	}

	return applyFilters(s.Domain, records, filters)
}

// LastUpdated returns the dataset file's modification time in UTC.
func (s JSONFileSource) LastUpdated() (time.Time, bool) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime().UTC(), true
}
