// Package store persists finished analysis reports as opaque JSON
// blobs, keyed by generated identifiers.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/platewatch/platewatch/internal/model"
)

// ErrNotFound is returned when no report exists for an id.
var ErrNotFound = eris.New("store: report not found")

// ReportFilter specifies criteria for listing saved reports.
type ReportFilter struct {
	TargetName string `json:"target_name,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis reports. Reports
// are immutable: SaveReport always creates a new row and returns its id;
// nothing updates a saved report.
type Store interface {
	SaveReport(ctx context.Context, report *model.Report) (string, error)
	GetReport(ctx context.Context, id string) (*model.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]model.ReportSummary, error)

	Migrate(ctx context.Context) error
	Close() error
}
