// Package store persists extracted credit reports.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/dateutils"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
)

// ErrNotFound is returned when no report has the requested id.
var ErrNotFound = errors.New("credit report not found")

var errNilReport = errors.New("cannot store a nil report")

// Default list parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Repository stores credit reports. Implementations are safe for concurrent use.
type Repository interface {
	// Insert prepares extracted for storage (id, timestamps, full name,
	// normalized fields) and saves it.
	Insert(ctx context.Context, extracted *models.ExtractedReport) (*models.CreditReport, error)
	FindByID(ctx context.Context, id string) (*models.CreditReport, error)
	List(ctx context.Context, opts ListOptions) (ListResult, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.ReportStats, error)
	Close() error
}

// ListOptions filters, sorts and pages a listing. Zero values mean defaults.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	// MinScore and MaxScore are inclusive; when either is set, reports
	// without a credit score are excluded.
	MinScore *int
	MaxScore *int
	// PAN matches exactly, ignoring case.
	PAN string
}

// ListResult is one page of reports plus the number of matches overall.
type ListResult struct {
	Reports []*models.CreditReport
	Total   int64
	Page    int
	Limit   int
}

// TotalPages returns the number of pages needed for Total at Limit per page.
func (r ListResult) TotalPages() int64 {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + int64(r.Limit) - 1) / int64(r.Limit)
}

// Normalized fills in defaults and canonical forms.
func (o ListOptions) Normalized() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	switch o.SortBy {
	case models.SortByUploadedAt, models.SortByCreditScore, models.SortByReportDate:
	default:
		o.SortBy = models.SortByUploadedAt
	}
	if o.SortOrder != models.SortAsc {
		o.SortOrder = models.SortDesc
	}
	o.PAN = strings.ToUpper(strings.TrimSpace(o.PAN))
	return o
}

// Skip returns the number of matches before the requested page. Offsets
// past math.MaxInt saturate.
func (o ListOptions) Skip() int {
	if o.Page < 1 || o.Limit < 1 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// Open returns the repository selected by cfg.Driver.
func Open(cfg config.StoreConfig, logger logging.Logger) (Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(logger), nil
	case config.DriverSQLite:
		return OpenSQLStore(cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}

// reportDateKey makes report dates comparable: parseable dates become ISO
// dates, anything else is kept verbatim.
func reportDateKey(s string) string {
	if t, err := dateutils.ParseReportDate(s); err == nil {
		return t.Format(dateutils.DateLayoutISO)
	}
	return s
}

func matches(r *models.CreditReport, o ListOptions) bool {
	score := r.BasicDetails.CreditScore
	if o.MinScore != nil && (score == nil || *score < *o.MinScore) {
		return false
	}
	if o.MaxScore != nil && (score == nil || *score > *o.MaxScore) {
		return false
	}
	if o.PAN != "" && models.Deref(r.BasicDetails.PAN) != o.PAN {
		return false
	}
	return true
}
