package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
)

// MemoryStore keeps reports in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*models.CreditReport
	order  []string
	now    func() time.Time
	logger logging.Logger
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(logger logging.Logger) *MemoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &MemoryStore{
		byID:   make(map[string]*models.CreditReport),
		now:    time.Now,
		logger: logger,
	}
}

// Insert implements Repository.
func (s *MemoryStore) Insert(ctx context.Context, extracted *models.ExtractedReport) (*models.CreditReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if extracted == nil {
		return nil, errNilReport
	}
	report := models.NewCreditReport(*extracted, s.now())

	s.mu.Lock()
	s.byID[report.ID] = report
	s.order = append(s.order, report.ID)
	s.mu.Unlock()

	s.logger.Debug("Stored credit report", logging.F(logging.FieldReportID, report.ID))
	return report.Clone(), nil
}

// FindByID implements Repository.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.CreditReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return report.Clone(), nil
}

// List implements Repository.
func (s *MemoryStore) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	if err := ctx.Err(); err != nil {
		return ListResult{}, err
	}
	opts = opts.Normalized()

	s.mu.RLock()
	matched := make([]*models.CreditReport, 0, len(s.order))
	for _, id := range s.order {
		if r := s.byID[id]; matches(r, opts) {
			matched = append(matched, r)
		}
	}
	s.mu.RUnlock()

	less := lessFunc(opts.SortBy)
	sort.SliceStable(matched, func(i, j int) bool {
		if opts.SortOrder == models.SortAsc {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})

	result := ListResult{Total: int64(len(matched)), Page: opts.Page, Limit: opts.Limit, Reports: []*models.CreditReport{}}
	start := opts.Skip()
	if start < 0 || start >= len(matched) {
		return result, nil
	}
	end := start + opts.Limit
	if end < start || end > len(matched) {
		end = len(matched)
	}
	for _, r := range matched[start:end] {
		result.Reports = append(result.Reports, r.Clone())
	}
	return result, nil
}

// lessFunc orders reports ascending by key. Missing credit scores sort lowest.
func lessFunc(sortBy string) func(a, b *models.CreditReport) bool {
	switch sortBy {
	case models.SortByCreditScore:
		return func(a, b *models.CreditReport) bool {
			sa, sb := a.BasicDetails.CreditScore, b.BasicDetails.CreditScore
			if sa == nil || sb == nil {
				return sa == nil && sb != nil
			}
			return *sa < *sb
		}
	case models.SortByReportDate:
		return func(a, b *models.CreditReport) bool {
			return reportDateKey(a.ReportDate) < reportDateKey(b.ReportDate)
		}
	default:
		return func(a, b *models.CreditReport) bool {
			return a.UploadedAt.Before(b.UploadedAt)
		}
	}
}

// Delete implements Repository.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Debug("Deleted credit report", logging.F(logging.FieldReportID, id))
	return nil
}

// Stats implements Repository.
func (s *MemoryStore) Stats(ctx context.Context) (models.ReportStats, error) {
	if err := ctx.Err(); err != nil {
		return models.ReportStats{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var acc models.StatsAccumulator
	for _, id := range s.order {
		acc.Add(s.byID[id])
	}
	return acc.Result(), nil
}

// Close implements Repository.
func (s *MemoryStore) Close() error {
	return nil
}
