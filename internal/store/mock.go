package store

import (
	"context"

	"fjacquet/credit-report/internal/models"
)

// MockRepository is a Repository for tests. It delegates to an in-memory
// store unless the matching error field is set.
type MockRepository struct {
	*MemoryStore

	InsertError error
	FindError   error
	ListError   error
	DeleteError error
	StatsError  error
	CloseError  error

	Closed bool
}

// NewMockRepository returns a MockRepository with an empty backing store.
func NewMockRepository() *MockRepository {
	return &MockRepository{MemoryStore: NewMemoryStore(nil)}
}

// Insert returns InsertError if set.
func (m *MockRepository) Insert(ctx context.Context, extracted *models.ExtractedReport) (*models.CreditReport, error) {
	if m.InsertError != nil {
		return nil, m.InsertError
	}
	return m.MemoryStore.Insert(ctx, extracted)
}

// FindByID returns FindError if set.
func (m *MockRepository) FindByID(ctx context.Context, id string) (*models.CreditReport, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	return m.MemoryStore.FindByID(ctx, id)
}

// List returns ListError if set.
func (m *MockRepository) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	if m.ListError != nil {
		return ListResult{}, m.ListError
	}
	return m.MemoryStore.List(ctx, opts)
}

// Delete returns DeleteError if set.
func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.MemoryStore.Delete(ctx, id)
}

// Stats returns StatsError if set.
func (m *MockRepository) Stats(ctx context.Context) (models.ReportStats, error) {
	if m.StatsError != nil {
		return models.ReportStats{}, m.StatsError
	}
	return m.MemoryStore.Stats(ctx)
}

// Close records the call and returns CloseError.
func (m *MockRepository) Close() error {
	m.Closed = true
	return m.CloseError
}
