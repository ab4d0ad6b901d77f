package notaries

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-NotaryService/internal/domain"
	notaryRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/notary"
	qualificationRepo "github.com/m04kA/SMC-NotaryService/internal/infra/storage/qualification"
)

// ── Mock NotaryRepository ──

type mockNotaryRepo struct {
	notaries map[int64]*domain.Notary
	nextID   int64
	getErr   error // возвращается из GetByID вместо поиска, GetForUpdate его не видит
}

func newMockNotaryRepo() *mockNotaryRepo {
	return &mockNotaryRepo{notaries: make(map[int64]*domain.Notary), nextID: 1}
}

func (m *mockNotaryRepo) Create(_ context.Context, notary *domain.Notary) (*domain.Notary, error) {
	notary.ID = m.nextID
	notary.ScheduleVersion = 1
	m.nextID++
	m.notaries[notary.ID] = copyNotary(notary)
	return notary, nil
}

func (m *mockNotaryRepo) GetByID(_ context.Context, id int64) (*domain.Notary, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if n, ok := m.notaries[id]; ok {
		return copyNotary(n), nil
	}
	return nil, notaryRepo.ErrNotaryNotFound
}

func (m *mockNotaryRepo) GetForUpdate(_ context.Context, id int64) (*domain.Notary, error) {
	if n, ok := m.notaries[id]; ok {
		c := copyNotary(n)
		c.Schedule = nil
		return c, nil
	}
	return nil, notaryRepo.ErrNotaryNotFound
}

func (m *mockNotaryRepo) List(_ context.Context, filter domain.NotariesFilter) ([]*domain.Notary, error) {
	result := make([]*domain.Notary, 0)
	for id := int64(1); id < m.nextID; id++ {
		n, ok := m.notaries[id]
		if !ok {
			continue
		}
		if filter.QualificationID != nil && n.QualificationID != *filter.QualificationID {
			continue
		}
		if filter.SearchFIO != nil && !strings.Contains(strings.ToLower(n.FIO), strings.ToLower(*filter.SearchFIO)) {
			continue
		}
		result = append(result, copyNotary(n))
	}
	return result, nil
}

func (m *mockNotaryRepo) Update(_ context.Context, notary *domain.Notary, expectedVersion int64) (*domain.Notary, error) {
	current, ok := m.notaries[notary.ID]
	if !ok {
		return nil, notaryRepo.ErrNotaryNotFound
	}
	if current.ScheduleVersion != expectedVersion {
		return nil, notaryRepo.ErrVersionConflict
	}
	notary.ScheduleVersion = expectedVersion + 1
	m.notaries[notary.ID] = copyNotary(notary)
	return notary, nil
}

func (m *mockNotaryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.notaries[id]; !ok {
		return notaryRepo.ErrNotaryNotFound
	}
	delete(m.notaries, id)
	return nil
}

func copyNotary(n *domain.Notary) *domain.Notary {
	c := *n
	if n.Schedule != nil {
		c.Schedule = n.Schedule.Clone()
	}
	if n.Qualification != nil {
		q := *n.Qualification
		c.Qualification = &q
	}
	return &c
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	orders []*domain.Order
	err    error
}

func (m *mockOrderRepo) GetByNotaryID(_ context.Context, notaryID int64) ([]*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.BelongsTo(notaryID) {
			c := *o
			result = append(result, &c)
		}
	}
	return result, nil
}

// ── Mock QualificationRepository ──

type mockQualificationRepo struct {
	qualifications map[int64]*domain.Qualification
}

func newMockQualificationRepo(qs ...*domain.Qualification) *mockQualificationRepo {
	m := &mockQualificationRepo{qualifications: make(map[int64]*domain.Qualification)}
	for _, q := range qs {
		m.qualifications[q.ID] = q
	}
	return m
}

func (m *mockQualificationRepo) GetByID(_ context.Context, id int64) (*domain.Qualification, error) {
	if q, ok := m.qualifications[id]; ok {
		return q, nil
	}
	return nil, qualificationRepo.ErrQualificationNotFound
}

// ── Mock TransactionManager ──

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// ── Mock Metrics ──

type mockMetrics struct {
	projections []string
	forced      int
	skipped     int
	staleWrites []string
}

func (m *mockMetrics) ObserveProjection(result string, forced int, skipped int) {
	m.projections = append(m.projections, result)
	m.forced += forced
	m.skipped += skipped
}

func (m *mockMetrics) ObserveStaleWrite(reason string) {
	m.staleWrites = append(m.staleWrites, reason)
}

// ── Mock Logger ──

type mockLogger struct {
	warnings []string
}

func (l *mockLogger) Info(string, ...interface{}) {}

func (l *mockLogger) Warn(format string, _ ...interface{}) {
	l.warnings = append(l.warnings, format)
}

func (l *mockLogger) Error(string, ...interface{}) {}
