package auditplans

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/audit-atlas/pkg/models/store"
)

var ErrNotFound = fmt.Errorf("audit plan not found")

type Store interface {
	List(ctx context.Context) ([]store.AuditPlan, error)
	Get(ctx context.Context, id string) (store.AuditPlan, error)
	Add(ctx context.Context, p store.AuditPlan) error
	Update(ctx context.Context, id string, apply func(store.AuditPlan) store.AuditPlan) (store.AuditPlan, error)
	Count(ctx context.Context) (int, error)
}

type memoryStore struct {
	mu    sync.RWMutex
	plans []store.AuditPlan
}

func NewStore(seed []store.AuditPlan) Store {
	s := &memoryStore{}
	if len(seed) > 0 {
		s.plans = append([]store.AuditPlan(nil), seed...)
	}
	return s
}

func (s *memoryStore) List(_ context.Context) ([]store.AuditPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (store.AuditPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return store.AuditPlan{}, ErrNotFound
}

func (s *memoryStore) Add(_ context.Context, p store.AuditPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]store.AuditPlan, 0, len(s.plans)+1)
	next = append(next, s.plans...)
	next = append(next, p)
	s.plans = next
	return nil
}

func (s *memoryStore) Update(
	_ context.Context,
	id string,
	apply func(store.AuditPlan) store.AuditPlan,
) (store.AuditPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.plans {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.AuditPlan{}, ErrNotFound
	}

	next := make([]store.AuditPlan, len(s.plans))
	copy(next, s.plans)
	next[idx] = apply(next[idx])
	s.plans = next
	return next[idx], nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans), nil
}
