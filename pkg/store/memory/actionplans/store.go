package actionplans

import (
	"context"
	"sync"

	"github.com/de-tools/audit-atlas/pkg/models/store"
)

type Store interface {
	List(ctx context.Context) ([]store.ActionPlan, error)
	// ListByFinding returns every submission for a finding in submission order.
	ListByFinding(ctx context.Context, findingID string) ([]store.ActionPlan, error)
	// Current returns the most recent submission for a finding, if any.
	Current(ctx context.Context, findingID string) (store.ActionPlan, bool, error)
	Add(ctx context.Context, p store.ActionPlan) error
	Count(ctx context.Context) (int, error)
}

// memoryStore is append-only: resubmissions never discard earlier plans, the
// latest submission per finding is the current one.
type memoryStore struct {
	mu    sync.RWMutex
	plans []store.ActionPlan
}

func NewStore(seed []store.ActionPlan) Store {
	s := &memoryStore{}
	if len(seed) > 0 {
		s.plans = append([]store.ActionPlan(nil), seed...)
	}
	return s
}

func (s *memoryStore) List(_ context.Context) ([]store.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans, nil
}

func (s *memoryStore) ListByFinding(_ context.Context, findingID string) ([]store.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.ActionPlan
	for _, p := range s.plans {
		if p.FindingID == findingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memoryStore) Current(_ context.Context, findingID string) (store.ActionPlan, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.plans) - 1; i >= 0; i-- {
		if s.plans[i].FindingID == findingID {
			return s.plans[i], true, nil
		}
	}
	return store.ActionPlan{}, false, nil
}

func (s *memoryStore) Add(_ context.Context, p store.ActionPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]store.ActionPlan, 0, len(s.plans)+1)
	next = append(next, s.plans...)
	next = append(next, p)
	s.plans = next
	return nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans), nil
}
