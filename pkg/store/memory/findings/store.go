package findings

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/audit-atlas/pkg/models/store"
)

var ErrNotFound = fmt.Errorf("finding not found")

type Store interface {
	List(ctx context.Context) ([]store.Finding, error)
	Get(ctx context.Context, id string) (store.Finding, error)
	Add(ctx context.Context, f store.Finding) error
	Update(ctx context.Context, id string, apply func(store.Finding) store.Finding) (store.Finding, error)
	Count(ctx context.Context) (int, error)
}

// memoryStore keeps the collection as an immutable slice behind a mutex.
// Every mutation builds a fresh slice and swaps the reference, so a reader
// holding a snapshot never observes a half-applied record.
type memoryStore struct {
	mu       sync.RWMutex
	findings []store.Finding
}

func NewStore(seed []store.Finding) Store {
	s := &memoryStore{}
	if len(seed) > 0 {
		s.findings = append([]store.Finding(nil), seed...)
	}
	return s
}

func (s *memoryStore) List(_ context.Context) ([]store.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findings, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (store.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.findings {
		if f.ID == id {
			return f, nil
		}
	}
	return store.Finding{}, ErrNotFound
}

func (s *memoryStore) Add(_ context.Context, f store.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]store.Finding, 0, len(s.findings)+1)
	next = append(next, s.findings...)
	next = append(next, f)
	s.findings = next
	return nil
}

func (s *memoryStore) Update(
	_ context.Context,
	id string,
	apply func(store.Finding) store.Finding,
) (store.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, f := range s.findings {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.Finding{}, ErrNotFound
	}

	next := make([]store.Finding, len(s.findings))
	copy(next, s.findings)
	next[idx] = apply(next[idx])
	s.findings = next
	return next[idx], nil
}

func (s *memoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.findings), nil
}
