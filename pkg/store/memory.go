package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps documents in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d.clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, doc *Document) error {
	if err := checkID(doc.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.clone())
	}
	s.mu.RUnlock()
	sortByUpdated(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func sortByUpdated(docs []*Document) {
	slices.SortFunc(docs, func(a, b *Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

var _ Store = (*MemoryStore)(nil)
