package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"idsforge/internal/ids/model"
	"idsforge/pkg/platform/sentinel"
)

// InMemoryStore keeps documents in a map for tests and single-node dev runs.
// Roots are cloned on the way in and out so callers holding a snapshot never
// observe later edits.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewInMemoryStore constructs an empty in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[string]*Document)}
}

func (s *InMemoryStore) Create(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return fmt.Errorf("document %s: %w", doc.ID, sentinel.ErrConflict)
	}
	s.docs[doc.ID] = &Document{
		ID:        doc.ID,
		Root:      doc.Root.Clone(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	return snapshot(doc), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, snapshot(doc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Replace(_ context.Context, id string, root *model.IDSRoot, now time.Time) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	doc.Root = root.Clone()
	doc.UpdatedAt = now
	return snapshot(doc), nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("document %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.docs, id)
	return nil
}

func snapshot(doc *Document) *Document {
	return &Document{
		ID:        doc.ID,
		Root:      doc.Root.Clone(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
