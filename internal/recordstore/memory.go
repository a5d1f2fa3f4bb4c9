package recordstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"invest-portal/internal/common/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a process-local Store used by tests and tooling.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]Record
	order  []string
	unique []string
}

// NewMemoryStore returns an empty store; unique names fields that must not repeat.
func NewMemoryStore(unique ...string) *MemoryStore {
	return &MemoryStore{docs: map[string]Record{}, unique: unique}
}

func (s *MemoryStore) Create(ctx context.Context, doc Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := doc.Clone()
	if rec == nil {
		rec = Record{}
	}
	if _, ok := rec["_id"]; !ok {
		rec["_id"] = primitive.NewObjectID()
	}
	ts := now()
	rec["createdAt"] = ts
	rec["updatedAt"] = ts

	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.ID()
	if _, exists := s.docs[id]; exists {
		return nil, fmt.Errorf("%w: _id %s", apperrors.ErrDuplicate, id)
	}
	if err := s.checkUnique(id, rec); err != nil {
		return nil, err
	}
	s.docs[id] = rec
	s.order = append(s.order, id)
	return rec.Clone(), nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, set Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := current.Clone()
	for k, v := range set.Clone() {
		if k == "_id" || k == "createdAt" {
			continue
		}
		next[k] = v
	}
	next["updatedAt"] = now()

	if err := s.checkUnique(id, next); err != nil {
		return nil, err
	}
	s.docs[id] = next
	return next.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false, nil
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) Each(ctx context.Context, fn func(Record) error) error {
	s.mu.RLock()
	ids := append([]string(nil), s.order...)
	s.mu.RUnlock()

	for _, id := range ids {
		rec, err := s.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// IDs returns the stored ids in sorted order.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *MemoryStore) checkUnique(id string, rec Record) error {
	for _, field := range s.unique {
		v, ok := rec[field]
		if !ok || v == nil || v == "" {
			continue
		}
		for otherID, other := range s.docs {
			if otherID != id && other[field] == v {
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, field)
			}
		}
	}
	return nil
}
