// Package memory keeps users and campus records in process. Records are
// copied through BSON on the way in and out, so callers observe the same
// shapes and time precision as with MongoDB.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stored struct {
	doc bson.Raw
	key int64
}

// EntityStore keeps one collection in insertion order. keyField names the
// numeric business key; it must be unique when present.
type EntityStore[T entity.Entity] struct {
	mu        sync.RWMutex
	keyField  string
	newRecord func() T
	order     []primitive.ObjectID
	records   map[primitive.ObjectID]stored
}

func NewEntityStore[T entity.Entity](keyField string, newRecord func() T) *EntityStore[T] {
	return &EntityStore[T]{
		keyField:  keyField,
		newRecord: newRecord,
		records:   make(map[primitive.ObjectID]stored),
	}
}

func (s *EntityStore[T]) encode(rec T) (stored, error) {
	doc, err := bson.Marshal(rec)
	if err != nil {
		return stored{}, fmt.Errorf("%w: encode: %v", domain.ErrStore, err)
	}
	raw := bson.Raw(doc)
	var key int64
	if s.keyField != "" {
		if v, err := raw.LookupErr(s.keyField); err == nil {
			if n, ok := v.Int64OK(); ok {
				key = n
			} else if n, ok := v.Int32OK(); ok {
				key = int64(n)
			}
		}
	}
	return stored{doc: raw, key: key}, nil
}

func (s *EntityStore[T]) decode(st stored) (T, error) {
	rec := s.newRecord()
	if err := bson.Unmarshal(st.doc, rec); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: decode: %v", domain.ErrStore, err)
	}
	return rec, nil
}

func (s *EntityStore[T]) keyTaken(id primitive.ObjectID, key int64) bool {
	if key == 0 {
		return false
	}
	for other, st := range s.records {
		if other != id && st.key == key {
			return true
		}
	}
	return false
}

// lookup resolves a 24-hex ObjectID or a numeric business key.
func (s *EntityStore[T]) lookup(id string) (primitive.ObjectID, bool) {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		_, ok := s.records[oid]
		return oid, ok
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n == 0 {
		return primitive.NilObjectID, false
	}
	for oid, st := range s.records {
		if st.key == n {
			return oid, true
		}
	}
	return primitive.NilObjectID, false
}

func (s *EntityStore[T]) Insert(_ context.Context, rec T) error {
	st, err := s.encode(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetBase().ID
	if _, exists := s.records[id]; exists || s.keyTaken(id, st.key) {
		return domain.ErrConflict
	}
	s.records[id] = st
	s.order = append(s.order, id)
	return nil
}

func (s *EntityStore[T]) FindByID(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	oid, ok := s.lookup(id)
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return s.decode(s.records[oid])
}

func (s *EntityStore[T]) List(_ context.Context, skip, limit int64) ([]T, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	total := int64(len(s.order))
	items := make([]T, 0, limit)
	for i := skip; i < total && int64(len(items)) < limit; i++ {
		rec, err := s.decode(s.records[s.order[i]])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}

func (s *EntityStore[T]) Replace(_ context.Context, rec T) error {
	st, err := s.encode(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetBase().ID
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	if s.keyTaken(id, st.key) {
		return domain.ErrConflict
	}
	s.records[id] = st
	return nil
}

func (s *EntityStore[T]) Delete(_ context.Context, id string) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oid, ok := s.lookup(id)
	if !ok {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	delete(s.records, oid)
	for i, o := range s.order {
		if o == oid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return oid, nil
}

func (s *EntityStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
