package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/andrewpaige1/recallcards-api/models"
)

// MemoryStore keeps documents in process memory. It backs memory:// database
// URLs and the tests.
type MemoryStore struct {
	mu     sync.Mutex
	order  []string
	docs   map[string]models.UserDocument
	writes int
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]models.UserDocument), now: time.Now}
}

// Put stores doc as is, bypassing write accounting. It is meant for seeding
// legacy shaped documents.
func (s *MemoryStore) Put(doc models.UserDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.UserKey]; !ok {
		s.order = append(s.order, doc.UserKey)
	}
	s.docs[doc.UserKey] = copyDocument(doc)
}

// Writes reports how many Insert and Upsert calls succeeded.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemoryStore) FindOne(_ context.Context, userKey string) (models.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[userKey]
	if !ok {
		return models.UserDocument{}, ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]models.UserDocument, 0, len(s.order))
	for _, key := range s.order {
		docs = append(docs, copyDocument(s.docs[key]))
	}
	return docs, nil
}

func (s *MemoryStore) Insert(_ context.Context, doc models.UserDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.UserKey]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, doc.UserKey)
	}
	now := s.now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	s.order = append(s.order, doc.UserKey)
	s.docs[doc.UserKey] = copyDocument(doc)
	s.writes++
	return nil
}

func (s *MemoryStore) Upsert(_ context.Context, userKey string, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	doc, ok := s.docs[userKey]
	if !ok {
		doc = models.UserDocument{UserKey: userKey, CreatedAt: now}
		s.order = append(s.order, userKey)
	}
	if u.Collections != nil {
		doc.Collections = u.Collections
	}
	if u.DefaultCollection != nil {
		doc.DefaultCollection = u.DefaultCollection
	}
	if u.UnsetCards {
		doc.Cards = nil
	}
	doc.UpdatedAt = now
	s.docs[userKey] = copyDocument(doc)
	s.writes++
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// copyDocument detaches doc from any caller owned maps.
func copyDocument(doc models.UserDocument) models.UserDocument {
	out := doc
	if doc.Cards != nil {
		cards := doc.Cards.Clone()
		out.Cards = &cards
	}
	if doc.Collections != nil {
		var collections models.Collections
		for _, e := range doc.Collections.Entries() {
			collections.Set(e.Key, e.Value.Clone())
		}
		out.Collections = &collections
	}
	if doc.DefaultCollection != nil {
		name := *doc.DefaultCollection
		out.DefaultCollection = &name
	}
	return out
}
