package flashcards

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/recallcards-api/models"
)

func collectionOrDefault(name string) string {
	if name == "" {
		return models.DefaultCollection
	}
	return name
}

// UpsertCard sets the answer of term in a collection, appending the term when
// it is new. Missing users and collections are created on the way.
func (s *Service) UpsertCard(ctx context.Context, userKey, collection, term, answer string) error {
	if term == "" {
		return fmt.Errorf("%w: term is required", ErrInvalidArgument)
	}
	collection = collectionOrDefault(collection)
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return err
	}
	if !lib.Exists {
		var cards models.Cards
		cards.Set(term, answer)
		return s.create(ctx, userKey, collection, cards)
	}
	cards, _ := lib.collection(collection)
	cards.Set(term, answer)
	lib.Collections.Set(collection, cards)
	return s.save(ctx, &lib)
}

// DeleteCard removes term from a collection.
func (s *Service) DeleteCard(ctx context.Context, userKey, collection, term string) error {
	collection = collectionOrDefault(collection)
	lib, err := s.loadExisting(ctx, userKey)
	if err != nil {
		return err
	}
	cards, ok := lib.collection(collection)
	if !ok {
		return fmt.Errorf("%w: collection %q", ErrNotFound, collection)
	}
	if !cards.Delete(term) {
		return fmt.Errorf("%w: term %q", ErrNotFound, term)
	}
	lib.Collections.Set(collection, cards)
	return s.save(ctx, &lib)
}

// EditCard changes a card. If newTerm already exists its answer is
// overwritten in place, even when oldTerm exists too. Otherwise oldTerm is
// replaced by newTerm, which moves to the end of the collection.
func (s *Service) EditCard(ctx context.Context, userKey, collection, oldTerm, newTerm, newAnswer string) error {
	if newTerm == "" {
		return fmt.Errorf("%w: term is required", ErrInvalidArgument)
	}
	collection = collectionOrDefault(collection)
	lib, err := s.loadExisting(ctx, userKey)
	if err != nil {
		return err
	}
	cards, _ := lib.collection(collection)
	switch {
	case cards.Has(newTerm):
		cards.Set(newTerm, newAnswer)
	case cards.Has(oldTerm):
		cards.Delete(oldTerm)
		cards.Set(newTerm, newAnswer)
	default:
		return fmt.Errorf("%w: term %q", ErrNotFound, oldTerm)
	}
	lib.Collections.Set(collection, cards)
	return s.save(ctx, &lib)
}

// AllCards returns the collections of every user, normalizing each document
// on the way.
func (s *Service) AllCards(ctx context.Context) (models.OrderedMap[models.Collections], error) {
	var all models.OrderedMap[models.Collections]
	if s.store == nil {
		return all, ErrStoreUnavailable
	}
	docs, err := s.store.FindAll(ctx)
	if err != nil {
		return all, fmt.Errorf("find documents: %w", err)
	}
	for _, doc := range docs {
		if doc.UserKey == "" {
			continue
		}
		lib, _, err := s.migrate(ctx, doc)
		if err != nil {
			return all, err
		}
		all.Set(doc.UserKey, lib.Collections)
	}
	return all, nil
}
