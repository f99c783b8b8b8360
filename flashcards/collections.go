package flashcards

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrewpaige1/recallcards-api/models"
)

// CollectionList is the answer of ListCollections
type CollectionList struct {
	Names             []string
	DefaultCollection string
}

// ListCollections returns the collection names of a user in order. An
// unknown user sees only the Default collection; nothing is created.
func (s *Service) ListCollections(ctx context.Context, userKey string) (CollectionList, error) {
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return CollectionList{}, err
	}
	return CollectionList{
		Names:             lib.Collections.Keys(),
		DefaultCollection: lib.DefaultCollection,
	}, nil
}

// CreateCollection adds an empty collection. The first collection of an
// unknown user creates the user's document and becomes the default.
func (s *Service) CreateCollection(ctx context.Context, userKey, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", ErrInvalidArgument)
	}
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return err
	}
	if !lib.Exists {
		return s.create(ctx, userKey, name, models.Cards{})
	}
	if lib.Collections.Has(name) {
		return fmt.Errorf("%w: collection %q", ErrAlreadyExists, name)
	}
	lib.Collections.Set(name, models.Cards{})
	return s.save(ctx, &lib)
}

// DeleteCollection removes a collection and its cards. Deleting the default
// collection points the default back at Default.
func (s *Service) DeleteCollection(ctx context.Context, userKey, name string) error {
	if name == models.DefaultCollection {
		return fmt.Errorf("%w: cannot delete %s collection", ErrForbidden, models.DefaultCollection)
	}
	lib, err := s.loadExisting(ctx, userKey)
	if err != nil {
		return err
	}
	if !lib.Collections.Delete(name) {
		return fmt.Errorf("%w: collection %q", ErrNotFound, name)
	}
	if lib.DefaultCollection == name {
		resetDefault(&lib)
	}
	return s.save(ctx, &lib)
}

// RenameCollection moves the cards of oldName under newName, keeping their
// order, and follows the default pointer.
func (s *Service) RenameCollection(ctx context.Context, userKey, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == models.DefaultCollection {
		return fmt.Errorf("%w: cannot rename %s collection", ErrForbidden, models.DefaultCollection)
	}
	if newName == "" {
		return fmt.Errorf("%w: collection name cannot be empty", ErrInvalidArgument)
	}
	lib, err := s.loadExisting(ctx, userKey)
	if err != nil {
		return err
	}
	cards, ok := lib.collection(oldName)
	if !ok {
		return fmt.Errorf("%w: collection %q", ErrNotFound, oldName)
	}
	if lib.Collections.Has(newName) {
		return fmt.Errorf("%w: collection %q", ErrAlreadyExists, newName)
	}
	lib.Collections.Delete(oldName)
	lib.Collections.Set(newName, cards)
	if lib.DefaultCollection == oldName {
		lib.DefaultCollection = newName
	}
	return s.save(ctx, &lib)
}

// SetDefault makes name the collection used when none is given.
func (s *Service) SetDefault(ctx context.Context, userKey, name string) error {
	lib, err := s.loadExisting(ctx, userKey)
	if err != nil {
		return err
	}
	if !lib.Collections.Has(name) {
		return fmt.Errorf("%w: collection %q", ErrNotFound, name)
	}
	lib.DefaultCollection = name
	return s.save(ctx, &lib)
}

// Stats counts the cards of every collection. An unknown user has no stats.
func (s *Service) Stats(ctx context.Context, userKey string) (models.OrderedMap[int], error) {
	var stats models.OrderedMap[int]
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return stats, err
	}
	if !lib.Exists {
		return stats, nil
	}
	for _, e := range lib.Collections.Entries() {
		stats.Set(e.Key, e.Value.Len())
	}
	return stats, nil
}

// resetDefault points the default at Default, recreating it empty when a
// document seeded with another collection never had one.
func resetDefault(lib *Library) {
	lib.DefaultCollection = models.DefaultCollection
	if !lib.Collections.Has(models.DefaultCollection) {
		lib.Collections.Set(models.DefaultCollection, models.Cards{})
	}
}
