// Package flashcards manages the per user flashcard collections.
//
// Every operation re-reads the user's document from the store and normalizes
// it before acting, so documents written before collections existed are
// migrated lazily the first time they are touched. Nothing is cached between
// calls.
package flashcards

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrewpaige1/recallcards-api/models"
	"github.com/andrewpaige1/recallcards-api/store"
)

// Service implements the collection and card operations over a Store.
// A Service with a nil store answers every call with ErrStoreUnavailable.
type Service struct {
	store store.Store
	log   *zap.Logger
}

func NewService(s store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: s, log: log}
}

// Connected reports whether the service has a store to work with.
func (s *Service) Connected() bool {
	return s.store != nil
}

// Library is the normalized view of one user's document. Each call works on
// its own Library and writes it back whole.
type Library struct {
	UserKey           string
	Exists            bool
	Collections       models.Collections
	DefaultCollection string
}

func (l *Library) collection(name string) (models.Cards, bool) {
	return l.Collections.Get(name)
}

// Normalize loads the document of userKey in the collections shape,
// migrating and persisting it first when it is in an older shape. It reports
// whether a write was made. An unknown user yields a virtual library with an
// empty Default collection and no write.
func (s *Service) Normalize(ctx context.Context, userKey string) (Library, bool, error) {
	if s.store == nil {
		return Library{}, false, ErrStoreUnavailable
	}
	doc, err := s.store.FindOne(ctx, userKey)
	if errors.Is(err, store.ErrNotFound) {
		lib, _ := normalize(userKey, nil)
		return lib, false, nil
	}
	if err != nil {
		return Library{}, false, fmt.Errorf("find document of %s: %w", userKey, err)
	}
	return s.migrate(ctx, doc)
}

func (s *Service) migrate(ctx context.Context, doc models.UserDocument) (Library, bool, error) {
	lib, update := normalize(doc.UserKey, &doc)
	if update == nil {
		return lib, false, nil
	}
	if err := s.store.Upsert(ctx, doc.UserKey, *update); err != nil {
		return Library{}, false, fmt.Errorf("migrate document of %s: %w", doc.UserKey, err)
	}
	s.log.Info("Migrated flashcard document",
		zap.String("user", doc.UserKey),
		zap.Bool("legacy_cards", update.UnsetCards),
		zap.Int("collections", lib.Collections.Len()))
	return lib, true, nil
}

// normalize derives the collections view of doc and, when the stored shape
// must change, the update that persists it. doc is nil for an unknown user.
func normalize(userKey string, doc *models.UserDocument) (Library, *store.Update) {
	lib := Library{UserKey: userKey, DefaultCollection: models.DefaultCollection}
	switch {
	case doc == nil:
		lib.Collections = models.NewCollections(models.DefaultCollection)
		return lib, nil

	case doc.Cards != nil && doc.Collections == nil:
		lib.Exists = true
		lib.Collections.Set(models.DefaultCollection, doc.Cards.Clone())
		name := models.DefaultCollection
		return lib, &store.Update{
			Collections:       &lib.Collections,
			DefaultCollection: &name,
			UnsetCards:        true,
		}

	case doc.Collections != nil:
		lib.Exists = true
		lib.Collections = *doc.Collections
		if doc.DefaultCollection != nil && *doc.DefaultCollection != "" {
			lib.DefaultCollection = *doc.DefaultCollection
		}
		return lib, nil

	default:
		lib.Exists = true
		lib.Collections = models.NewCollections(models.DefaultCollection)
		name := models.DefaultCollection
		return lib, &store.Update{
			Collections:       &lib.Collections,
			DefaultCollection: &name,
		}
	}
}

// load is Normalize without the write flag.
func (s *Service) load(ctx context.Context, userKey string) (Library, error) {
	lib, _, err := s.Normalize(ctx, userKey)
	return lib, err
}

// loadExisting is load for operations that need the user to exist.
func (s *Service) loadExisting(ctx context.Context, userKey string) (Library, error) {
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return Library{}, err
	}
	if !lib.Exists {
		return Library{}, fmt.Errorf("%w: user %s", ErrNotFound, userKey)
	}
	return lib, nil
}

// save writes the collections and default pointer of lib back whole.
func (s *Service) save(ctx context.Context, lib *Library) error {
	name := lib.DefaultCollection
	err := s.store.Upsert(ctx, lib.UserKey, store.Update{
		Collections:       &lib.Collections,
		DefaultCollection: &name,
	})
	if err != nil {
		return fmt.Errorf("save document of %s: %w", lib.UserKey, err)
	}
	return nil
}

// create inserts the first document of a user seeded with one collection.
func (s *Service) create(ctx context.Context, userKey, collection string, cards models.Cards) error {
	var collections models.Collections
	collections.Set(collection, cards)
	name := collection
	err := s.store.Insert(ctx, models.UserDocument{
		UserKey:           userKey,
		Collections:       &collections,
		DefaultCollection: &name,
	})
	if err != nil {
		return fmt.Errorf("create document of %s: %w", userKey, err)
	}
	s.log.Info("Created flashcard document",
		zap.String("user", userKey),
		zap.String("collection", collection))
	return nil
}

// Ping checks that the store answers.
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	return s.store.Ping(ctx)
}
