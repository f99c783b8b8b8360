// Package store persists one flashcard document per user key.
package store

import (
	"context"
	"errors"

	"github.com/andrewpaige1/recallcards-api/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)

// Update lists the fields an Upsert writes. Nil fields are left untouched.
// UnsetCards removes the legacy flat cards field.
type Update struct {
	Collections       *models.Collections
	DefaultCollection *string
	UnsetCards        bool
}

// Store is the document store keyed by user key. Implementations must be
// safe for concurrent use.
type Store interface {
	FindOne(ctx context.Context, userKey string) (models.UserDocument, error)
	FindAll(ctx context.Context) ([]models.UserDocument, error)
	Insert(ctx context.Context, doc models.UserDocument) error
	// Upsert applies u to the document of userKey, creating it when absent,
	// and stamps updated_at.
	Upsert(ctx context.Context, userKey string, u Update) error
	Ping(ctx context.Context) error
	Close() error
}
