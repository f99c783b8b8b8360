package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/recallcards-api/models"
)

// GormStore keeps documents in the flashcard_documents table.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore migrates the schema and returns a store over db. The db should
// be opened with TranslateError so unique violations surface as ErrDuplicate.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.FlashcardDocument{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db, now: time.Now}, nil
}

func (s *GormStore) FindOne(ctx context.Context, userKey string) (models.UserDocument, error) {
	var row models.FlashcardDocument
	err := s.db.WithContext(ctx).Where("user_email = ?", userKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserDocument{}, ErrNotFound
	}
	if err != nil {
		return models.UserDocument{}, err
	}
	return row.ToUserDocument()
}

func (s *GormStore) FindAll(ctx context.Context) ([]models.UserDocument, error) {
	var rows []models.FlashcardDocument
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]models.UserDocument, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].ToUserDocument()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *GormStore) Insert(ctx context.Context, doc models.UserDocument) error {
	row := models.FlashcardDocument{
		UserEmail:         doc.UserKey,
		DefaultCollection: doc.DefaultCollection,
	}
	var err error
	if row.Cards, err = models.EncodeJSON(doc.Cards); err != nil {
		return err
	}
	if row.Collections, err = models.EncodeJSON(doc.Collections); err != nil {
		return err
	}
	if !doc.CreatedAt.IsZero() {
		row.CreatedAt = doc.CreatedAt
	}

	err = s.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ErrDuplicate, doc.UserKey)
	}
	return err
}

func (s *GormStore) Upsert(ctx context.Context, userKey string, u Update) error {
	now := s.now().UTC()
	row := models.FlashcardDocument{
		UserEmail:         userKey,
		DefaultCollection: u.DefaultCollection,
	}
	row.CreatedAt = now
	row.UpdatedAt = now

	columns := []string{"updated_at"}
	if u.Collections != nil {
		encoded, err := models.EncodeJSON(u.Collections)
		if err != nil {
			return err
		}
		row.Collections = encoded
		columns = append(columns, "collections")
	}
	if u.DefaultCollection != nil {
		columns = append(columns, "default_collection")
	}
	if u.UnsetCards {
		columns = append(columns, "cards")
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_email"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&row).Error
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
