package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FlashcardDocument is the SQL row backing a UserDocument.
// The JSON columns use the plain json type so key order is kept as written.
type FlashcardDocument struct {
	gorm.Model
	UserEmail         string         `gorm:"not null;size:320;uniqueIndex"`
	Cards             datatypes.JSON `gorm:"type:json"`
	Collections       datatypes.JSON `gorm:"type:json"`
	DefaultCollection *string        `gorm:"size:200"`
}

// ToUserDocument decodes the JSON columns of the row.
func (d *FlashcardDocument) ToUserDocument() (UserDocument, error) {
	doc := UserDocument{
		UserKey:           d.UserEmail,
		DefaultCollection: d.DefaultCollection,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if present(d.Cards) {
		var cards Cards
		if err := json.Unmarshal(d.Cards, &cards); err != nil {
			return UserDocument{}, fmt.Errorf("decode cards of %s: %w", d.UserEmail, err)
		}
		doc.Cards = &cards
	}
	if present(d.Collections) {
		var collections Collections
		if err := json.Unmarshal(d.Collections, &collections); err != nil {
			return UserDocument{}, fmt.Errorf("decode collections of %s: %w", d.UserEmail, err)
		}
		doc.Collections = &collections
	}
	return doc, nil
}

// EncodeJSON renders v for a JSON column. A nil pointer yields SQL NULL.
func EncodeJSON[V any](v *OrderedMap[V]) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(*v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// datatypes.JSON scans SQL NULL as the literal null.
func present(j datatypes.JSON) bool {
	trimmed := bytes.TrimSpace(j)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
