package models

import "time"

// DefaultCollection is the collection every user starts with. It can never
// be deleted or renamed.
const DefaultCollection = "Default"

// Cards maps a term to its answer, in the order the terms were added
type Cards = OrderedMap[string]

// Collections maps a collection name to its cards
type Collections = OrderedMap[Cards]

// Card is a single term/answer pair
type Card struct {
	Term   string
	Answer string
}

// UserDocument is the stored record of one user, in whichever shape it was
// last written. Cards is only set for records written before collections
// existed.
type UserDocument struct {
	UserKey           string
	Cards             *Cards
	Collections       *Collections
	DefaultCollection *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCollections returns collections holding a single empty collection.
func NewCollections(name string) Collections {
	var c Collections
	c.Set(name, Cards{})
	return c
}
