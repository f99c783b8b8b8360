package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andrewpaige1/recallcards-api/models"
)

// MongoCollection is the collection holding the user documents.
const MongoCollection = "flashcards"

// MongoStore keeps documents in a MongoDB collection, one per user_email.
// Embedded documents are read raw and written as bson.D so term order survives.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to uri and ensures the unique user_email index.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	coll := client.Database(database).Collection(MongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

func (s *MongoStore) FindOne(ctx context.Context, userKey string) (models.UserDocument, error) {
	raw, err := s.coll.FindOne(ctx, bson.D{{Key: "user_email", Value: userKey}}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserDocument{}, ErrNotFound
	}
	if err != nil {
		return models.UserDocument{}, err
	}
	return documentFromRaw(raw)
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.UserDocument, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.UserDocument
	for cur.Next(ctx) {
		doc, err := documentFromRaw(cur.Current)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, cur.Err()
}

func (s *MongoStore) Insert(ctx context.Context, doc models.UserDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, documentToD(doc))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, doc.UserKey)
	}
	return err
}

func (s *MongoStore) Upsert(ctx context.Context, userKey string, u Update) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "user_email", Value: userKey}},
		updateToD(u, s.now().UTC()),
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func updateToD(u Update, now time.Time) bson.D {
	set := bson.D{{Key: "updated_at", Value: now}}
	if u.Collections != nil {
		set = append(set, bson.E{Key: "collections", Value: collectionsToD(*u.Collections)})
	}
	if u.DefaultCollection != nil {
		set = append(set, bson.E{Key: "default_collection", Value: *u.DefaultCollection})
	}
	update := bson.D{{Key: "$set", Value: set}}
	if u.UnsetCards {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "cards", Value: ""}}})
	}
	return update
}

func documentToD(doc models.UserDocument) bson.D {
	d := bson.D{{Key: "user_email", Value: doc.UserKey}}
	if doc.Cards != nil {
		d = append(d, bson.E{Key: "cards", Value: cardsToD(*doc.Cards)})
	}
	if doc.Collections != nil {
		d = append(d, bson.E{Key: "collections", Value: collectionsToD(*doc.Collections)})
	}
	if doc.DefaultCollection != nil {
		d = append(d, bson.E{Key: "default_collection", Value: *doc.DefaultCollection})
	}
	d = append(d, bson.E{Key: "created_at", Value: doc.CreatedAt})
	if !doc.UpdatedAt.IsZero() {
		d = append(d, bson.E{Key: "updated_at", Value: doc.UpdatedAt})
	}
	return d
}

func cardsToD(cards models.Cards) bson.D {
	d := make(bson.D, 0, cards.Len())
	for _, e := range cards.Entries() {
		d = append(d, bson.E{Key: e.Key, Value: e.Value})
	}
	return d
}

func collectionsToD(collections models.Collections) bson.D {
	d := make(bson.D, 0, collections.Len())
	for _, e := range collections.Entries() {
		d = append(d, bson.E{Key: e.Key, Value: cardsToD(e.Value)})
	}
	return d
}

func documentFromRaw(raw bson.Raw) (models.UserDocument, error) {
	var doc models.UserDocument
	key, ok := raw.Lookup("user_email").StringValueOK()
	if !ok {
		return doc, errors.New("mongo document without user_email")
	}
	doc.UserKey = key

	if v, ok := lookupDocument(raw, "cards"); ok {
		cards, err := cardsFromRaw(v)
		if err != nil {
			return doc, fmt.Errorf("cards of %s: %w", key, err)
		}
		doc.Cards = &cards
	}
	if v, ok := lookupDocument(raw, "collections"); ok {
		elems, err := v.Elements()
		if err != nil {
			return doc, fmt.Errorf("collections of %s: %w", key, err)
		}
		var collections models.Collections
		for _, elem := range elems {
			inner, ok := elem.Value().DocumentOK()
			if !ok {
				// a collection that is not a document holds no cards
				collections.Set(elem.Key(), models.Cards{})
				continue
			}
			cards, err := cardsFromRaw(inner)
			if err != nil {
				return doc, fmt.Errorf("collection %s of %s: %w", elem.Key(), key, err)
			}
			collections.Set(elem.Key(), cards)
		}
		doc.Collections = &collections
	}
	if name, ok := raw.Lookup("default_collection").StringValueOK(); ok {
		doc.DefaultCollection = &name
	}
	if t, ok := raw.Lookup("created_at").TimeOK(); ok {
		doc.CreatedAt = t
	}
	if t, ok := raw.Lookup("updated_at").TimeOK(); ok {
		doc.UpdatedAt = t
	}
	return doc, nil
}

func lookupDocument(raw bson.Raw, key string) (bson.Raw, bool) {
	v, err := raw.LookupErr(key)
	if err != nil {
		return nil, false
	}
	return v.DocumentOK()
}

func cardsFromRaw(raw bson.Raw) (models.Cards, error) {
	var cards models.Cards
	elems, err := raw.Elements()
	if err != nil {
		return cards, err
	}
	for _, elem := range elems {
		answer, ok := elem.Value().StringValueOK()
		if !ok {
			answer = elem.Value().String()
		}
		cards.Set(elem.Key(), answer)
	}
	return cards, nil
}
