package userdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore is a Store keeping one document per record. Update uses
// optimistic concurrency: every write bumps a revision counter and a
// replace only succeeds if the revision it read is still current.
type MongoStore struct {
	coll *mongo.Collection
}

type mongoRecord struct {
	UserID    string `bson:"user_id"`
	Namespace string `bson:"namespace"`
	Key       string `bson:"key"`
	Value     []byte `bson:"value"`
	Rev       int64  `bson:"rev"`
}

// NewMongoStore creates a Store on top of an established collection.
// Call EnsureMongoIndexes once at startup.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureMongoIndexes creates the unique record index the store relies on.
func EnsureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "namespace", Value: 1},
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

func recordFilter(userID uuid.UUID, namespace, key string) bson.D {
	return bson.D{
		{Key: "user_id", Value: userID.String()},
		{Key: "namespace", Value: namespace},
		{Key: "key", Value: key},
	}
}

func (s *MongoStore) Get(ctx context.Context, userID uuid.UUID, namespace, key string) ([]byte, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, recordFilter(userID, namespace, key)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return rec.Value, nil
}

func (s *MongoStore) Set(ctx context.Context, userID uuid.UUID, namespace, key string, value []byte) error {
	filter := recordFilter(userID, namespace, key)
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "value", Value: value}}},
		{Key: "$inc", Value: bson.D{{Key: "rev", Value: int64(1)}}},
	}

	_, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, userID uuid.UUID, namespace, key string) error {
	if _, err := s.coll.DeleteOne(ctx, recordFilter(userID, namespace, key)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}
	return nil
}

// Update retries the read-transform-replace cycle until the revision it
// read is still current at write time, up to a small retry budget.
func (s *MongoStore) Update(ctx context.Context, userID uuid.UUID, namespace, key string, fn UpdateFunc) error {
	const maxRetries = 4
	filter := recordFilter(userID, namespace, key)

	for range maxRetries {
		var rec mongoRecord
		found := true
		err := s.coll.FindOne(ctx, filter).Decode(&rec)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
			}
			found = false
		}

		var current []byte
		if found {
			current = rec.Value
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		committed, err := s.commitUpdate(ctx, userID, namespace, key, rec.Rev, found, next)
		if err != nil {
			return err
		}
		if committed {
			return nil
		}
	}

	return ErrUpdateConflict
}

// commitUpdate applies the transformed value guarded by the revision read
// earlier. Returns false when another writer got there first.
func (s *MongoStore) commitUpdate(ctx context.Context, userID uuid.UUID, namespace, key string, readRev int64, found bool, next []byte) (bool, error) {
	revFilter := append(recordFilter(userID, namespace, key), bson.E{Key: "rev", Value: readRev})

	switch {
	case next == nil && !found:
		return true, nil

	case next == nil:
		res, err := s.coll.DeleteOne(ctx, revFilter)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
		}
		return res.DeletedCount == 1, nil

	case !found:
		_, err := s.coll.InsertOne(ctx, mongoRecord{
			UserID:    userID.String(),
			Namespace: namespace,
			Key:       key,
			Value:     next,
			Rev:       1,
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return false, nil
			}
			return false, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
		}
		return true, nil

	default:
		res, err := s.coll.ReplaceOne(ctx, revFilter, mongoRecord{
			UserID:    userID.String(),
			Namespace: namespace,
			Key:       key,
			Value:     next,
			Rev:       readRev + 1,
		})
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
		}
		return res.ModifiedCount == 1, nil
	}
}
