package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// collection holds the typed helpers every repository shares.
type collection[T any] struct {
	coll *mongo.Collection
}

func (c collection[T]) findOne(ctx context.Context, filter any) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	return &out, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (c collection[T]) find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return translateWriteError("insert "+c.coll.Name(), err)
}

func (c collection[T]) replace(ctx context.Context, id bson.ObjectID, doc *T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return translateWriteError("replace "+c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// updateOne applies update to the document with id and returns the result.
func (c collection[T]) updateOne(ctx context.Context, id bson.ObjectID, update any) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err := c.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, translateWriteError("update "+c.coll.Name(), err)
	}
	return &out, nil
}

func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
