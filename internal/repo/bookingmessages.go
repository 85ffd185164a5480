package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type BookingMessageRepo struct {
	collection[BookingMessage]
}

func NewBookingMessageRepo(db *mongo.Database) *BookingMessageRepo {
	return &BookingMessageRepo{collection[BookingMessage]{coll: db.Collection(CollectionBookingMessages)}}
}

func (r *BookingMessageRepo) Create(ctx context.Context, m *BookingMessage) error {
	m.ID = bson.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	return r.insert(ctx, m)
}

func (r *BookingMessageRepo) Get(ctx context.Context, id string) (*BookingMessage, error) {
	return r.findByID(ctx, id)
}

func (r *BookingMessageRepo) ListByUser(ctx context.Context, userID string) ([]BookingMessage, error) {
	oid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "userId", Value: oid}}, newestFirst())
}

func (r *BookingMessageRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
