package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PaymentRepo struct {
	collection[Payment]
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{collection[Payment]{coll: db.Collection(CollectionPayments)}}
}

func (r *PaymentRepo) Create(ctx context.Context, p *Payment) error {
	now := time.Now().UTC()
	p.ID = bson.NewObjectID()
	p.CreatedAt, p.UpdatedAt = now, now
	return r.insert(ctx, p)
}

func (r *PaymentRepo) Get(ctx context.Context, id string) (*Payment, error) {
	return r.findByID(ctx, id)
}

func (r *PaymentRepo) List(ctx context.Context) ([]Payment, error) {
	return r.find(ctx, bson.D{}, newestFirst())
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	oid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "userId", Value: oid}}, newestFirst())
}

func (r *PaymentRepo) Update(ctx context.Context, p *Payment) error {
	p.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, p.ID, p)
}

// Transition sets status to "to" only while the payment is in "from".
// ErrNotFound is returned when no payment with id is in "from".
func (r *PaymentRepo) Transition(ctx context.Context, id, from, to string) (*Payment, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: "_id", Value: oid}, {Key: "status", Value: from}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: to},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out Payment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, translateWriteError("update payments", err)
	}
	return &out, nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
