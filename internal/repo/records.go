package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ---------------------------------------------------------------------------
// Test records
// ---------------------------------------------------------------------------

type TestRecordRepo struct {
	collection[TestRecord]
}

func NewTestRecordRepo(db *mongo.Database) *TestRecordRepo {
	return &TestRecordRepo{collection[TestRecord]{coll: db.Collection(CollectionTestRecords)}}
}

func (r *TestRecordRepo) Create(ctx context.Context, t *TestRecord) error {
	now := time.Now().UTC()
	t.ID = bson.NewObjectID()
	t.CreatedAt, t.UpdatedAt = now, now
	return r.insert(ctx, t)
}

func (r *TestRecordRepo) Get(ctx context.Context, id string) (*TestRecord, error) {
	return r.findByID(ctx, id)
}

func (r *TestRecordRepo) List(ctx context.Context) ([]TestRecord, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *TestRecordRepo) ListByUser(ctx context.Context, userID string) ([]TestRecord, error) {
	oid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "userId", Value: oid}}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *TestRecordRepo) Update(ctx context.Context, t *TestRecord) error {
	t.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, t.ID, t)
}

func (r *TestRecordRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

// ---------------------------------------------------------------------------
// Treatment records
// ---------------------------------------------------------------------------

type TreatmentRepo struct {
	collection[TreatmentRecord]
}

func NewTreatmentRepo(db *mongo.Database) *TreatmentRepo {
	return &TreatmentRepo{collection[TreatmentRecord]{coll: db.Collection(CollectionTreatments)}}
}

func (r *TreatmentRepo) Create(ctx context.Context, t *TreatmentRecord) error {
	now := time.Now().UTC()
	t.ID = bson.NewObjectID()
	t.CreatedAt, t.UpdatedAt = now, now
	return r.insert(ctx, t)
}

func (r *TreatmentRepo) Get(ctx context.Context, id string) (*TreatmentRecord, error) {
	return r.findByID(ctx, id)
}

func (r *TreatmentRepo) List(ctx context.Context) ([]TreatmentRecord, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "beginDate", Value: -1}}))
}

func (r *TreatmentRepo) ListByUser(ctx context.Context, userID string) ([]TreatmentRecord, error) {
	oid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "userId", Value: oid}}, options.Find().SetSort(bson.D{{Key: "beginDate", Value: -1}}))
}

func (r *TreatmentRepo) Update(ctx context.Context, t *TreatmentRecord) error {
	t.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, t.ID, t)
}

func (r *TreatmentRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
