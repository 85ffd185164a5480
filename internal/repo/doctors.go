package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DoctorFilter struct {
	Specialization string
	Status         string
}

func (f DoctorFilter) bson() bson.D {
	filter := bson.D{}
	if f.Specialization != "" {
		filter = append(filter, bson.E{Key: "specialization", Value: f.Specialization})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}
	return filter
}

type DoctorRepo struct {
	collection[Doctor]
}

func NewDoctorRepo(db *mongo.Database) *DoctorRepo {
	return &DoctorRepo{collection[Doctor]{coll: db.Collection(CollectionDoctors)}}
}

func (r *DoctorRepo) Create(ctx context.Context, d *Doctor) error {
	now := time.Now().UTC()
	d.ID = bson.NewObjectID()
	d.CreatedAt, d.UpdatedAt = now, now
	return r.insert(ctx, d)
}

func (r *DoctorRepo) Get(ctx context.Context, id string) (*Doctor, error) {
	return r.findByID(ctx, id)
}

func (r *DoctorRepo) List(ctx context.Context, f DoctorFilter) ([]Doctor, error) {
	return r.find(ctx, f.bson(), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *DoctorRepo) Update(ctx context.Context, d *Doctor) error {
	d.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, d.ID, d)
}

func (r *DoctorRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
