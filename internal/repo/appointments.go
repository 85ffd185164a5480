package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type AppointmentRepo struct {
	collection[Appointment]
}

func NewAppointmentRepo(db *mongo.Database) *AppointmentRepo {
	return &AppointmentRepo{collection[Appointment]{coll: db.Collection(CollectionAppointments)}}
}

func byDate() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: 1}})
}

func (r *AppointmentRepo) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.ID = bson.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now
	return r.insert(ctx, a)
}

func (r *AppointmentRepo) Get(ctx context.Context, id string) (*Appointment, error) {
	return r.findByID(ctx, id)
}

// List returns every appointment, optionally restricted to one status.
func (r *AppointmentRepo) List(ctx context.Context, status string) ([]Appointment, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	return r.find(ctx, filter, byDate())
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	oid, err := ParseID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "userId", Value: oid}}, byDate())
}

func (r *AppointmentRepo) Update(ctx context.Context, a *Appointment) error {
	a.UpdatedAt = time.Now().UTC()
	return r.replace(ctx, a.ID, a)
}

// SetStatus moves the appointment to status unless it currently has one of
// the blocked statuses. ErrNotFound covers both a missing and a blocked
// document; callers load the appointment first to tell them apart.
func (r *AppointmentRepo) SetStatus(ctx context.Context, id, status, reason string, blocked ...string) (*Appointment, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: "_id", Value: oid}}
	if len(blocked) > 0 {
		filter = append(filter, bson.E{Key: "status", Value: bson.D{{Key: "$nin", Value: blocked}}})
	}
	set := bson.D{
		{Key: "status", Value: status},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	if reason != "" {
		set = append(set, bson.E{Key: "cancelReason", Value: reason})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out Appointment
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, translateWriteError("update appointments", err)
	}
	return &out, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
