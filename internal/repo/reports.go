package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ReportRepo runs the read-only reporting queries.
type ReportRepo struct {
	db *mongo.Database
}

func NewReportRepo(db *mongo.Database) *ReportRepo {
	return &ReportRepo{db: db}
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s aggregate: %w", coll.Name(), err)
	}
	return out, nil
}

func (r *ReportRepo) PeakTestDates(ctx context.Context, limit int) ([]DateCount, error) {
	return aggregate[DateCount](ctx, r.db.Collection(CollectionTestRecords), PeakDatesPipeline("date", limit))
}

func (r *ReportRepo) PeakTreatmentDates(ctx context.Context, limit int) ([]DateCount, error) {
	return aggregate[DateCount](ctx, r.db.Collection(CollectionTreatments), PeakDatesPipeline("beginDate", limit))
}

func (r *ReportRepo) PeakAppointmentDates(ctx context.Context) ([]DateCount, error) {
	return aggregate[DateCount](ctx, r.db.Collection(CollectionAppointments), PeakAppointmentDatesPipeline())
}

func (r *ReportRepo) SpecializationCounts(ctx context.Context) ([]SpecializationCount, error) {
	return aggregate[SpecializationCount](ctx, r.db.Collection(CollectionDoctors), SpecializationPipeline())
}

// AppointmentTimes returns the time strings of appointments whose date is in
// [start, end).
func (r *ReportRepo) AppointmentTimes(ctx context.Context, start, end time.Time) ([]string, error) {
	filter := bson.D{{Key: "date", Value: bson.D{
		{Key: "$gte", Value: start},
		{Key: "$lt", Value: end},
	}}}
	opts := options.Find().SetProjection(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.db.Collection(CollectionAppointments).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	var rows []struct {
		Time string `bson:"time"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	times := make([]string, 0, len(rows))
	for _, row := range rows {
		times = append(times, row.Time)
	}
	return times, nil
}
