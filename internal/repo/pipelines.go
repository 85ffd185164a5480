package repo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// DateCount is one group of a peak-dates aggregation. ID is a "YYYY-MM-DD"
// string for formatted groups and the stored date for raw groups.
type DateCount struct {
	ID    any `bson:"_id" json:"_id"`
	Count int `bson:"count" json:"count"`
}

// Label renders the group key as a calendar day when it is a date.
func (d DateCount) Label() string {
	switch v := d.ID.(type) {
	case string:
		return v
	case bson.DateTime:
		return v.Time().UTC().Format(time.DateOnly)
	case time.Time:
		return v.UTC().Format(time.DateOnly)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

type SpecializationCount struct {
	Specialization string `bson:"_id" json:"_id"`
	Count          int    `bson:"count" json:"count"`
}

var countDesc = bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}}

func countStage(id any) bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: id},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
}

// PeakDatesPipeline groups documents by the calendar day of dateField and
// keeps the top limit days.
func PeakDatesPipeline(dateField string, limit int) mongo.Pipeline {
	day := bson.D{{Key: "$dateToString", Value: bson.D{
		{Key: "format", Value: "%Y-%m-%d"},
		{Key: "date", Value: "$" + dateField},
	}}}
	return mongo.Pipeline{
		countStage(day),
		countDesc,
		{{Key: "$limit", Value: limit}},
	}
}

// PeakAppointmentDatesPipeline groups on the stored date value with no limit.
func PeakAppointmentDatesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		countStage("$date"),
		countDesc,
	}
}

// SpecializationPipeline counts doctors per specialization. Output order is
// whatever $group yields.
func SpecializationPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "specialization", Value: bson.D{{Key: "$ne", Value: nil}}}}}},
		countStage("$specialization"),
	}
}

// DayBounds returns the UTC [start, end) range of the calendar day of t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// RemoveAtPipeline is an update pipeline that drops the element at index from
// the array in field, leaving the rest of the document untouched.
func RemoveAtPipeline(field string, index int, now time.Time) mongo.Pipeline {
	ref := "$" + field
	parts := bson.A{}
	if index > 0 {
		parts = append(parts, bson.D{{Key: "$slice", Value: bson.A{ref, index}}})
	}
	rest := bson.D{{Key: "$max", Value: bson.A{1, bson.D{{Key: "$size", Value: ref}}}}}
	parts = append(parts, bson.D{{Key: "$slice", Value: bson.A{ref, index + 1, rest}}})

	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: field, Value: bson.D{{Key: "$concatArrays", Value: parts}}},
			{Key: "updatedAt", Value: now},
		}}},
	}
}
