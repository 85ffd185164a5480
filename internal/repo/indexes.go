package repo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func ascending(field string) bson.D {
	return bson.D{{Key: field, Value: 1}}
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: ascending(field), Options: options.Index().SetUnique(true)}
}

func plain(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: ascending(field)}
}

// Indexes lists the indexes each collection needs. Unique user indexes back
// the username, email and phone conflict checks.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUsers:           {unique("username"), unique("email"), unique("phone"), plain("role")},
		CollectionDoctors:         {plain("specialization"), plain("status")},
		CollectionAppointments:    {plain("date"), plain("doctorId"), plain("userId"), plain("status")},
		CollectionBookingMessages: {plain("userId")},
		CollectionTestRecords:     {plain("userId"), plain("date")},
		CollectionTreatments:      {plain("userId"), plain("beginDate")},
		CollectionPayments:        {plain("userId"), plain("status")},
	}
}

// EnsureIndexes creates missing indexes. Existing identical indexes are a
// no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range Indexes() {
		created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
		slog.Debug("ensured indexes", "collection", name, "indexes", created)
	}
	return nil
}
