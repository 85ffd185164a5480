package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepo struct {
	collection[User]
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{collection[User]{coll: db.Collection(CollectionUsers)}}
}

func (r *UserRepo) Create(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Notifications == nil {
		u.Notifications = []string{}
	}
	return r.insert(ctx, u)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.findByID(ctx, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]User, error) {
	return r.find(ctx, bson.D{{Key: "role", Value: role}}, newestFirst())
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ListWithFeedback returns users that submitted feedback, latest first.
func (r *UserRepo) ListWithFeedback(ctx context.Context) ([]User, error) {
	filter := bson.D{{Key: "feedback", Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "feedbackAt", Value: -1}}))
}

// Update replaces the stored user with u.
func (r *UserRepo) Update(ctx context.Context, u *User) error {
	u.UpdatedAt = time.Now().UTC()
	if u.Notifications == nil {
		u.Notifications = []string{}
	}
	return r.replace(ctx, u.ID, u)
}

// PushNotification appends text to the user's notification list.
func (r *UserRepo) PushNotification(ctx context.Context, id, text string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	_, err = r.updateOne(ctx, oid, bson.D{
		{Key: "$push", Value: bson.D{{Key: "notifications", Value: text}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
	return err
}

// RemoveNotification drops the notification at index in a single update and
// returns the remaining list. ErrNotFound covers a missing user and an index
// that no longer exists.
func (r *UserRepo) RemoveNotification(ctx context.Context, id string, index int) ([]string, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, ErrNotFound
	}
	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: fmt.Sprintf("notifications.%d", index), Value: bson.D{{Key: "$exists", Value: true}}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "notifications", Value: 1}})

	var out User
	err = r.coll.FindOneAndUpdate(ctx, filter, RemoveAtPipeline("notifications", index, time.Now().UTC()), opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("remove notification: %w", err)
	}
	if out.Notifications == nil {
		return []string{}, nil
	}
	return out.Notifications, nil
}

func (r *UserRepo) ClearNotifications(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	_, err = r.updateOne(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "notifications", Value: bson.A{}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}},
	})
	return err
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
