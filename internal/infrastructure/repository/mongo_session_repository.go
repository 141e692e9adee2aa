package repository

import (
	"context"
	"fmt"
	"time"

	"mate-storefront-layer/internal/domain"
	"mate-storefront-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Device sessions outlive the access token; the refresh token's four day
// horizon bounds how long a snapshot stays useful.
const sessionTTL = 4 * 24 * time.Hour

// MongoSessionRepository implements SessionRepository using MongoDB. One
// document per device holds the token cookie snapshot.
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository and
// ensures the expiry index exists.
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	r := &MongoSessionRepository{
		collection: db.Collection("device_sessions"),
	}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), indexModel)

	return r
}

// Get retrieves a device session, or nil when none is stored.
func (r *MongoSessionRepository) Get(ctx context.Context, deviceID string) (*domain.DeviceSession, error) {
	var session domain.DeviceSession
	filter := bson.M{"_id": deviceID}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device session: %w", err)
	}

	return &session, nil
}

// Save upserts a device session and refreshes its expiry.
func (r *MongoSessionRepository) Save(ctx context.Context, session *domain.DeviceSession) error {
	session.UpdatedAt = time.Now()
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = time.Now().Add(sessionTTL)
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": session.DeviceID}
	update := bson.M{"$set": session}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save device session: %w", err)
	}
	return nil
}

// Delete removes a device session. Deleting a missing session is not an
// error.
func (r *MongoSessionRepository) Delete(ctx context.Context, deviceID string) error {
	filter := bson.M{"_id": deviceID}
	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete device session: %w", err)
	}
	return nil
}
