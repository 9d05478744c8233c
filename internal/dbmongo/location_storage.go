package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const locationCollection = "bus_locations"

// BusLocation is an immutable timestamped telemetry sample. TripID is nil
// when the sample was recorded outside any active trip.
type BusLocation struct {
	ID         string    `bson:"_id"`
	BusID      string    `bson:"bus_id"`
	TenantID   string    `bson:"tenant_id"`
	TripID     *string   `bson:"trip_id,omitempty"`
	Latitude   float64   `bson:"lat"`
	Longitude  float64   `bson:"lng"`
	Speed      *float64  `bson:"speed,omitempty"`
	Heading    *float64  `bson:"heading,omitempty"`
	Accuracy   *float64  `bson:"accuracy,omitempty"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// LocationStorage persists telemetry samples in MongoDB. Samples are
// append-only; the hot query is "latest sample for bus X".
type LocationStorage struct {
	collection *mongo.Collection
}

func NewLocationStorage(mongoClient *MongoClient) *LocationStorage {
	return &LocationStorage{
		collection: mongoClient.Database.Collection(locationCollection),
	}
}

// EnsureIndexes creates the bus_id + recorded_at index backing Latest.
func (ls *LocationStorage) EnsureIndexes(ctx context.Context) error {
	_, err := ls.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "bus_id", Value: 1},
			{Key: "recorded_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create location index: %w", err)
	}
	return nil
}

// Insert stores one sample.
func (ls *LocationStorage) Insert(ctx context.Context, sample *BusLocation) error {
	if _, err := ls.collection.InsertOne(ctx, sample); err != nil {
		return fmt.Errorf("failed to insert location sample: %w", err)
	}
	return nil
}

// Latest returns the most recent sample for the bus, or nil when none exists.
func (ls *LocationStorage) Latest(ctx context.Context, busID string) (*BusLocation, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}})

	var sample BusLocation
	err := ls.collection.FindOne(ctx, bson.M{"bus_id": busID}, opts).Decode(&sample)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest location: %w", err)
	}
	return &sample, nil
}

// History returns samples for the bus recorded after since, oldest first.
func (ls *LocationStorage) History(ctx context.Context, busID string, since time.Time, limit int64) ([]*BusLocation, error) {
	filter := bson.M{
		"bus_id":      busID,
		"recorded_at": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := ls.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query location history: %w", err)
	}
	defer cursor.Close(ctx)

	var samples []*BusLocation
	if err := cursor.All(ctx, &samples); err != nil {
		return nil, fmt.Errorf("failed to decode location history: %w", err)
	}
	return samples, nil
}
