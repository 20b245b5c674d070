package ratingRepo

import (
	"context"
	"fmt"
	"time"

	"roadsafe/database"
	"roadsafe/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	coll := database.DB().Collection("starRatings")
	repo := &MongoRatingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "segmentId", Value: 1}}},
		{Keys: bson.D{{Key: "roadId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ReplaceForSegment swaps the segment's rating rows inside one transaction.
// Concurrent refreshes of the same road are last-writer-wins; the rating is a
// derived view, not a source of truth.
func (r *MongoRatingRepo) ReplaceForSegment(ctx context.Context, segmentID string, rating *models.StarRating) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.DeleteMany(sc, bson.M{"segmentId": segmentID}); err != nil {
			return fmt.Errorf("delete stale ratings for segment %s failed: %w", segmentID, err)
		}
		if _, err := r.coll.InsertOne(sc, rating); err != nil {
			return fmt.Errorf("insert rating for segment %s failed: %w", segmentID, err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("rating replace transaction failed: %w", err)
	}
	return nil
}

func (r *MongoRatingRepo) ListByRoad(roadID string) ([]models.StarRating, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"roadId": roadID})
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for road %s: %w", roadID, err)
	}
	defer cursor.Close(ctx)

	var ratings []models.StarRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}

func (r *MongoRatingRepo) ListBySegment(segmentID string) ([]models.StarRating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"segmentId": segmentID})
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for segment %s: %w", segmentID, err)
	}
	defer cursor.Close(ctx)

	var ratings []models.StarRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}
