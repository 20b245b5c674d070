package feedbackRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roadsafe/database"
	"roadsafe/models"
	"roadsafe/utils"
)

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

// NewMongoFeedbackRepo creates a new instance of FeedbackRepository using MongoDB.
func NewMongoFeedbackRepo() FeedbackRepository {
	repo := &MongoFeedbackRepo{coll: database.DB().Collection("feedbacks")}
	repo.ensureIndexes()
	return repo
}

func (r *MongoFeedbackRepo) ensureIndexes() {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "assignedAnnotatorId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to create feedback indexes: %v", err)
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFeedbackRepo) Create(f *models.Feedback) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *MongoFeedbackRepo) GetByID(id string) (*models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	var f models.Feedback
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback %s: %w", id, err)
	}
	return &f, nil
}

func (r *MongoFeedbackRepo) Assign(id, annotatorID string, priority int, adminRemarks string) (*models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"assignedAnnotatorId": annotatorID,
		"priority":            priority,
		"adminRemarks":        adminRemarks,
		"status":              models.FeedbackInProgress,
		"updatedAt":           time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f models.Feedback
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("feedback %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign feedback %s: %w", id, err)
	}
	return &f, nil
}

func (r *MongoFeedbackRepo) Resolve(id, labelID string, at time.Time) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":          models.FeedbackResolved,
		"resolvedLabelId": labelID,
		"resolvedAt":      at,
		"updatedAt":       at,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to resolve feedback %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("feedback %s not found", id)
	}
	return nil
}

func (r *MongoFeedbackRepo) SetAnnotatorRemarks(id, remarks string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"annotatorRemarks": remarks,
		"updatedAt":        time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update feedback %s remarks: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("feedback %s not found", id)
	}
	return nil
}

func (r *MongoFeedbackRepo) ListByStatus(status string) ([]models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks by status: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Feedback
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode feedbacks: %w", err)
	}
	return out, nil
}

func (r *MongoFeedbackRepo) ListAssigned(annotatorID string, statuses []string) ([]models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"assignedAnnotatorId": annotatorID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned feedbacks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Feedback
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode feedbacks: %w", err)
	}
	return out, nil
}

func (r *MongoFeedbackRepo) LatestInProgressFor(annotatorID string) (*models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"assignedAnnotatorId": annotatorID,
		"status":              models.FeedbackInProgress,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	var f models.Feedback
	err := r.coll.FindOne(ctx, filter, opts).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch in-progress feedback: %w", err)
	}
	return &f, nil
}

func (r *MongoFeedbackRepo) ListByEmail(email string) ([]models.Feedback, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedbacks for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var out []models.Feedback
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode feedbacks: %w", err)
	}
	return out, nil
}

func (r *MongoFeedbackRepo) CountByStatus(status string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count feedbacks: %w", err)
	}
	return n, nil
}
