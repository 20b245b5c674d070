package annotatorRepo

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

// MongoAnnotatorRepo implements AnnotatorRepository using MongoDB.
type MongoAnnotatorRepo struct {
	coll *mongo.Collection
}

// NewMongoAnnotatorRepo creates a new instance of AnnotatorRepository using MongoDB.
func NewMongoAnnotatorRepo() AnnotatorRepository {
	coll := database.DB().Collection("annotators")
	repo := &MongoAnnotatorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAnnotatorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isSuspended", Value: 1}, {Key: "penaltyScore", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAnnotatorRepo) Create(a *models.Annotator) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("annotator with email %s already exists", a.Email)
		}
		return fmt.Errorf("failed to create annotator: %w", err)
	}
	return nil
}

func (r *MongoAnnotatorRepo) GetByID(id string) (*models.Annotator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Annotator
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch annotator %s: %w", id, err)
	}
	return &a, nil
}

func (r *MongoAnnotatorRepo) GetByEmail(email string) (*models.Annotator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Annotator
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch annotator with email %s: %w", email, err)
	}
	return &a, nil
}

func (r *MongoAnnotatorRepo) IncrementPenalty(id string) (*models.Annotator, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a models.Annotator
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$inc": bson.M{"penaltyScore": 1}},
		opts,
	).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("annotator %s not found", id)
		}
		return nil, fmt.Errorf("failed to increment penalty for annotator %s: %w", id, err)
	}
	return &a, nil
}

func (r *MongoAnnotatorRepo) Suspend(id string, at time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"isSuspended": true, "suspendedAt": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to suspend annotator %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("annotator %s not found", id)
	}
	return nil
}

func (r *MongoAnnotatorRepo) Reactivate(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$set":   bson.M{"isSuspended": false, "penaltyScore": 0},
			"$unset": bson.M{"suspendedAt": "", "suspensionRemarks": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reactivate annotator %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("annotator %s not found", id)
	}
	return nil
}

func (r *MongoAnnotatorRepo) SetSuspensionRemarks(id, remarks string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"suspensionRemarks": remarks}},
	)
	if err != nil {
		return fmt.Errorf("failed to set suspension remarks for annotator %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("annotator %s not found", id)
	}
	return nil
}

func (r *MongoAnnotatorRepo) ListSuspended() ([]models.Annotator, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "suspendedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isSuspended": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list suspended annotators: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Annotator
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode suspended annotators: %w", err)
	}
	return out, nil
}

func (r *MongoAnnotatorRepo) ListAtRisk(minPenalty int) ([]models.Annotator, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"penaltyScore": bson.M{"$gte": minPenalty},
		"isSuspended":  false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "penaltyScore", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list at-risk annotators: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Annotator
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode at-risk annotators: %w", err)
	}
	return out, nil
}

func (r *MongoAnnotatorRepo) ListAll(search string) ([]models.Annotator, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if search != "" {
		filter["email"] = bson.M{"$regex": search, "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotators: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Annotator
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode annotators: %w", err)
	}
	return out, nil
}

func (r *MongoAnnotatorRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count annotators: %w", err)
	}
	return n, nil
}
