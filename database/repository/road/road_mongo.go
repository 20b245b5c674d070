package roadRepo

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

// MongoRoadRepo implements RoadRepository using MongoDB.
type MongoRoadRepo struct {
	roadColl    *mongo.Collection
	segmentColl *mongo.Collection
}

// NewMongoRoadRepo creates a new instance of RoadRepository using MongoDB.
func NewMongoRoadRepo() RoadRepository {
	db := database.DB()
	repo := &MongoRoadRepo{
		roadColl:    db.Collection("roads"),
		segmentColl: db.Collection("segments"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRoadRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.roadColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "annotatorId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create road indexes: %w", err)
	}
	if _, err := r.segmentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roadId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create segment indexes: %w", err)
	}
	return nil
}

// CreateWithSegments inserts the road and every segment inside one Mongo
// transaction so a partially mapped road never becomes visible.
func (r *MongoRoadRepo) CreateWithSegments(ctx context.Context, road *models.Road, segments []models.RoadSegment) error {
	client := r.roadColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.roadColl.InsertOne(sc, road); err != nil {
			return fmt.Errorf("insert road failed: %w", err)
		}
		docs := make([]interface{}, 0, len(segments))
		for i := range segments {
			docs = append(docs, segments[i])
		}
		if len(docs) > 0 {
			if _, err := r.segmentColl.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert segments failed: %w", err)
			}
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
		return fmt.Errorf("road creation transaction failed: %w", err)
	}
	return nil
}

func (r *MongoRoadRepo) GetByID(id string) (*models.Road, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var road models.Road
	if err := r.roadColl.FindOne(ctx, bson.M{"id": id}).Decode(&road); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch road %s: %w", id, err)
	}
	return &road, nil
}

func (r *MongoRoadRepo) GetSegment(segmentID string) (*models.RoadSegment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var seg models.RoadSegment
	if err := r.segmentColl.FindOne(ctx, bson.M{"id": segmentID}).Decode(&seg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch segment %s: %w", segmentID, err)
	}
	return &seg, nil
}

func (r *MongoRoadRepo) ListSegments(roadID string) ([]models.RoadSegment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.segmentColl.Find(ctx, bson.M{"roadId": roadID})
	if err != nil {
		return nil, fmt.Errorf("failed to list segments for road %s: %w", roadID, err)
	}
	defer cursor.Close(ctx)

	var segments []models.RoadSegment
	if err := cursor.All(ctx, &segments); err != nil {
		return nil, fmt.Errorf("failed to decode segments: %w", err)
	}
	return segments, nil
}

func (r *MongoRoadRepo) ListRoads(limit int64) ([]models.Road, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.roadColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list roads: %w", err)
	}
	defer cursor.Close(ctx)

	var roads []models.Road
	if err := cursor.All(ctx, &roads); err != nil {
		return nil, fmt.Errorf("failed to decode roads: %w", err)
	}
	return roads, nil
}

func (r *MongoRoadRepo) ListByAnnotator(annotatorID string) ([]models.Road, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.roadColl.Find(ctx, bson.M{"annotatorId": annotatorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list roads for annotator %s: %w", annotatorID, err)
	}
	defer cursor.Close(ctx)

	var roads []models.Road
	if err := cursor.All(ctx, &roads); err != nil {
		return nil, fmt.Errorf("failed to decode roads: %w", err)
	}
	return roads, nil
}

func (r *MongoRoadRepo) MarkVerified(roadID, adminID string, riskScore float64) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isVerified": true, "riskScore": riskScore}}
	if adminID != "" {
		update["$set"].(bson.M)["adminId"] = adminID
	}
	res, err := r.roadColl.UpdateOne(ctx, bson.M{"id": roadID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark road %s verified: %w", roadID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("road %s not found", roadID)
	}
	return nil
}

func (r *MongoRoadRepo) Counts() (int64, int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	total, err := r.roadColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count roads: %w", err)
	}
	verified, err := r.roadColl.CountDocuments(ctx, bson.M{"isVerified": true})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count verified roads: %w", err)
	}
	return total, verified, nil
}
