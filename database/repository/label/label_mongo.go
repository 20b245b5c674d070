package labelRepo

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

// MongoLabelRepo implements LabelRepository using MongoDB. It owns the label
// collection together with the sub-record and review collections so cascades
// stay inside one repository.
type MongoLabelRepo struct {
	labelColl        *mongo.Collection
	roadsideColl     *mongo.Collection
	intersectionColl *mongo.Collection
	speedColl        *mongo.Collection
	reviewColl       *mongo.Collection
}

// NewMongoLabelRepo creates a new instance of LabelRepository using MongoDB.
func NewMongoLabelRepo() LabelRepository {
	db := database.DB()
	repo := &MongoLabelRepo{
		labelColl:        db.Collection("labels"),
		roadsideColl:     db.Collection("roadsides"),
		intersectionColl: db.Collection("intersections"),
		speedColl:        db.Collection("speeds"),
		reviewColl:       db.Collection("labelReviews"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLabelRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.labelColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "segmentId", Value: 1}, {Key: "annotatorId", Value: 1}}},
		{Keys: bson.D{{Key: "isVerified", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create label indexes: %w", err)
	}
	for _, coll := range []*mongo.Collection{r.roadsideColl, r.intersectionColl, r.speedColl, r.reviewColl} {
		if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "labelId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}); err != nil {
			return fmt.Errorf("failed to create sub-record indexes: %w", err)
		}
	}
	if _, err := r.reviewColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

// GetDetail assembles a label with its children and review row.
func (r *MongoLabelRepo) GetDetail(labelID string) (*models.LabelDetail, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var label models.Label
	if err := r.labelColl.FindOne(ctx, bson.M{"id": labelID}).Decode(&label); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch label %s: %w", labelID, err)
	}
	detail := &models.LabelDetail{Label: label}
	if err := r.attachChildren(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *MongoLabelRepo) attachChildren(ctx context.Context, detail *models.LabelDetail) error {
	labelID := detail.Label.ID

	var roadside models.Roadside
	switch err := r.roadsideColl.FindOne(ctx, bson.M{"labelId": labelID}).Decode(&roadside); err {
	case nil:
		detail.Roadside = &roadside
	case mongo.ErrNoDocuments:
	default:
		return fmt.Errorf("failed to fetch roadside for label %s: %w", labelID, err)
	}

	var intersection models.Intersection
	switch err := r.intersectionColl.FindOne(ctx, bson.M{"labelId": labelID}).Decode(&intersection); err {
	case nil:
		detail.Intersection = &intersection
	case mongo.ErrNoDocuments:
	default:
		return fmt.Errorf("failed to fetch intersection for label %s: %w", labelID, err)
	}

	var speed models.Speed
	switch err := r.speedColl.FindOne(ctx, bson.M{"labelId": labelID}).Decode(&speed); err {
	case nil:
		detail.Speed = &speed
	case mongo.ErrNoDocuments:
	default:
		return fmt.Errorf("failed to fetch speed for label %s: %w", labelID, err)
	}

	var review models.LabelReview
	switch err := r.reviewColl.FindOne(ctx, bson.M{"labelId": labelID}).Decode(&review); err {
	case nil:
		detail.Review = &review
	case mongo.ErrNoDocuments:
	default:
		return fmt.Errorf("failed to fetch review for label %s: %w", labelID, err)
	}

	return nil
}

func (r *MongoLabelRepo) ListVerifiedBySegments(segmentIDs []string) ([]models.LabelDetail, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"segmentId":  bson.M{"$in": segmentIDs},
		"isVerified": true,
	}
	cursor, err := r.labelColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified labels: %w", err)
	}
	defer cursor.Close(ctx)

	var labels []models.Label
	if err := cursor.All(ctx, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode verified labels: %w", err)
	}

	details := make([]models.LabelDetail, 0, len(labels))
	for _, l := range labels {
		d := models.LabelDetail{Label: l}
		if err := r.attachChildren(ctx, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *MongoLabelRepo) ListVerifiedByAnnotatorOnSegment(annotatorID, segmentID, excludeLabelID string) ([]models.Label, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"segmentId":   segmentID,
		"annotatorId": annotatorID,
		"isVerified":  true,
	}
	if excludeLabelID != "" {
		filter["id"] = bson.M{"$ne": excludeLabelID}
	}
	cursor, err := r.labelColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels for annotator %s on segment %s: %w", annotatorID, segmentID, err)
	}
	defer cursor.Close(ctx)

	var labels []models.Label
	if err := cursor.All(ctx, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels: %w", err)
	}
	return labels, nil
}

func (r *MongoLabelRepo) ListPendingReviews() ([]models.LabelDetail, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.reviewColl.Find(ctx, bson.M{"status": models.ReviewPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.LabelReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode pending reviews: %w", err)
	}

	details := make([]models.LabelDetail, 0, len(reviews))
	for i := range reviews {
		review := reviews[i]
		var label models.Label
		if err := r.labelColl.FindOne(ctx, bson.M{"id": review.LabelID}).Decode(&label); err != nil {
			if err == mongo.ErrNoDocuments {
				// Review row orphaned by an interrupted cascade; skip it.
				continue
			}
			return nil, fmt.Errorf("failed to fetch label %s for pending review: %w", review.LabelID, err)
		}
		d := models.LabelDetail{Label: label, Review: &review}
		if err := r.attachChildren(ctx, &d); err != nil {
			return nil, err
		}
		d.Review = &review
		details = append(details, d)
	}
	return details, nil
}

func (r *MongoLabelRepo) ListDetailsByAnnotator(annotatorID string) ([]models.LabelDetail, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.labelColl.Find(ctx, bson.M{"annotatorId": annotatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels for annotator %s: %w", annotatorID, err)
	}
	defer cursor.Close(ctx)

	var labels []models.Label
	if err := cursor.All(ctx, &labels); err != nil {
		return nil, fmt.Errorf("failed to decode labels: %w", err)
	}

	details := make([]models.LabelDetail, 0, len(labels))
	for _, l := range labels {
		d := models.LabelDetail{Label: l}
		if err := r.attachChildren(ctx, &d); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *MongoLabelRepo) CountPending() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.reviewColl.CountDocuments(ctx, bson.M{"status": models.ReviewPending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending reviews: %w", err)
	}
	return n, nil
}

func (r *MongoLabelRepo) CountVerifiedBySegment(segmentIDs []string) (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	counts := make(map[string]int64, len(segmentIDs))
	for _, id := range segmentIDs {
		counts[id] = 0
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"segmentId":  bson.M{"$in": segmentIDs},
			"isVerified": true,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$segmentId",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.labelColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels per segment: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SegmentID string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode per-segment counts: %w", err)
	}
	for _, row := range rows {
		counts[row.SegmentID] = row.Count
	}
	return counts, nil
}

func (r *MongoLabelRepo) CountByAnnotators(annotatorIDs []string) (map[string]AnnotatorLabelCounts, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	counts := make(map[string]AnnotatorLabelCounts, len(annotatorIDs))
	for _, id := range annotatorIDs {
		counts[id] = AnnotatorLabelCounts{}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"annotatorId": bson.M{"$in": annotatorIDs},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$annotatorId",
			"total": bson.M{"$sum": 1},
			"verified": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$isVerified", true}}, 1, 0},
			}},
		}}},
	}
	cursor, err := r.labelColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels per annotator: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AnnotatorID string `bson:"_id"`
		Total       int64  `bson:"total"`
		Verified    int64  `bson:"verified"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode per-annotator counts: %w", err)
	}
	for _, row := range rows {
		counts[row.AnnotatorID] = AnnotatorLabelCounts{Total: row.Total, Verified: row.Verified}
	}
	return counts, nil
}
