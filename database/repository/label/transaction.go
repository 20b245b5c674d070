package labelRepo

import (
	"context"
	"fmt"
	"time"

	"roadsafe/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func newReviewID() string {
	return uuid.NewString()
}

// runTxn executes fn inside a Mongo session transaction.
func (r *MongoLabelRepo) runTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.labelColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithChildren inserts the label, any present sub-records and the
// review row in one transaction.
func (r *MongoLabelRepo) CreateWithChildren(ctx context.Context, detail *models.LabelDetail) error {
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.labelColl.InsertOne(sc, detail.Label); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("duplicate label")
			}
			return fmt.Errorf("insert label failed: %w", err)
		}
		if detail.Roadside != nil {
			if _, err := r.roadsideColl.InsertOne(sc, detail.Roadside); err != nil {
				return fmt.Errorf("insert roadside failed: %w", err)
			}
		}
		if detail.Intersection != nil {
			if _, err := r.intersectionColl.InsertOne(sc, detail.Intersection); err != nil {
				return fmt.Errorf("insert intersection failed: %w", err)
			}
		}
		if detail.Speed != nil {
			if _, err := r.speedColl.InsertOne(sc, detail.Speed); err != nil {
				return fmt.Errorf("insert speed failed: %w", err)
			}
		}
		if detail.Review != nil {
			if _, err := r.reviewColl.InsertOne(sc, detail.Review); err != nil {
				return fmt.Errorf("insert review failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("label submission transaction failed: %w", err)
	}
	return nil
}

// deleteCascade removes a label with all sub-records and its review row.
func (r *MongoLabelRepo) deleteCascade(sc mongo.SessionContext, labelID string) error {
	filter := bson.M{"labelId": labelID}
	for _, coll := range []*mongo.Collection{r.roadsideColl, r.intersectionColl, r.speedColl, r.reviewColl} {
		if _, err := coll.DeleteMany(sc, filter); err != nil {
			return fmt.Errorf("cascade delete for label %s failed: %w", labelID, err)
		}
	}
	if _, err := r.labelColl.DeleteOne(sc, bson.M{"id": labelID}); err != nil {
		return fmt.Errorf("delete label %s failed: %w", labelID, err)
	}
	return nil
}

// upsertReviewStatus writes the review decision, creating the row when the
// submission never got one (administrative backfill).
func (r *MongoLabelRepo) upsertReviewStatus(sc mongo.SessionContext, labelID, status, adminID, remarks string, at time.Time) error {
	set := bson.M{
		"status":  status,
		"adminId": adminID,
	}
	switch status {
	case models.ReviewApproved:
		set["approvedAt"] = at
	case models.ReviewRejected:
		set["rejectedAt"] = at
	}
	if remarks != "" {
		set["remarks"] = remarks
	}

	res, err := r.reviewColl.UpdateOne(sc, bson.M{"labelId": labelID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update review for label %s failed: %w", labelID, err)
	}
	if res.MatchedCount == 0 {
		review := models.LabelReview{
			ID:      newReviewID(),
			LabelID: labelID,
			Status:  status,
			AdminID: adminID,
			Remarks: remarks,

			CreatedAt: at,
		}
		switch status {
		case models.ReviewApproved:
			review.ApprovedAt = &at
		case models.ReviewRejected:
			review.RejectedAt = &at
		}
		if _, err := r.reviewColl.InsertOne(sc, review); err != nil {
			return fmt.Errorf("backfill review for label %s failed: %w", labelID, err)
		}
	}
	return nil
}

// ApproveTransactionally marks the label verified, records the APPROVED
// decision and deletes every superseded label in one transaction.
func (r *MongoLabelRepo) ApproveTransactionally(ctx context.Context, labelID, adminID string, supersededIDs []string, at time.Time) error {
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		for _, prev := range supersededIDs {
			if err := r.deleteCascade(sc, prev); err != nil {
				return err
			}
		}

		res, err := r.labelColl.UpdateOne(sc,
			bson.M{"id": labelID},
			bson.M{"$set": bson.M{"isVerified": true, "adminId": adminID, "verifiedAt": at}},
		)
		if err != nil {
			return fmt.Errorf("mark label %s verified failed: %w", labelID, err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("label %s not found", labelID)
		}

		return r.upsertReviewStatus(sc, labelID, models.ReviewApproved, adminID, "", at)
	})
	if err != nil {
		return fmt.Errorf("approval transaction failed: %w", err)
	}
	return nil
}

// RejectTransactionally records the REJECTED decision and destroys the
// submission. The review row is written first so the decision is part of the
// same transaction even though the cascade removes it with the label.
func (r *MongoLabelRepo) RejectTransactionally(ctx context.Context, labelID, adminID, remarks string, at time.Time) error {
	err := r.runTxn(ctx, func(sc mongo.SessionContext) error {
		if err := r.upsertReviewStatus(sc, labelID, models.ReviewRejected, adminID, remarks, at); err != nil {
			return err
		}
		return r.deleteCascade(sc, labelID)
	})
	if err != nil {
		return fmt.Errorf("rejection transaction failed: %w", err)
	}
	return nil
}
