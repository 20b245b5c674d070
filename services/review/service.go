// Package review runs the label review workflow: submission intake, the
// approve/reject decisions and their downstream effects on annotator
// reliability, complaint resolution and road ratings.
package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	annotatorRepo "roadsafe/database/repository/annotator"
	labelRepo "roadsafe/database/repository/label"
	roadRepo "roadsafe/database/repository/road"
	"roadsafe/models"
	"roadsafe/services/annotator"
	"roadsafe/services/feedback"
	"roadsafe/services/notification"
	"roadsafe/services/rating"
	"roadsafe/utils"
)

// Service coordinates the review workflow. The approve and reject decisions
// are transactional over the label tree; rating recomputation and
// notifications are derived side effects that never roll a decision back.
type Service struct {
	Labels      labelRepo.LabelRepository
	Roads       roadRepo.RoadRepository
	Annotators  annotatorRepo.AnnotatorRepository
	Reliability *annotator.Service
	Feedbacks   *feedback.Service
	Ratings     rating.Engine
	Notifier    *notification.Service
}

func NewService(
	labels labelRepo.LabelRepository,
	roads roadRepo.RoadRepository,
	annotators annotatorRepo.AnnotatorRepository,
	reliability *annotator.Service,
	feedbacks *feedback.Service,
	ratings rating.Engine,
	notifier *notification.Service,
) *Service {
	return &Service{
		Labels:      labels,
		Roads:       roads,
		Annotators:  annotators,
		Reliability: reliability,
		Feedbacks:   feedbacks,
		Ratings:     ratings,
		Notifier:    notifier,
	}
}

// RoadsideInput, IntersectionInput and SpeedInput carry the categorical
// attribute values of a submission.
type RoadsideInput struct {
	LeftObject     string `json:"leftObject"`
	RightObject    string `json:"rightObject"`
	DistanceObject string `json:"distanceObject"`
}

type IntersectionInput struct {
	Type           string `json:"type"`
	Quality        string `json:"quality"`
	Channelisation string `json:"channelisation"`
}

type SpeedInput struct {
	SpeedLimit string `json:"speedLimit"`
	Management string `json:"management"`
}

// SubmitInput is one annotator submission for one segment. At least one of
// the three attribute blocks must be present. OriginFeedbackID marks the
// submission as a relabel for a specific complaint; AnnotatorRemarks are
// only meaningful alongside it and are written onto the complaint.
type SubmitInput struct {
	AnnotatorID      string
	SegmentID        string
	Latitude         *float64
	Longitude        *float64
	Roadside         *RoadsideInput
	Intersection     *IntersectionInput
	Speed            *SpeedInput
	OriginFeedbackID string
	AnnotatorRemarks string
}

// Submit gates on suspension, validates the segment and records the label
// with a PENDING review row. Returns *annotator.SuspendedError when the
// submitter is suspended; nothing is written in that case.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.LabelDetail, error) {
	ann, err := s.Reliability.EnsureActive(in.AnnotatorID)
	if err != nil {
		return nil, err
	}

	if in.SegmentID == "" {
		return nil, newValidationError("segmentID", "is required")
	}
	if in.Roadside == nil && in.Intersection == nil && in.Speed == nil {
		return nil, newValidationError("label", "at least one of roadside, intersection or speed data is required")
	}
	segment, err := s.Roads.GetSegment(in.SegmentID)
	if err != nil {
		return nil, err
	}
	if segment == nil {
		return nil, ErrSegmentNotFound
	}

	// A relabel must name an existing complaint assigned to the submitter.
	var complaint *models.Feedback
	if in.OriginFeedbackID != "" {
		complaint, err = s.Feedbacks.GetByID(in.OriginFeedbackID)
		if err != nil {
			return nil, err
		}
		if complaint == nil {
			return nil, newValidationError("feedbackID", "complaint not found")
		}
		if complaint.AssignedAnnotatorID != in.AnnotatorID {
			return nil, ErrComplaintNotAssigned
		}
	}

	now := time.Now().UTC()
	labelID := uuid.NewString()
	detail := &models.LabelDetail{
		Label: models.Label{
			ID:          labelID,
			SegmentID:   in.SegmentID,
			AnnotatorID: in.AnnotatorID,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
			CreatedAt:   now,
		},
		Review: &models.LabelReview{
			ID:               uuid.NewString(),
			LabelID:          labelID,
			Status:           models.ReviewPending,
			OriginFeedbackID: in.OriginFeedbackID,
			CreatedAt:        now,
		},
	}
	if in.Roadside != nil {
		detail.Roadside = &models.Roadside{
			ID:             uuid.NewString(),
			LabelID:        labelID,
			LeftObject:     in.Roadside.LeftObject,
			RightObject:    in.Roadside.RightObject,
			DistanceObject: in.Roadside.DistanceObject,
		}
	}
	if in.Intersection != nil {
		detail.Intersection = &models.Intersection{
			ID:             uuid.NewString(),
			LabelID:        labelID,
			Type:           in.Intersection.Type,
			Quality:        in.Intersection.Quality,
			Channelisation: in.Intersection.Channelisation,
		}
	}
	if in.Speed != nil {
		detail.Speed = &models.Speed{
			ID:         uuid.NewString(),
			LabelID:    labelID,
			SpeedLimit: in.Speed.SpeedLimit,
			Management: in.Speed.Management,
		}
	}

	if err := s.Labels.CreateWithChildren(ctx, detail); err != nil {
		return nil, err
	}

	if complaint != nil && in.AnnotatorRemarks != "" {
		if err := s.Feedbacks.SetAnnotatorRemarks(complaint.ID, in.AnnotatorRemarks); err != nil {
			utils.GetLogger().Warn("failed to record annotator remarks on complaint",
				zap.String("feedbackId", complaint.ID), zap.Error(err))
		}
	}

	categories := submittedCategories(in)
	s.Notifier.NotifyAdmins(
		fmt.Sprintf("A new label (%s) is pending review.", strings.Join(categories, ", ")),
		models.NotifLabelSubmitted,
		map[string]string{
			"labelId":    labelID,
			"segmentId":  in.SegmentID,
			"categories": strings.Join(categories, ","),
		})
	s.Notifier.Notify(ann.Email,
		"Your label was submitted and is awaiting review.",
		models.NotifLabelSubmitted,
		map[string]string{"labelId": labelID})
	if complaint != nil {
		s.Notifier.Notify(complaint.Email,
			fmt.Sprintf("Your report %q has a new label under review.", complaint.Title),
			models.NotifComplaintUpdate,
			map[string]string{"feedbackId": complaint.ID, "labelId": labelID})
	}

	utils.GetLogger().Info("label submitted",
		zap.String("labelId", labelID),
		zap.String("segmentId", in.SegmentID),
		zap.String("annotatorId", in.AnnotatorID))
	return detail, nil
}

func submittedCategories(in SubmitInput) []string {
	var categories []string
	if in.Roadside != nil {
		categories = append(categories, "roadside")
	}
	if in.Intersection != nil {
		categories = append(categories, "intersection")
	}
	if in.Speed != nil {
		categories = append(categories, "speed")
	}
	return categories
}

// ApproveResult reports what an approval did.
type ApproveResult struct {
	Label            *models.LabelDetail `json:"label"`
	SupersededLabels []string            `json:"supersededLabels,omitempty"`
	ResolvedFeedback *models.Feedback    `json:"resolvedFeedback,omitempty"`
	Rating           *models.RoadRating  `json:"rating,omitempty"`
}

// Approve verifies the label, supersedes the annotator's older approved
// labels on the same segment and records the APPROVED review, atomically.
// Complaint resolution and rating refresh run afterwards; their failures
// are logged and swallowed because the approval itself is authoritative.
func (s *Service) Approve(ctx context.Context, labelID, adminID, feedbackID string) (*ApproveResult, error) {
	detail, err := s.Labels.GetDetail(labelID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrLabelNotFound
	}

	superseded, err := s.Labels.ListVerifiedByAnnotatorOnSegment(detail.Label.AnnotatorID, detail.Label.SegmentID, labelID)
	if err != nil {
		return nil, err
	}
	supersededIDs := make([]string, len(superseded))
	for i, l := range superseded {
		supersededIDs[i] = l.ID
	}

	now := time.Now().UTC()
	if err := s.Labels.ApproveTransactionally(ctx, labelID, adminID, supersededIDs, now); err != nil {
		return nil, err
	}

	detail.Label.IsVerified = true
	detail.Label.AdminID = adminID
	detail.Label.VerifiedAt = &now

	result := &ApproveResult{Label: detail, SupersededLabels: supersededIDs}

	resolved, err := s.Feedbacks.ResolveForLabel(detail, feedbackID)
	if err != nil {
		utils.GetLogger().Warn("complaint resolution failed after approval",
			zap.String("labelId", labelID), zap.Error(err))
	} else {
		result.ResolvedFeedback = resolved
	}

	result.Rating = s.refreshRatingForSegment(ctx, detail.Label.SegmentID)
	s.notifyAnnotator(detail.Label.AnnotatorID,
		"Your label has been approved.",
		models.NotifLabelApproved,
		map[string]string{"labelId": labelID})

	utils.GetLogger().Info("label approved",
		zap.String("labelId", labelID),
		zap.String("adminId", adminID),
		zap.Int("superseded", len(supersededIDs)))
	return result, nil
}

// RejectResult reports what a rejection did to the annotator's reliability
// state.
type RejectResult struct {
	PenaltyScore   int  `json:"penaltyScore"`
	IsSuspended    bool `json:"isSuspended"`
	NewlySuspended bool `json:"newlySuspended"`
}

// Reject records the REJECTED decision, destroys the label with its
// sub-records and review row, and applies the reliability penalty. The
// annotator is told the resulting penalty count.
func (s *Service) Reject(ctx context.Context, labelID, adminID, remarks string) (*RejectResult, error) {
	detail, err := s.Labels.GetDetail(labelID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrLabelNotFound
	}

	now := time.Now().UTC()
	if err := s.Labels.RejectTransactionally(ctx, labelID, adminID, remarks, now); err != nil {
		return nil, err
	}

	outcome, err := s.Reliability.RecordRejection(detail.Label.AnnotatorID)
	if err != nil {
		return nil, err
	}

	// a rejected label that had been verified earlier changes the rating
	if detail.Label.IsVerified {
		s.refreshRatingForSegment(ctx, detail.Label.SegmentID)
	}

	msg := "Your label was rejected."
	if remarks != "" {
		msg = "Your label was rejected: " + remarks
	}
	if outcome.NewlySuspended {
		msg += " Your account has been suspended pending retraining."
	}
	s.notifyAnnotator(detail.Label.AnnotatorID, msg, models.NotifLabelRejected, map[string]string{
		"labelId": labelID,
	})

	utils.GetLogger().Info("label rejected",
		zap.String("labelId", labelID),
		zap.String("adminId", adminID),
		zap.Int("penaltyScore", outcome.PenaltyScore),
		zap.Bool("suspended", outcome.IsSuspended))
	return &RejectResult{
		PenaltyScore:   outcome.PenaltyScore,
		IsSuspended:    outcome.IsSuspended,
		NewlySuspended: outcome.NewlySuspended,
	}, nil
}

// ListPending returns every label awaiting a review decision.
func (s *Service) ListPending() ([]models.LabelDetail, error) {
	return s.Labels.ListPendingReviews()
}

// ListForAnnotator returns the annotator's labels with their sub-records and
// review status.
func (s *Service) ListForAnnotator(annotatorID string) ([]models.LabelDetail, error) {
	return s.Labels.ListDetailsByAnnotator(annotatorID)
}

// GetLabel returns one label with its sub-records, or ErrLabelNotFound.
func (s *Service) GetLabel(labelID string) (*models.LabelDetail, error) {
	detail, err := s.Labels.GetDetail(labelID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrLabelNotFound
	}
	return detail, nil
}

// refreshRatingForSegment recomputes the owning road's rating. Failures are
// logged and swallowed: rating is a derived view, a decision never rolls
// back because of it.
func (s *Service) refreshRatingForSegment(ctx context.Context, segmentID string) *models.RoadRating {
	segment, err := s.Roads.GetSegment(segmentID)
	if err != nil || segment == nil {
		utils.GetLogger().Warn("could not load segment for rating refresh",
			zap.String("segmentId", segmentID), zap.Error(err))
		return nil
	}
	refreshed, err := s.Ratings.RefreshRoadRating(ctx, segment.RoadID)
	if err != nil {
		utils.GetLogger().Warn("rating refresh failed",
			zap.String("roadId", segment.RoadID), zap.Error(err))
		return nil
	}
	return refreshed
}

func (s *Service) notifyAnnotator(annotatorID, message, notifType string, metadata map[string]string) {
	ann, err := s.Annotators.GetByID(annotatorID)
	if err != nil || ann == nil {
		utils.GetLogger().Warn("could not load annotator for notification",
			zap.String("annotatorId", annotatorID), zap.Error(err))
		return
	}
	s.Notifier.Notify(ann.Email, message, notifType, metadata)
}
