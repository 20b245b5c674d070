// Package feedback manages traveller complaints and their resolution
// linkage to approved relabels.
package feedback

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	annotatorRepo "roadsafe/database/repository/annotator"
	feedbackRepo "roadsafe/database/repository/feedback"
	"roadsafe/models"
	"roadsafe/services/notification"
	"roadsafe/utils"
)

// Service manages the feedback lifecycle.
type Service struct {
	Feedbacks  feedbackRepo.FeedbackRepository
	Annotators annotatorRepo.AnnotatorRepository
	Notifier   *notification.Service
}

func NewService(feedbacks feedbackRepo.FeedbackRepository, annotators annotatorRepo.AnnotatorRepository, notifier *notification.Service) *Service {
	return &Service{Feedbacks: feedbacks, Annotators: annotators, Notifier: notifier}
}

// CreateInput is a traveller's new complaint or general feedback.
type CreateInput struct {
	Title        string
	Description  string
	ImageURL     string
	Coordinates  *models.GeoPoint
	FeedbackType string
	Email        string
	SegmentID    string
	RoadID       string
}

func (s *Service) Create(in CreateInput) (*models.Feedback, error) {
	if in.Title == "" || in.Email == "" {
		return nil, fmt.Errorf("title and email are required")
	}
	if in.FeedbackType == "" {
		in.FeedbackType = models.FeedbackTypeFeedback
	}

	now := time.Now().UTC()
	f := &models.Feedback{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Coordinates:  in.Coordinates,
		Status:       models.FeedbackPending,
		FeedbackType: in.FeedbackType,
		Email:        in.Email,
		SegmentID:    in.SegmentID,
		RoadID:       in.RoadID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Feedbacks.Create(f); err != nil {
		return nil, err
	}

	s.Notifier.NotifyAdmins(
		fmt.Sprintf("New %s from %s: %s", f.FeedbackType, f.Email, f.Title),
		models.NotifFeedback,
		map[string]string{"feedbackId": f.ID},
	)
	return f, nil
}

// Assign hands the feedback to an annotator for relabeling and moves it to
// IN_PROGRESS.
func (s *Service) Assign(feedbackID, annotatorID string, priority int, adminRemarks string) (*models.Feedback, error) {
	a, err := s.Annotators.GetByID(annotatorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("annotator %s not found", annotatorID)
	}

	f, err := s.Feedbacks.Assign(feedbackID, annotatorID, priority, adminRemarks)
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify(a.Email,
		fmt.Sprintf("You have been assigned a complaint: %s", f.Title),
		models.NotifAssignment,
		map[string]string{"feedbackId": f.ID})
	s.Notifier.Notify(f.Email,
		"Your report is being worked on.",
		models.NotifComplaintUpdate,
		map[string]string{"feedbackId": f.ID})
	return f, nil
}

func (s *Service) SetAnnotatorRemarks(feedbackID, remarks string) error {
	return s.Feedbacks.SetAnnotatorRemarks(feedbackID, remarks)
}

func (s *Service) GetByID(feedbackID string) (*models.Feedback, error) {
	return s.Feedbacks.GetByID(feedbackID)
}

func (s *Service) ListByStatus(status string) ([]models.Feedback, error) {
	return s.Feedbacks.ListByStatus(status)
}

// ListForAnnotator returns the annotator's open assignments.
func (s *Service) ListForAnnotator(annotatorID string) ([]models.Feedback, error) {
	return s.Feedbacks.ListAssigned(annotatorID, []string{models.FeedbackInProgress})
}

func (s *Service) ListForTraveller(email string) ([]models.Feedback, error) {
	return s.Feedbacks.ListByEmail(email)
}

// remarkMarker is the legacy complaint-relabel marker some clients still
// embed in review remarks as a JSON blob.
type remarkMarker struct {
	FeedbackID         string `json:"feedbackID"`
	IsComplaintRelabel bool   `json:"isComplaintRelabel"`
}

// ResolveForLabel closes the complaint an approved label was submitted for,
// if any. Candidates are tried in order: the feedback id passed with the
// approval, the review's structured origin link, a legacy JSON marker in
// the review remarks, and finally the annotator's most recently updated
// IN_PROGRESS assignment. Approvals with no matching complaint are the
// common case and return (nil, nil).
func (s *Service) ResolveForLabel(detail *models.LabelDetail, explicitFeedbackID string) (*models.Feedback, error) {
	feedbackID := explicitFeedbackID
	if feedbackID == "" && detail.Review != nil {
		feedbackID = detail.Review.OriginFeedbackID
	}
	if feedbackID == "" && detail.Review != nil && detail.Review.Remarks != "" {
		var marker remarkMarker
		if err := json.Unmarshal([]byte(detail.Review.Remarks), &marker); err == nil && marker.IsComplaintRelabel {
			feedbackID = marker.FeedbackID
		}
	}

	var target *models.Feedback
	var err error
	if feedbackID != "" {
		target, err = s.Feedbacks.GetByID(feedbackID)
	} else {
		target, err = s.Feedbacks.LatestInProgressFor(detail.Label.AnnotatorID)
	}
	if err != nil {
		return nil, err
	}
	if target == nil || target.Status == models.FeedbackResolved {
		return nil, nil
	}

	now := time.Now().UTC()
	if err := s.Feedbacks.Resolve(target.ID, detail.Label.ID, now); err != nil {
		return nil, err
	}
	target.Status = models.FeedbackResolved
	target.ResolvedLabelID = detail.Label.ID
	target.ResolvedAt = &now

	s.Notifier.Notify(target.Email,
		fmt.Sprintf("Your report %q has been resolved.", target.Title),
		models.NotifComplaintResolved,
		map[string]string{"feedbackId": target.ID, "labelId": detail.Label.ID})

	utils.GetLogger().Info("complaint resolved by approved label",
		zap.String("feedbackId", target.ID),
		zap.String("labelId", detail.Label.ID))
	return target, nil
}

// Stats summarises feedback volume for the admin dashboard.
type Stats struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}

func (s *Service) Stats() (*Stats, error) {
	pending, err := s.Feedbacks.CountByStatus(models.FeedbackPending)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Feedbacks.CountByStatus(models.FeedbackInProgress)
	if err != nil {
		return nil, err
	}
	resolved, err := s.Feedbacks.CountByStatus(models.FeedbackResolved)
	if err != nil {
		return nil, err
	}
	return &Stats{Pending: pending, InProgress: inProgress, Resolved: resolved}, nil
}
