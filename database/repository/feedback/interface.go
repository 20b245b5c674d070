package feedbackRepo

import (
	"time"

	"roadsafe/models"
)

// FeedbackRepository defines persistence for traveller complaints.
type FeedbackRepository interface {
	Create(f *models.Feedback) error
	GetByID(id string) (*models.Feedback, error)

	// Assign moves the feedback to IN_PROGRESS for the given annotator and
	// returns the updated document.
	Assign(id, annotatorID string, priority int, adminRemarks string) (*models.Feedback, error)

	// Resolve closes the feedback against the approved label that fixed it.
	Resolve(id, labelID string, at time.Time) error
	SetAnnotatorRemarks(id, remarks string) error

	ListByStatus(status string) ([]models.Feedback, error)
	ListAssigned(annotatorID string, statuses []string) ([]models.Feedback, error)
	// LatestInProgressFor returns the single most recently updated
	// IN_PROGRESS feedback assigned to the annotator, or nil.
	LatestInProgressFor(annotatorID string) (*models.Feedback, error)
	ListByEmail(email string) ([]models.Feedback, error)
	CountByStatus(status string) (int64, error)
}
