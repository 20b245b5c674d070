package annotatorRepo

import (
	"time"

	"roadsafe/models"
)

// AnnotatorRepository defines persistence for annotator reliability state.
type AnnotatorRepository interface {
	Create(a *models.Annotator) error
	GetByID(id string) (*models.Annotator, error)
	GetByEmail(email string) (*models.Annotator, error)

	// IncrementPenalty bumps the penalty counter by one and returns the
	// updated document.
	IncrementPenalty(id string) (*models.Annotator, error)
	Suspend(id string, at time.Time) error
	// Reactivate clears suspension state and resets the penalty counter to
	// zero. This is the only write that decreases penaltyScore.
	Reactivate(id string) error
	SetSuspensionRemarks(id, remarks string) error

	ListSuspended() ([]models.Annotator, error)
	ListAtRisk(minPenalty int) ([]models.Annotator, error)
	ListAll(search string) ([]models.Annotator, error)
	Count() (int64, error)
}
