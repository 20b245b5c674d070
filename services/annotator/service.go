// Package annotator maintains reliability state for labeling accounts: a
// rejection-count penalty with a hard suspension gate at the threshold.
package annotator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	annotatorRepo "roadsafe/database/repository/annotator"
	"roadsafe/models"
	"roadsafe/utils"
)

// SuspendedError is returned when a suspended annotator attempts an action
// reserved for active accounts.
type SuspendedError struct {
	AnnotatorID  string
	PenaltyScore int
	Remarks      string
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("annotator %s is suspended (penalty score %d)", e.AnnotatorID, e.PenaltyScore)
}

// RejectionOutcome reports the reliability state after a rejection was
// recorded.
type RejectionOutcome struct {
	PenaltyScore int
	IsSuspended  bool
	// NewlySuspended is true only on the transition itself, so callers can
	// notify once rather than on every rejection past the threshold.
	NewlySuspended bool
}

// Service applies the reliability state machine on top of the repository.
type Service struct {
	Annotators annotatorRepo.AnnotatorRepository
}

func NewService(annotators annotatorRepo.AnnotatorRepository) *Service {
	return &Service{Annotators: annotators}
}

// EnsureActive gates annotator actions. It returns a *SuspendedError when
// the account is suspended and the annotator record otherwise.
func (s *Service) EnsureActive(annotatorID string) (*models.Annotator, error) {
	a, err := s.Annotators.GetByID(annotatorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("annotator %s not found", annotatorID)
	}
	if a.IsSuspended {
		return nil, &SuspendedError{
			AnnotatorID:  a.ID,
			PenaltyScore: a.PenaltyScore,
			Remarks:      a.SuspensionRemarks,
		}
	}
	return a, nil
}

// RecordRejection increments the penalty counter and suspends the account
// when it crosses the threshold.
func (s *Service) RecordRejection(annotatorID string) (*RejectionOutcome, error) {
	a, err := s.Annotators.IncrementPenalty(annotatorID)
	if err != nil {
		return nil, err
	}

	outcome := &RejectionOutcome{
		PenaltyScore: a.PenaltyScore,
		IsSuspended:  a.IsSuspended,
	}
	if a.PenaltyScore >= models.SuspensionThreshold && !a.IsSuspended {
		if err := s.Annotators.Suspend(a.ID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to suspend annotator %s: %w", a.ID, err)
		}
		outcome.IsSuspended = true
		outcome.NewlySuspended = true
		utils.GetLogger().Warn("annotator suspended",
			zap.String("annotatorId", a.ID),
			zap.Int("penaltyScore", a.PenaltyScore))
	}
	return outcome, nil
}

// Reactivate clears suspension state. Penalty resets to zero; this is the
// only write that reduces it.
func (s *Service) Reactivate(annotatorID string) error {
	a, err := s.Annotators.GetByID(annotatorID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("annotator %s not found", annotatorID)
	}
	if !a.IsSuspended {
		return fmt.Errorf("annotator %s is not suspended", annotatorID)
	}
	if err := s.Annotators.Reactivate(annotatorID); err != nil {
		return err
	}
	utils.GetLogger().Info("annotator reactivated", zap.String("annotatorId", annotatorID))
	return nil
}

// AddTrainingRemarks stores the human-supplied suspension remarks required
// before a reactivation decision.
func (s *Service) AddTrainingRemarks(annotatorID, remarks string) error {
	if remarks == "" {
		return fmt.Errorf("remarks must not be empty")
	}
	return s.Annotators.SetSuspensionRemarks(annotatorID, remarks)
}

func (s *Service) ListSuspended() ([]models.Annotator, error) {
	return s.Annotators.ListSuspended()
}

// ListAtRisk returns active annotators whose penalty score has reached the
// warning threshold.
func (s *Service) ListAtRisk() ([]models.Annotator, error) {
	return s.Annotators.ListAtRisk(models.AtRiskThreshold)
}
