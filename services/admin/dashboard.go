// Package admin serves the moderation dashboard projections.
package admin

import (
	"math"

	annotatorRepo "roadsafe/database/repository/annotator"
	labelRepo "roadsafe/database/repository/label"
	roadRepo "roadsafe/database/repository/road"
	"roadsafe/models"
	"roadsafe/services/feedback"
)

// Dashboard summarises platform state for the admin landing view.
type Dashboard struct {
	TotalRoads          int64           `json:"totalRoads"`
	VerifiedRoads       int64           `json:"verifiedRoads"`
	PendingReviews      int64           `json:"pendingReviews"`
	TotalAnnotators     int64           `json:"totalAnnotators"`
	SuspendedAnnotators int             `json:"suspendedAnnotators"`
	AtRiskAnnotators    int             `json:"atRiskAnnotators"`
	Feedback            *feedback.Stats `json:"feedback"`
}

// Service assembles admin dashboard data.
type Service struct {
	Roads      roadRepo.RoadRepository
	Labels     labelRepo.LabelRepository
	Annotators annotatorRepo.AnnotatorRepository
	Feedbacks  *feedback.Service
}

func NewService(roads roadRepo.RoadRepository, labels labelRepo.LabelRepository, annotators annotatorRepo.AnnotatorRepository, feedbacks *feedback.Service) *Service {
	return &Service{Roads: roads, Labels: labels, Annotators: annotators, Feedbacks: feedbacks}
}

func (s *Service) Dashboard() (*Dashboard, error) {
	total, verified, err := s.Roads.Counts()
	if err != nil {
		return nil, err
	}
	pending, err := s.Labels.CountPending()
	if err != nil {
		return nil, err
	}
	annotatorCount, err := s.Annotators.Count()
	if err != nil {
		return nil, err
	}
	suspended, err := s.Annotators.ListSuspended()
	if err != nil {
		return nil, err
	}
	atRisk, err := s.Annotators.ListAtRisk(models.AtRiskThreshold)
	if err != nil {
		return nil, err
	}
	stats, err := s.Feedbacks.Stats()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalRoads:          total,
		VerifiedRoads:       verified,
		PendingReviews:      pending,
		TotalAnnotators:     annotatorCount,
		SuspendedAnnotators: len(suspended),
		AtRiskAnnotators:    len(atRisk),
		Feedback:            stats,
	}, nil
}

// AnnotatorOverview is an annotator account joined with its label volume
// and approval rate for the admin directory.
type AnnotatorOverview struct {
	models.Annotator
	TotalLabels    int64   `json:"totalLabels"`
	VerifiedLabels int64   `json:"verifiedLabels"`
	PendingLabels  int64   `json:"pendingLabels"`
	ApprovalRate   float64 `json:"approvalRate"`
}

// ListAnnotators returns annotator accounts with their label statistics,
// optionally filtered by an email search string.
func (s *Service) ListAnnotators(search string) ([]AnnotatorOverview, error) {
	annotators, err := s.Annotators.ListAll(search)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(annotators))
	for i, a := range annotators {
		ids[i] = a.ID
	}
	counts, err := s.Labels.CountByAnnotators(ids)
	if err != nil {
		return nil, err
	}

	out := make([]AnnotatorOverview, len(annotators))
	for i, a := range annotators {
		c := counts[a.ID]
		overview := AnnotatorOverview{
			Annotator:      a,
			TotalLabels:    c.Total,
			VerifiedLabels: c.Verified,
			PendingLabels:  c.Total - c.Verified,
		}
		if c.Total > 0 {
			overview.ApprovalRate = math.Round(float64(c.Verified)/float64(c.Total)*1000) / 10
		}
		out[i] = overview
	}
	return out, nil
}
