// Package road manages road and segment registration for labeling.
package road

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	annotatorRepo "roadsafe/database/repository/annotator"
	roadRepo "roadsafe/database/repository/road"
	"roadsafe/models"
	"roadsafe/utils"
)

const defaultRoadListLimit = 200

// Service registers roads for labeling and serves road listings.
type Service struct {
	Roads      roadRepo.RoadRepository
	Annotators annotatorRepo.AnnotatorRepository
}

func NewService(roads roadRepo.RoadRepository, annotators annotatorRepo.AnnotatorRepository) *Service {
	return &Service{Roads: roads, Annotators: annotators}
}

// SegmentInput is one stretch of a new road.
type SegmentInput struct {
	Start models.GeoPoint `json:"start"`
	End   models.GeoPoint `json:"end"`
}

// CreateInput registers a road. When Segments is empty the whole road
// becomes a single segment from Start to End.
type CreateInput struct {
	AnnotatorID string
	Name        string
	Start       models.GeoPoint
	End         models.GeoPoint
	Segments    []SegmentInput
}

// RoadWithSegments pairs a road with its segments for map views.
type RoadWithSegments struct {
	Road     models.Road          `json:"road"`
	Segments []models.RoadSegment `json:"segments"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*RoadWithSegments, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("road name is required")
	}
	ann, err := s.Annotators.GetByID(in.AnnotatorID)
	if err != nil {
		return nil, err
	}
	if ann == nil {
		return nil, fmt.Errorf("annotator %s not found", in.AnnotatorID)
	}

	now := time.Now().UTC()
	road := &models.Road{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Start:       in.Start,
		End:         in.End,
		AnnotatorID: in.AnnotatorID,
		CreatedAt:   now,
	}

	inputs := in.Segments
	if len(inputs) == 0 {
		inputs = []SegmentInput{{Start: in.Start, End: in.End}}
	}
	segments := make([]models.RoadSegment, len(inputs))
	for i, seg := range inputs {
		segments[i] = models.RoadSegment{
			ID:        uuid.NewString(),
			RoadID:    road.ID,
			Start:     seg.Start,
			End:       seg.End,
			CreatedAt: now,
		}
	}

	if err := s.Roads.CreateWithSegments(ctx, road, segments); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("road registered for labeling",
		zap.String("roadId", road.ID),
		zap.String("name", road.Name),
		zap.Int("segments", len(segments)))
	return &RoadWithSegments{Road: *road, Segments: segments}, nil
}

func (s *Service) Get(roadID string) (*RoadWithSegments, error) {
	road, err := s.Roads.GetByID(roadID)
	if err != nil {
		return nil, err
	}
	if road == nil {
		return nil, fmt.Errorf("road %s not found", roadID)
	}
	segments, err := s.Roads.ListSegments(roadID)
	if err != nil {
		return nil, err
	}
	return &RoadWithSegments{Road: *road, Segments: segments}, nil
}

func (s *Service) List() ([]models.Road, error) {
	return s.Roads.ListRoads(defaultRoadListLimit)
}

func (s *Service) ListForAnnotator(annotatorID string) ([]models.Road, error) {
	return s.Roads.ListByAnnotator(annotatorID)
}
