package roadRepo

import (
	"context"

	"roadsafe/models"
)

// RoadRepository defines persistence for roads and their segments.
type RoadRepository interface {
	// CreateWithSegments inserts a road and all its segments atomically.
	CreateWithSegments(ctx context.Context, road *models.Road, segments []models.RoadSegment) error

	GetByID(id string) (*models.Road, error)
	GetSegment(segmentID string) (*models.RoadSegment, error)
	ListSegments(roadID string) ([]models.RoadSegment, error)
	ListRoads(limit int64) ([]models.Road, error)
	ListByAnnotator(annotatorID string) ([]models.Road, error)

	// MarkVerified flags the road as verified with the given derived risk
	// score once full label coverage is reached.
	MarkVerified(roadID, adminID string, riskScore float64) error

	Counts() (total int64, verified int64, err error)
}
