package ratingRepo

import (
	"context"

	"roadsafe/models"
)

// RatingRepository defines persistence for derived StarRating rows.
type RatingRepository interface {
	// ReplaceForSegment drops every prior rating row for the segment and
	// inserts the fresh one, atomically, so stale rows never accumulate.
	ReplaceForSegment(ctx context.Context, segmentID string, rating *models.StarRating) error

	ListByRoad(roadID string) ([]models.StarRating, error)
	ListBySegment(segmentID string) ([]models.StarRating, error)
}
