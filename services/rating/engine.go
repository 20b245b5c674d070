// Package rating computes and persists road safety ratings from verified
// labels.
package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	labelRepo "roadsafe/database/repository/label"
	ratingRepo "roadsafe/database/repository/rating"
	roadRepo "roadsafe/database/repository/road"
	"roadsafe/models"
	"roadsafe/services/scoring"
	"roadsafe/utils"
)

// Category weights. Missing categories drop out of both numerator and
// denominator, so sparse data lowers confidence instead of dragging the
// rating down.
const (
	speedWeight        = 0.20
	roadsideWeight     = 0.40
	intersectionWeight = 0.40
)

// Engine computes road ratings and maintains the derived StarRating rows.
type Engine interface {
	// ComputeRoadRating aggregates the road's verified labels into a rating.
	// Returns (nil, nil) when the road has no verified labels yet.
	ComputeRoadRating(roadID string) (*models.RoadRating, error)

	// RefreshRoadRating recomputes the rating and rewrites the per-segment
	// StarRating rows, marking the road verified once every segment has at
	// least one verified label.
	RefreshRoadRating(ctx context.Context, roadID string) (*models.RoadRating, error)

	// RoadSummary is the read path: the computed rating plus the persisted
	// per-segment rows, served from cache when fresh.
	RoadSummary(ctx context.Context, roadID string) (*RoadSummary, error)
}

// RoadSummary is the traveller-facing rating projection for one road.
type RoadSummary struct {
	Road     models.Road         `json:"road"`
	Rating   *models.RoadRating  `json:"rating"`
	Segments []models.StarRating `json:"segments"`
}

// DefaultEngine is the production Engine. Cache may be nil, in which case
// summaries are computed on every call.
type DefaultEngine struct {
	Roads   roadRepo.RoadRepository
	Labels  labelRepo.LabelRepository
	Ratings ratingRepo.RatingRepository
	Cache   *redis.Client
}

func NewDefaultEngine(roads roadRepo.RoadRepository, labels labelRepo.LabelRepository, ratings ratingRepo.RatingRepository, cache *redis.Client) *DefaultEngine {
	return &DefaultEngine{Roads: roads, Labels: labels, Ratings: ratings, Cache: cache}
}

func (e *DefaultEngine) ComputeRoadRating(roadID string) (*models.RoadRating, error) {
	road, err := e.Roads.GetByID(roadID)
	if err != nil {
		return nil, err
	}
	if road == nil {
		return nil, fmt.Errorf("road %s not found", roadID)
	}

	segments, err := e.Roads.ListSegments(roadID)
	if err != nil {
		return nil, err
	}
	labels, err := e.Labels.ListVerifiedBySegments(segmentIDs(segments))
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, nil
	}
	return aggregate(labels), nil
}

// aggregate folds verified labels into the confidence-weighted rating.
func aggregate(labels []models.LabelDetail) *models.RoadRating {
	var (
		speedSum, speedN               float64
		leftSum, leftN, rightSum, rightN float64
		interSum, interN               float64
		roadsidePresent                bool
	)

	for _, l := range labels {
		if l.Speed != nil {
			speedSum += scoring.SpeedScore(l.Speed.SpeedLimit, l.Speed.Management)
			speedN++
		}
		if l.Roadside != nil {
			roadsidePresent = true
			if l.Roadside.LeftObject != "" {
				leftSum += scoring.SideScore(l.Roadside.LeftObject, l.Roadside.DistanceObject)
				leftN++
			}
			if l.Roadside.RightObject != "" {
				rightSum += scoring.SideScore(l.Roadside.RightObject, l.Roadside.DistanceObject)
				rightN++
			}
		}
		if l.Intersection != nil {
			interSum += scoring.IntersectionScore(l.Intersection.Type, l.Intersection.Quality, l.Intersection.Channelisation)
			interN++
		}
	}

	var breakdown models.RatingBreakdown
	var weightedSum, weightUsed float64

	if speedN > 0 {
		breakdown.SpeedScore = speedSum / speedN
		weightedSum += breakdown.SpeedScore * speedWeight
		weightUsed += speedWeight
	}
	if roadsidePresent {
		left, right := scoring.NeutralScore, scoring.NeutralScore
		if leftN > 0 {
			left = leftSum / leftN
		}
		if rightN > 0 {
			right = rightSum / rightN
		}
		breakdown.RoadsideScore = (left + right) / 2
		weightedSum += breakdown.RoadsideScore * roadsideWeight
		weightUsed += roadsideWeight
	}
	if interN > 0 {
		breakdown.IntersectionScore = interSum / interN
		weightedSum += breakdown.IntersectionScore * intersectionWeight
		weightUsed += intersectionWeight
	}

	var final float64
	if weightUsed > 0 {
		final = math.Round(weightedSum/weightUsed*10) / 10
	}
	return &models.RoadRating{
		Rating:     scoring.Clamp(final),
		Breakdown:  breakdown,
		LabelCount: len(labels),
		Confidence: weightUsed * 100,
	}
}

func (e *DefaultEngine) RefreshRoadRating(ctx context.Context, roadID string) (*models.RoadRating, error) {
	rating, err := e.ComputeRoadRating(roadID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		e.invalidate(ctx, roadID)
		return nil, nil
	}

	segments, err := e.Roads.ListSegments(roadID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, seg := range segments {
		row := &models.StarRating{
			ID:          uuid.NewString(),
			SegmentID:   seg.ID,
			RoadID:      roadID,
			RatingValue: int(math.Round(rating.Rating)),
			RiskScore:   6 - rating.Rating,
			SafetyScore: rating.Rating,
			CreatedAt:   now,
		}
		if err := e.Ratings.ReplaceForSegment(ctx, seg.ID, row); err != nil {
			return nil, fmt.Errorf("failed to replace rating for segment %s: %w", seg.ID, err)
		}
	}

	if err := e.maybeVerifyRoad(roadID, segments, rating); err != nil {
		utils.GetLogger().Warn("road verification check failed",
			zap.String("roadId", roadID), zap.Error(err))
	}

	e.invalidate(ctx, roadID)
	utils.GetLogger().Info("road rating refreshed",
		zap.String("roadId", roadID),
		zap.Float64("rating", rating.Rating),
		zap.Float64("confidence", rating.Confidence))
	return rating, nil
}

// maybeVerifyRoad flips the road to verified once every segment carries at
// least one verified label.
func (e *DefaultEngine) maybeVerifyRoad(roadID string, segments []models.RoadSegment, rating *models.RoadRating) error {
	if len(segments) == 0 {
		return nil
	}
	counts, err := e.Labels.CountVerifiedBySegment(segmentIDs(segments))
	if err != nil {
		return err
	}
	for _, seg := range segments {
		if counts[seg.ID] == 0 {
			return nil
		}
	}
	return e.Roads.MarkVerified(roadID, "", 6-rating.Rating)
}

func (e *DefaultEngine) RoadSummary(ctx context.Context, roadID string) (*RoadSummary, error) {
	if cached := e.cachedSummary(ctx, roadID); cached != nil {
		return cached, nil
	}

	road, err := e.Roads.GetByID(roadID)
	if err != nil {
		return nil, err
	}
	if road == nil {
		return nil, fmt.Errorf("road %s not found", roadID)
	}
	rating, err := e.ComputeRoadRating(roadID)
	if err != nil {
		return nil, err
	}
	rows, err := e.Ratings.ListByRoad(roadID)
	if err != nil {
		return nil, err
	}

	summary := &RoadSummary{Road: *road, Rating: rating, Segments: rows}
	e.cacheSummary(ctx, roadID, summary)
	return summary, nil
}

func (e *DefaultEngine) cachedSummary(ctx context.Context, roadID string) *RoadSummary {
	if e.Cache == nil {
		return nil
	}
	raw, err := e.Cache.Get(ctx, utils.RatingCachePrefix+roadID).Result()
	if err != nil {
		return nil
	}
	var summary RoadSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func (e *DefaultEngine) cacheSummary(ctx context.Context, roadID string, summary *RoadSummary) {
	if e.Cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, utils.RatingCachePrefix+roadID, raw, utils.RatingCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache road summary", zap.String("roadId", roadID), zap.Error(err))
	}
}

func (e *DefaultEngine) invalidate(ctx context.Context, roadID string) {
	if e.Cache == nil {
		return
	}
	if err := e.Cache.Del(ctx, utils.RatingCachePrefix+roadID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate road summary cache", zap.String("roadId", roadID), zap.Error(err))
	}
}

func segmentIDs(segments []models.RoadSegment) []string {
	ids := make([]string, len(segments))
	for i, s := range segments {
		ids[i] = s.ID
	}
	return ids
}
