package models

import "time"

// StarRating is the derived safety rating row for one segment. Rows are
// replaced wholesale whenever the road's verified-label set changes; they are
// never user-authored and never accumulate.
type StarRating struct {
	ID          string    `bson:"id" json:"id"`
	SegmentID   string    `bson:"segmentId" json:"segmentId"`
	RoadID      string    `bson:"roadId" json:"roadId"`
	RatingValue int       `bson:"ratingValue" json:"ratingValue"`
	RiskScore   float64   `bson:"riskScore" json:"riskScore"`
	SafetyScore float64   `bson:"safetyScore" json:"safetyScore"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// RatingBreakdown carries the per-category averages behind a road rating.
// A category with no contributing labels reports zero.
type RatingBreakdown struct {
	SpeedScore        float64 `json:"speedScore"`
	RoadsideScore     float64 `json:"roadsideScore"`
	IntersectionScore float64 `json:"intersectionScore"`
}

// RoadRating is the computed road-level rating. Confidence is the share of
// category weight actually backed by data, as a percentage (100 = all three
// categories present).
type RoadRating struct {
	Rating     float64         `json:"rating"`
	Breakdown  RatingBreakdown `json:"breakdown"`
	LabelCount int             `json:"labelCount"`
	Confidence float64         `json:"confidence"`
}
