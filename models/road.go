package models

import "time"

// Road is a named stretch of road owned by the annotator who mapped it.
// IsVerified flips once every segment carries at least one approved label.
type Road struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Start       GeoPoint  `bson:"start" json:"start"`
	End         GeoPoint  `bson:"end" json:"end"`
	AnnotatorID string    `bson:"annotatorId" json:"annotatorId"`
	AdminID     string    `bson:"adminId,omitempty" json:"adminId,omitempty"`
	IsVerified  bool      `bson:"isVerified" json:"isVerified"`
	RiskScore   float64   `bson:"riskScore,omitempty" json:"riskScore,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// RoadSegment is the unit of labeling and rating.
type RoadSegment struct {
	ID        string    `bson:"id" json:"id"`
	RoadID    string    `bson:"roadId" json:"roadId"`
	Start     GeoPoint  `bson:"start" json:"start"`
	End       GeoPoint  `bson:"end" json:"end"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
