package models

import "time"

// Review status values for a LabelReview.
const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

// Label is one annotator's assessment of one road segment at one point in
// time. Content is immutable after creation; corrections arrive as a brand
// new label that supersedes the old one on approval.
type Label struct {
	ID          string     `bson:"id" json:"id"`
	SegmentID   string     `bson:"segmentId" json:"segmentId"`
	AnnotatorID string     `bson:"annotatorId" json:"annotatorId"`
	AdminID     string     `bson:"adminId,omitempty" json:"adminId,omitempty"`
	Latitude    *float64   `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64   `bson:"longitude,omitempty" json:"longitude,omitempty"`
	IsVerified  bool       `bson:"isVerified" json:"isVerified"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	VerifiedAt  *time.Time `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
}

// Roadside captures the off-carriageway hazard picture on both sides of a
// segment. All fields are free-form categorical values from the client.
type Roadside struct {
	ID             string `bson:"id" json:"id"`
	LabelID        string `bson:"labelId" json:"labelId"`
	LeftObject     string `bson:"leftObject,omitempty" json:"leftObject,omitempty"`
	RightObject    string `bson:"rightObject,omitempty" json:"rightObject,omitempty"`
	DistanceObject string `bson:"distanceObject,omitempty" json:"distanceObject,omitempty"`
}

// Intersection captures junction type and condition on a segment.
type Intersection struct {
	ID             string `bson:"id" json:"id"`
	LabelID        string `bson:"labelId" json:"labelId"`
	Type           string `bson:"type,omitempty" json:"type,omitempty"`
	Quality        string `bson:"quality,omitempty" json:"quality,omitempty"`
	Channelisation string `bson:"channelisation,omitempty" json:"channelisation,omitempty"`
}

// Speed captures speed-management signage on a segment. Management is the
// posted speed bucket ("20".."120"); SpeedLimit records whether signage is
// present at all.
type Speed struct {
	ID         string `bson:"id" json:"id"`
	LabelID    string `bson:"labelId" json:"labelId"`
	SpeedLimit string `bson:"speedLimit,omitempty" json:"speedLimit,omitempty"`
	Management string `bson:"management,omitempty" json:"management,omitempty"`
}

// LabelReview is the 1:1 review workflow record for a Label.
//
// OriginFeedbackID links a relabel back to the complaint it was submitted
// for. It is a dedicated field rather than a marker inside Remarks, so the
// audit text and the structured linkage cannot corrupt each other.
type LabelReview struct {
	ID               string     `bson:"id" json:"id"`
	LabelID          string     `bson:"labelId" json:"labelId"`
	Status           string     `bson:"status" json:"status"`
	AdminID          string     `bson:"adminId,omitempty" json:"adminId,omitempty"`
	Remarks          string     `bson:"remarks,omitempty" json:"remarks,omitempty"`
	OriginFeedbackID string     `bson:"originFeedbackId,omitempty" json:"originFeedbackId,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	ApprovedAt       *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedAt       *time.Time `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
}

// LabelDetail is a label assembled with its sub-records and review row.
// Any of the pointers may be nil; a meaningful label has at least one of
// Roadside, Intersection, Speed.
type LabelDetail struct {
	Label        Label         `json:"label"`
	Roadside     *Roadside     `json:"roadside,omitempty"`
	Intersection *Intersection `json:"intersection,omitempty"`
	Speed        *Speed        `json:"speed,omitempty"`
	Review       *LabelReview  `json:"review,omitempty"`
}
