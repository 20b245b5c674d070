package models

import "time"

// Feedback lifecycle states.
const (
	FeedbackPending    = "PENDING"
	FeedbackInProgress = "IN_PROGRESS"
	FeedbackResolved   = "RESOLVED"
)

// Feedback kinds.
const (
	FeedbackTypeComplaint = "COMPLAINT"
	FeedbackTypeFeedback  = "FEEDBACK"
)

// Feedback is a traveller-submitted issue against a road or segment. It moves
// PENDING -> IN_PROGRESS (assigned to an annotator) -> RESOLVED (closed by
// exactly one approved label, recorded in ResolvedLabelID).
type Feedback struct {
	ID                  string     `bson:"id" json:"id"`
	Title               string     `bson:"title" json:"title"`
	Description         string     `bson:"description" json:"description"`
	ImageURL            string     `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Coordinates         *GeoPoint  `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Status              string     `bson:"status" json:"status"`
	FeedbackType        string     `bson:"feedbackType" json:"feedbackType"`
	Priority            int        `bson:"priority" json:"priority"`
	Email               string     `bson:"email" json:"email"`
	SegmentID           string     `bson:"segmentId,omitempty" json:"segmentId,omitempty"`
	RoadID              string     `bson:"roadId,omitempty" json:"roadId,omitempty"`
	AssignedAnnotatorID string     `bson:"assignedAnnotatorId,omitempty" json:"assignedAnnotatorId,omitempty"`
	AdminRemarks        string     `bson:"adminRemarks,omitempty" json:"adminRemarks,omitempty"`
	AnnotatorRemarks    string     `bson:"annotatorRemarks,omitempty" json:"annotatorRemarks,omitempty"`
	ResolvedLabelID     string     `bson:"resolvedLabelId,omitempty" json:"resolvedLabelId,omitempty"`
	ResolvedAt          *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}
