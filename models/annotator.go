package models

import "time"

// Annotator holds the reliability state for one labeling account.
//
// PenaltyScore counts rejected labels and only ever goes up; reactivation is
// the single path that resets it. IsSuspended is true only after the counter
// reaches SuspensionThreshold, and a suspended annotator is blocked from
// submitting labels until an admin reactivates them.
type Annotator struct {
	ID                string     `bson:"id" json:"id"`
	UserID            string     `bson:"userId" json:"userId"`
	Email             string     `bson:"email" json:"email"`
	WorkArea          string     `bson:"workArea,omitempty" json:"workArea,omitempty"`
	PenaltyScore      int        `bson:"penaltyScore" json:"penaltyScore"`
	IsSuspended       bool       `bson:"isSuspended" json:"isSuspended"`
	SuspendedAt       *time.Time `bson:"suspendedAt,omitempty" json:"suspendedAt,omitempty"`
	SuspensionRemarks string     `bson:"suspensionRemarks,omitempty" json:"suspensionRemarks,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
}

// SuspensionThreshold is the penalty score at which an annotator is suspended.
const SuspensionThreshold = 3

// AtRiskThreshold is the penalty score at which an annotator shows up on the
// admin warning list while still active.
const AtRiskThreshold = 2
