package models

import "time"

// Notification types.
const (
	NotifLabelSubmitted    = "LABEL_SUBMITTED"
	NotifLabelApproved     = "LABEL_APPROVED"
	NotifLabelRejected     = "LABEL_REJECTED"
	NotifAssignment        = "ASSIGNMENT"
	NotifComplaintResolved = "COMPLAINT_RESOLVED"
	NotifComplaintUpdate   = "COMPLAINT_UPDATE"
	NotifFeedback          = "FEEDBACK"
	NotifInfo              = "INFO"
)

// Notification is a persisted in-app message addressed by email. Delivery
// channels (push, mail) are outside this service; rows are the contract.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	Email     string            `bson:"email" json:"email"`
	Message   string            `bson:"message" json:"message"`
	Type      string            `bson:"type" json:"type"`
	Metadata  map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IsRead    bool              `bson:"isRead" json:"isRead"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
