package labelRepo

import (
	"context"
	"time"

	"roadsafe/models"
)

// LabelRepository defines persistence for labels, their sub-records and
// review rows. Multi-collection writes are transactional: a review decision
// commits or rolls back as a unit.
type LabelRepository interface {
	// CreateWithChildren inserts the label, any present sub-records and the
	// review row atomically.
	CreateWithChildren(ctx context.Context, detail *models.LabelDetail) error

	// GetDetail assembles a label with its sub-records and review row.
	// Returns (nil, nil) when no such label exists.
	GetDetail(labelID string) (*models.LabelDetail, error)

	// ApproveTransactionally marks the label verified, upserts its review to
	// APPROVED and cascade-deletes the superseded labels, all in one
	// transaction.
	ApproveTransactionally(ctx context.Context, labelID, adminID string, supersededIDs []string, at time.Time) error

	// RejectTransactionally records the REJECTED review decision and then
	// destroys the label with all sub-records and the review row itself.
	RejectTransactionally(ctx context.Context, labelID, adminID, remarks string, at time.Time) error

	ListVerifiedBySegments(segmentIDs []string) ([]models.LabelDetail, error)
	ListVerifiedByAnnotatorOnSegment(annotatorID, segmentID, excludeLabelID string) ([]models.Label, error)
	ListPendingReviews() ([]models.LabelDetail, error)

	// ListDetailsByAnnotator returns the annotator's labels with their
	// sub-records and review rows, newest first.
	ListDetailsByAnnotator(annotatorID string) ([]models.LabelDetail, error)

	CountPending() (int64, error)

	// CountVerifiedBySegment returns, per segment id, how many verified
	// labels it carries. Segments with none are present with a zero count.
	CountVerifiedBySegment(segmentIDs []string) (map[string]int64, error)

	// CountByAnnotators returns total and verified label counts per
	// annotator id. Annotators with no labels are present with zero counts.
	CountByAnnotators(annotatorIDs []string) (map[string]AnnotatorLabelCounts, error)
}

// AnnotatorLabelCounts is the per-annotator label volume used for approval
// statistics. Rejected labels are destroyed on rejection, so unverified
// labels are the ones still pending review.
type AnnotatorLabelCounts struct {
	Total    int64
	Verified int64
}
