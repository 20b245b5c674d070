package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	labelRepo "roadsafe/database/repository/label"
	"roadsafe/models"
	"roadsafe/services/annotator"
	"roadsafe/services/feedback"
	"roadsafe/services/notification"
	"roadsafe/services/rating"
)

// ---- fakes ----

type fakeLabelRepo struct {
	details map[string]*models.LabelDetail
}

func newFakeLabelRepo(ds ...*models.LabelDetail) *fakeLabelRepo {
	repo := &fakeLabelRepo{details: make(map[string]*models.LabelDetail)}
	for _, d := range ds {
		repo.details[d.Label.ID] = d
	}
	return repo
}

func (r *fakeLabelRepo) CreateWithChildren(ctx context.Context, detail *models.LabelDetail) error {
	r.details[detail.Label.ID] = detail
	return nil
}
func (r *fakeLabelRepo) GetDetail(labelID string) (*models.LabelDetail, error) {
	d, ok := r.details[labelID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (r *fakeLabelRepo) ApproveTransactionally(ctx context.Context, labelID, adminID string, supersededIDs []string, at time.Time) error {
	d, ok := r.details[labelID]
	if !ok {
		return errors.New("label not found")
	}
	d.Label.IsVerified = true
	d.Label.AdminID = adminID
	d.Label.VerifiedAt = &at
	if d.Review == nil {
		d.Review = &models.LabelReview{ID: "backfilled", LabelID: labelID, CreatedAt: at}
	}
	d.Review.Status = models.ReviewApproved
	d.Review.AdminID = adminID
	d.Review.ApprovedAt = &at
	for _, id := range supersededIDs {
		delete(r.details, id)
	}
	return nil
}
func (r *fakeLabelRepo) RejectTransactionally(ctx context.Context, labelID, adminID, remarks string, at time.Time) error {
	if _, ok := r.details[labelID]; !ok {
		return errors.New("label not found")
	}
	delete(r.details, labelID)
	return nil
}
func (r *fakeLabelRepo) ListVerifiedBySegments(segmentIDs []string) ([]models.LabelDetail, error) {
	var out []models.LabelDetail
	for _, d := range r.details {
		if !d.Label.IsVerified {
			continue
		}
		for _, id := range segmentIDs {
			if d.Label.SegmentID == id {
				out = append(out, *d)
				break
			}
		}
	}
	return out, nil
}
func (r *fakeLabelRepo) ListVerifiedByAnnotatorOnSegment(annotatorID, segmentID, excludeLabelID string) ([]models.Label, error) {
	var out []models.Label
	for _, d := range r.details {
		l := d.Label
		if l.IsVerified && l.AnnotatorID == annotatorID && l.SegmentID == segmentID && l.ID != excludeLabelID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakeLabelRepo) ListPendingReviews() ([]models.LabelDetail, error) {
	var out []models.LabelDetail
	for _, d := range r.details {
		if d.Review != nil && d.Review.Status == models.ReviewPending {
			out = append(out, *d)
		}
	}
	return out, nil
}
func (r *fakeLabelRepo) ListDetailsByAnnotator(annotatorID string) ([]models.LabelDetail, error) {
	var out []models.LabelDetail
	for _, d := range r.details {
		if d.Label.AnnotatorID == annotatorID {
			out = append(out, *d)
		}
	}
	return out, nil
}
func (r *fakeLabelRepo) CountPending() (int64, error) { return 0, nil }
func (r *fakeLabelRepo) CountByAnnotators(annotatorIDs []string) (map[string]labelRepo.AnnotatorLabelCounts, error) {
	out := make(map[string]labelRepo.AnnotatorLabelCounts, len(annotatorIDs))
	for _, id := range annotatorIDs {
		out[id] = labelRepo.AnnotatorLabelCounts{}
	}
	for _, d := range r.details {
		c := out[d.Label.AnnotatorID]
		c.Total++
		if d.Label.IsVerified {
			c.Verified++
		}
		out[d.Label.AnnotatorID] = c
	}
	return out, nil
}
func (r *fakeLabelRepo) CountVerifiedBySegment(segmentIDs []string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, id := range segmentIDs {
		out[id] = 0
	}
	for _, d := range r.details {
		if d.Label.IsVerified {
			out[d.Label.SegmentID]++
		}
	}
	return out, nil
}

type fakeRoadRepo struct {
	segments map[string]*models.RoadSegment
}

func (r *fakeRoadRepo) CreateWithSegments(ctx context.Context, road *models.Road, segments []models.RoadSegment) error {
	return nil
}
func (r *fakeRoadRepo) GetByID(id string) (*models.Road, error) { return nil, nil }
func (r *fakeRoadRepo) GetSegment(segmentID string) (*models.RoadSegment, error) {
	return r.segments[segmentID], nil
}
func (r *fakeRoadRepo) ListSegments(roadID string) ([]models.RoadSegment, error)     { return nil, nil }
func (r *fakeRoadRepo) ListRoads(limit int64) ([]models.Road, error)                 { return nil, nil }
func (r *fakeRoadRepo) ListByAnnotator(annotatorID string) ([]models.Road, error)    { return nil, nil }
func (r *fakeRoadRepo) MarkVerified(roadID, adminID string, riskScore float64) error { return nil }
func (r *fakeRoadRepo) Counts() (int64, int64, error)                                { return 0, 0, nil }

type fakeAnnotatorRepo struct {
	byID map[string]*models.Annotator
}

func (r *fakeAnnotatorRepo) Create(a *models.Annotator) error { return nil }
func (r *fakeAnnotatorRepo) GetByID(id string) (*models.Annotator, error) {
	return r.byID[id], nil
}
func (r *fakeAnnotatorRepo) GetByEmail(email string) (*models.Annotator, error) { return nil, nil }
func (r *fakeAnnotatorRepo) IncrementPenalty(id string) (*models.Annotator, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, errors.New("annotator not found")
	}
	a.PenaltyScore++
	return a, nil
}
func (r *fakeAnnotatorRepo) Suspend(id string, at time.Time) error {
	a := r.byID[id]
	a.IsSuspended = true
	a.SuspendedAt = &at
	return nil
}
func (r *fakeAnnotatorRepo) Reactivate(id string) error                    { return nil }
func (r *fakeAnnotatorRepo) SetSuspensionRemarks(id, remarks string) error { return nil }
func (r *fakeAnnotatorRepo) ListSuspended() ([]models.Annotator, error)    { return nil, nil }
func (r *fakeAnnotatorRepo) ListAtRisk(minPenalty int) ([]models.Annotator, error) {
	return nil, nil
}
func (r *fakeAnnotatorRepo) ListAll(search string) ([]models.Annotator, error) { return nil, nil }
func (r *fakeAnnotatorRepo) Count() (int64, error)                             { return 0, nil }

type fakeFeedbackRepo struct {
	byID map[string]*models.Feedback
}

func (r *fakeFeedbackRepo) Create(f *models.Feedback) error { return nil }
func (r *fakeFeedbackRepo) GetByID(id string) (*models.Feedback, error) {
	return r.byID[id], nil
}
func (r *fakeFeedbackRepo) Assign(id, annotatorID string, priority int, adminRemarks string) (*models.Feedback, error) {
	return nil, nil
}
func (r *fakeFeedbackRepo) Resolve(id, labelID string, at time.Time) error {
	f := r.byID[id]
	f.Status = models.FeedbackResolved
	f.ResolvedLabelID = labelID
	f.ResolvedAt = &at
	return nil
}
func (r *fakeFeedbackRepo) SetAnnotatorRemarks(id, remarks string) error {
	if f, ok := r.byID[id]; ok {
		f.AnnotatorRemarks = remarks
	}
	return nil
}
func (r *fakeFeedbackRepo) ListByStatus(status string) ([]models.Feedback, error) {
	return nil, nil
}
func (r *fakeFeedbackRepo) ListAssigned(annotatorID string, statuses []string) ([]models.Feedback, error) {
	return nil, nil
}
func (r *fakeFeedbackRepo) LatestInProgressFor(annotatorID string) (*models.Feedback, error) {
	return nil, nil
}
func (r *fakeFeedbackRepo) ListByEmail(email string) ([]models.Feedback, error) { return nil, nil }
func (r *fakeFeedbackRepo) CountByStatus(status string) (int64, error)          { return 0, nil }

type fakeNotificationRepo struct {
	rows []models.Notification
}

func (r *fakeNotificationRepo) Insert(n *models.Notification) error {
	r.rows = append(r.rows, *n)
	return nil
}
func (r *fakeNotificationRepo) InsertMany(ns []models.Notification) error {
	r.rows = append(r.rows, ns...)
	return nil
}
func (r *fakeNotificationRepo) ListByEmail(email string, limit int64) ([]models.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) MarkRead(id string) error { return nil }

type fakeUserRepo struct{}

func (fakeUserRepo) Create(u *models.User) error                   { return nil }
func (fakeUserRepo) GetByID(id string) (*models.User, error)       { return nil, nil }
func (fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (fakeUserRepo) ListAdmins() ([]models.User, error) {
	return []models.User{{Email: "admin@example.com", Role: models.RoleAdmin}}, nil
}

type fakeRatingEngine struct {
	refreshedRoads []string
	refreshErr     error
}

func (e *fakeRatingEngine) ComputeRoadRating(roadID string) (*models.RoadRating, error) {
	return nil, nil
}
func (e *fakeRatingEngine) RefreshRoadRating(ctx context.Context, roadID string) (*models.RoadRating, error) {
	if e.refreshErr != nil {
		return nil, e.refreshErr
	}
	e.refreshedRoads = append(e.refreshedRoads, roadID)
	return &models.RoadRating{Rating: 4.0, Confidence: 80}, nil
}
func (e *fakeRatingEngine) RoadSummary(ctx context.Context, roadID string) (*rating.RoadSummary, error) {
	return nil, nil
}

// ---- fixture ----

type fixture struct {
	svc           *Service
	labels        *fakeLabelRepo
	annotators    *fakeAnnotatorRepo
	feedbacks     *fakeFeedbackRepo
	notifications *fakeNotificationRepo
	engine        *fakeRatingEngine
}

func newFixture(labels *fakeLabelRepo) *fixture {
	annotators := &fakeAnnotatorRepo{byID: map[string]*models.Annotator{
		"a1": {ID: "a1", Email: "ann@example.com"},
	}}
	roads := &fakeRoadRepo{segments: map[string]*models.RoadSegment{
		"s1": {ID: "s1", RoadID: "r1"},
	}}
	feedbacks := &fakeFeedbackRepo{byID: make(map[string]*models.Feedback)}
	notifications := &fakeNotificationRepo{}
	engine := &fakeRatingEngine{}

	notifier := notification.NewService(notifications, fakeUserRepo{})
	reliability := annotator.NewService(annotators)
	feedbackSvc := feedback.NewService(feedbacks, annotators, notifier)

	svc := NewService(labels, roads, annotators, reliability, feedbackSvc, engine, notifier)
	return &fixture{
		svc:           svc,
		labels:        labels,
		annotators:    annotators,
		feedbacks:     feedbacks,
		notifications: notifications,
		engine:        engine,
	}
}

func pendingLabel(id, annotatorID, segmentID string) *models.LabelDetail {
	return &models.LabelDetail{
		Label: models.Label{ID: id, SegmentID: segmentID, AnnotatorID: annotatorID},
		Intersection: &models.Intersection{
			ID: id + "-int", LabelID: id, Type: "roundabout", Quality: "adequate", Channelisation: "present",
		},
		Review: &models.LabelReview{ID: id + "-rev", LabelID: id, Status: models.ReviewPending},
	}
}

// ---- submission ----

func TestSubmitCreatesPendingLabel(t *testing.T) {
	f := newFixture(newFakeLabelRepo())

	detail, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID: "a1",
		SegmentID:   "s1",
		Roadside:    &RoadsideInput{LeftObject: "metal", RightObject: "concrete", DistanceObject: "5-10"},
	})
	require.NoError(t, err)

	assert.False(t, detail.Label.IsVerified)
	require.NotNil(t, detail.Review)
	assert.Equal(t, models.ReviewPending, detail.Review.Status)
	require.NotNil(t, detail.Roadside)
	assert.Equal(t, detail.Label.ID, detail.Roadside.LabelID)

	stored, _ := f.labels.GetDetail(detail.Label.ID)
	require.NotNil(t, stored)

	// admins and the submitter both hear about it
	var emails []string
	for _, n := range f.notifications.rows {
		emails = append(emails, n.Email)
	}
	assert.Contains(t, emails, "admin@example.com")
	assert.Contains(t, emails, "ann@example.com")
}

func TestSubmitSuspendedAnnotatorBlocked(t *testing.T) {
	f := newFixture(newFakeLabelRepo())
	f.annotators.byID["a1"].IsSuspended = true
	f.annotators.byID["a1"].PenaltyScore = 3

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID: "a1",
		SegmentID:   "s1",
		Speed:       &SpeedInput{SpeedLimit: "present", Management: "60"},
	})

	var suspended *annotator.SuspendedError
	require.ErrorAs(t, err, &suspended)
	assert.Equal(t, 3, suspended.PenaltyScore)
	assert.Empty(t, f.labels.details, "suspension must gate before any write")
	assert.Empty(t, f.notifications.rows)
}

func TestSubmitRequiresAttributeData(t *testing.T) {
	f := newFixture(newFakeLabelRepo())

	_, err := f.svc.Submit(context.Background(), SubmitInput{AnnotatorID: "a1", SegmentID: "s1"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSubmitUnknownSegment(t *testing.T) {
	f := newFixture(newFakeLabelRepo())

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID: "a1",
		SegmentID:   "ghost",
		Speed:       &SpeedInput{SpeedLimit: "present", Management: "60"},
	})
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestSubmitCarriesOriginFeedbackID(t *testing.T) {
	f := newFixture(newFakeLabelRepo())
	f.feedbacks.byID["f1"] = &models.Feedback{
		ID:                  "f1",
		Title:               "missing barrier",
		Status:              models.FeedbackInProgress,
		AssignedAnnotatorID: "a1",
		Email:               "traveller@example.com",
	}

	detail, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID:      "a1",
		SegmentID:        "s1",
		Speed:            &SpeedInput{SpeedLimit: "present", Management: "60"},
		OriginFeedbackID: "f1",
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", detail.Review.OriginFeedbackID)
}

func TestSubmitRelabelAssignedToOtherAnnotatorForbidden(t *testing.T) {
	labels := newFakeLabelRepo()
	f := newFixture(labels)
	f.feedbacks.byID["f1"] = &models.Feedback{
		ID:                  "f1",
		Title:               "missing barrier",
		Status:              models.FeedbackInProgress,
		AssignedAnnotatorID: "a2",
		Email:               "traveller@example.com",
	}

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID:      "a1",
		SegmentID:        "s1",
		Speed:            &SpeedInput{SpeedLimit: "present", Management: "60"},
		OriginFeedbackID: "f1",
	})
	require.ErrorIs(t, err, ErrComplaintNotAssigned)

	assert.Empty(t, labels.details)
	assert.Empty(t, f.notifications.rows)
}

func TestSubmitRelabelUnknownComplaint(t *testing.T) {
	labels := newFakeLabelRepo()
	f := newFixture(labels)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID:      "a1",
		SegmentID:        "s1",
		Speed:            &SpeedInput{SpeedLimit: "present", Management: "60"},
		OriginFeedbackID: "ghost",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "feedbackID", validation.Field)
	assert.Empty(t, labels.details)
}

func TestSubmitRelabelRecordsRemarksAndNotifiesComplainant(t *testing.T) {
	f := newFixture(newFakeLabelRepo())
	f.feedbacks.byID["f1"] = &models.Feedback{
		ID:                  "f1",
		Title:               "missing barrier",
		Status:              models.FeedbackInProgress,
		AssignedAnnotatorID: "a1",
		Email:               "traveller@example.com",
	}

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID:      "a1",
		SegmentID:        "s1",
		Roadside:         &RoadsideInput{LeftObject: "metal", DistanceObject: "10+"},
		OriginFeedbackID: "f1",
		AnnotatorRemarks: "barrier replaced last month",
	})
	require.NoError(t, err)

	assert.Equal(t, "barrier replaced last month", f.feedbacks.byID["f1"].AnnotatorRemarks)

	var emails []string
	for _, n := range f.notifications.rows {
		emails = append(emails, n.Email)
	}
	assert.Contains(t, emails, "traveller@example.com")
}

func TestSubmitAdminNotificationNamesCategories(t *testing.T) {
	f := newFixture(newFakeLabelRepo())

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		AnnotatorID: "a1",
		SegmentID:   "s1",
		Roadside:    &RoadsideInput{LeftObject: "metal", DistanceObject: "10+"},
		Speed:       &SpeedInput{SpeedLimit: "present", Management: "60"},
	})
	require.NoError(t, err)

	var adminMsg string
	for _, n := range f.notifications.rows {
		if n.Email == "admin@example.com" {
			adminMsg = n.Message
		}
	}
	assert.Contains(t, adminMsg, "roadside")
	assert.Contains(t, adminMsg, "speed")
	assert.NotContains(t, adminMsg, "intersection")
}

// ---- approval ----

func TestApproveVerifiesAndRefreshesRating(t *testing.T) {
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1")))

	result, err := f.svc.Approve(context.Background(), "l1", "adm1", "")
	require.NoError(t, err)

	stored := f.labels.details["l1"]
	assert.True(t, stored.Label.IsVerified)
	assert.Equal(t, "adm1", stored.Label.AdminID)
	require.NotNil(t, stored.Label.VerifiedAt)
	assert.Equal(t, models.ReviewApproved, stored.Review.Status)

	require.NotNil(t, result.Rating)
	assert.Equal(t, []string{"r1"}, f.engine.refreshedRoads)
}

func TestApproveSupersedesOlderApprovedLabel(t *testing.T) {
	old := pendingLabel("l-old", "a1", "s1")
	old.Label.IsVerified = true
	old.Review.Status = models.ReviewApproved
	fresh := pendingLabel("l-new", "a1", "s1")
	other := pendingLabel("l-other", "a2", "s1")
	other.Label.IsVerified = true

	f := newFixture(newFakeLabelRepo(old, fresh, other))

	result, err := f.svc.Approve(context.Background(), "l-new", "adm1", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"l-old"}, result.SupersededLabels)
	assert.NotContains(t, f.labels.details, "l-old", "superseded label must be destroyed")
	assert.Contains(t, f.labels.details, "l-other", "other annotators' labels survive")
	assert.True(t, f.labels.details["l-new"].Label.IsVerified)
}

func TestApproveUnknownLabel(t *testing.T) {
	f := newFixture(newFakeLabelRepo())
	_, err := f.svc.Approve(context.Background(), "ghost", "adm1", "")
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestApproveResolvesComplaint(t *testing.T) {
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1")))
	f.feedbacks.byID["fb1"] = &models.Feedback{
		ID:     "fb1",
		Title:  "missing barrier",
		Status: models.FeedbackInProgress,
		Email:  "traveller@example.com",
	}

	result, err := f.svc.Approve(context.Background(), "l1", "adm1", "fb1")
	require.NoError(t, err)

	require.NotNil(t, result.ResolvedFeedback)
	assert.Equal(t, models.FeedbackResolved, result.ResolvedFeedback.Status)
	assert.Equal(t, "l1", result.ResolvedFeedback.ResolvedLabelID)
}

func TestApproveSurvivesRatingFailure(t *testing.T) {
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1")))
	f.engine.refreshErr = errors.New("rating store down")

	result, err := f.svc.Approve(context.Background(), "l1", "adm1", "")
	require.NoError(t, err, "rating refresh is a derived side effect, not part of the decision")
	assert.Nil(t, result.Rating)
	assert.True(t, f.labels.details["l1"].Label.IsVerified)
}

func TestApproveBackfillsMissingReviewRow(t *testing.T) {
	d := pendingLabel("l1", "a1", "s1")
	d.Review = nil
	f := newFixture(newFakeLabelRepo(d))

	_, err := f.svc.Approve(context.Background(), "l1", "adm1", "")
	require.NoError(t, err)

	stored := f.labels.details["l1"]
	require.NotNil(t, stored.Review)
	assert.Equal(t, models.ReviewApproved, stored.Review.Status)
}

// ---- rejection ----

func TestRejectDestroysLabelAndPenalises(t *testing.T) {
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1")))

	result, err := f.svc.Reject(context.Background(), "l1", "adm1", "wrong intersection type")
	require.NoError(t, err)

	assert.NotContains(t, f.labels.details, "l1")
	assert.Equal(t, 1, result.PenaltyScore)
	assert.False(t, result.IsSuspended)

	require.NotEmpty(t, f.notifications.rows)
	last := f.notifications.rows[len(f.notifications.rows)-1]
	assert.Equal(t, "ann@example.com", last.Email)
	assert.Contains(t, last.Message, "wrong intersection type")
}

func TestRejectThirdStrikeSuspends(t *testing.T) {
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1")))
	f.annotators.byID["a1"].PenaltyScore = 2

	result, err := f.svc.Reject(context.Background(), "l1", "adm1", "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.PenaltyScore)
	assert.True(t, result.IsSuspended)
	assert.True(t, result.NewlySuspended)
	assert.True(t, f.annotators.byID["a1"].IsSuspended)

	last := f.notifications.rows[len(f.notifications.rows)-1]
	assert.Contains(t, last.Message, "suspended")
}

func TestRejectUnknownLabel(t *testing.T) {
	f := newFixture(newFakeLabelRepo())
	_, err := f.svc.Reject(context.Background(), "ghost", "adm1", "")
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestRejectVerifiedLabelRefreshesRating(t *testing.T) {
	d := pendingLabel("l1", "a1", "s1")
	d.Label.IsVerified = true
	f := newFixture(newFakeLabelRepo(d))

	_, err := f.svc.Reject(context.Background(), "l1", "adm1", "stale data")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, f.engine.refreshedRoads)
}

func TestListPending(t *testing.T) {
	approved := pendingLabel("l2", "a1", "s1")
	approved.Review.Status = models.ReviewApproved
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1"), approved))

	pending, err := f.svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "l1", pending[0].Label.ID)
}

func TestListForAnnotatorIncludesReviewStatus(t *testing.T) {
	approved := pendingLabel("l2", "a1", "s1")
	approved.Review.Status = models.ReviewApproved
	approved.Label.IsVerified = true
	other := pendingLabel("l3", "a2", "s1")
	f := newFixture(newFakeLabelRepo(pendingLabel("l1", "a1", "s1"), approved, other))

	details, err := f.svc.ListForAnnotator("a1")
	require.NoError(t, err)
	require.Len(t, details, 2)

	statuses := make(map[string]string)
	for _, d := range details {
		require.NotNil(t, d.Review)
		statuses[d.Label.ID] = d.Review.Status
	}
	assert.Equal(t, models.ReviewPending, statuses["l1"])
	assert.Equal(t, models.ReviewApproved, statuses["l2"])
}
