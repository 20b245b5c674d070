package annotator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsafe/models"
)

type fakeAnnotatorRepo struct {
	byID map[string]*models.Annotator
}

func newFakeRepo(as ...*models.Annotator) *fakeAnnotatorRepo {
	repo := &fakeAnnotatorRepo{byID: make(map[string]*models.Annotator)}
	for _, a := range as {
		repo.byID[a.ID] = a
	}
	return repo
}

func (f *fakeAnnotatorRepo) Create(a *models.Annotator) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeAnnotatorRepo) GetByID(id string) (*models.Annotator, error) {
	return f.byID[id], nil
}
func (f *fakeAnnotatorRepo) GetByEmail(email string) (*models.Annotator, error) {
	for _, a := range f.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}
func (f *fakeAnnotatorRepo) IncrementPenalty(id string) (*models.Annotator, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, errors.New("annotator not found")
	}
	a.PenaltyScore++
	return a, nil
}
func (f *fakeAnnotatorRepo) Suspend(id string, at time.Time) error {
	a := f.byID[id]
	a.IsSuspended = true
	a.SuspendedAt = &at
	return nil
}
func (f *fakeAnnotatorRepo) Reactivate(id string) error {
	a := f.byID[id]
	a.IsSuspended = false
	a.PenaltyScore = 0
	a.SuspendedAt = nil
	a.SuspensionRemarks = ""
	return nil
}
func (f *fakeAnnotatorRepo) SetSuspensionRemarks(id, remarks string) error {
	f.byID[id].SuspensionRemarks = remarks
	return nil
}
func (f *fakeAnnotatorRepo) ListSuspended() ([]models.Annotator, error) {
	var out []models.Annotator
	for _, a := range f.byID {
		if a.IsSuspended {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (f *fakeAnnotatorRepo) ListAtRisk(minPenalty int) ([]models.Annotator, error) {
	var out []models.Annotator
	for _, a := range f.byID {
		if !a.IsSuspended && a.PenaltyScore >= minPenalty {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (f *fakeAnnotatorRepo) ListAll(search string) ([]models.Annotator, error) { return nil, nil }
func (f *fakeAnnotatorRepo) Count() (int64, error)                            { return int64(len(f.byID)), nil }

func TestEnsureActive(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1"})
	svc := NewService(repo)

	a, err := svc.EnsureActive("a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
}

func TestEnsureActiveSuspended(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{
		ID:                "a1",
		PenaltyScore:      3,
		IsSuspended:       true,
		SuspensionRemarks: "needs retraining",
	})
	svc := NewService(repo)

	_, err := svc.EnsureActive("a1")
	var suspended *SuspendedError
	require.ErrorAs(t, err, &suspended)
	assert.Equal(t, 3, suspended.PenaltyScore)
	assert.Equal(t, "needs retraining", suspended.Remarks)
}

func TestEnsureActiveUnknown(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.EnsureActive("ghost")
	assert.Error(t, err)
}

func TestRecordRejectionBelowThreshold(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1", PenaltyScore: 0})
	svc := NewService(repo)

	outcome, err := svc.RecordRejection("a1")
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.PenaltyScore)
	assert.False(t, outcome.IsSuspended)
	assert.False(t, outcome.NewlySuspended)
}

func TestRecordRejectionCrossesThreshold(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1", PenaltyScore: 2})
	svc := NewService(repo)

	outcome, err := svc.RecordRejection("a1")
	require.NoError(t, err)
	assert.Equal(t, 3, outcome.PenaltyScore)
	assert.True(t, outcome.IsSuspended)
	assert.True(t, outcome.NewlySuspended)

	a := repo.byID["a1"]
	assert.True(t, a.IsSuspended)
	require.NotNil(t, a.SuspendedAt)
}

func TestRecordRejectionAlreadySuspended(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1", PenaltyScore: 3, IsSuspended: true})
	svc := NewService(repo)

	outcome, err := svc.RecordRejection("a1")
	require.NoError(t, err)
	assert.Equal(t, 4, outcome.PenaltyScore)
	assert.True(t, outcome.IsSuspended)
	assert.False(t, outcome.NewlySuspended, "re-suspending must not re-notify")
}

func TestReactivateResetsPenalty(t *testing.T) {
	now := time.Now().UTC()
	repo := newFakeRepo(&models.Annotator{
		ID:                "a1",
		PenaltyScore:      5,
		IsSuspended:       true,
		SuspendedAt:       &now,
		SuspensionRemarks: "retrained on intersection labels",
	})
	svc := NewService(repo)

	require.NoError(t, svc.Reactivate("a1"))

	a := repo.byID["a1"]
	assert.False(t, a.IsSuspended)
	assert.Zero(t, a.PenaltyScore)
	assert.Nil(t, a.SuspendedAt)
	assert.Empty(t, a.SuspensionRemarks)
}

func TestReactivateActiveAnnotatorFails(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1"})
	svc := NewService(repo)
	assert.Error(t, svc.Reactivate("a1"))
}

func TestAddTrainingRemarks(t *testing.T) {
	repo := newFakeRepo(&models.Annotator{ID: "a1", IsSuspended: true})
	svc := NewService(repo)

	require.NoError(t, svc.AddTrainingRemarks("a1", "completed refresher"))
	assert.Equal(t, "completed refresher", repo.byID["a1"].SuspensionRemarks)

	assert.Error(t, svc.AddTrainingRemarks("a1", ""))
}

func TestListAtRiskExcludesSuspended(t *testing.T) {
	repo := newFakeRepo(
		&models.Annotator{ID: "a1", PenaltyScore: 2},
		&models.Annotator{ID: "a2", PenaltyScore: 3, IsSuspended: true},
		&models.Annotator{ID: "a3", PenaltyScore: 0},
	)
	svc := NewService(repo)

	atRisk, err := svc.ListAtRisk()
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "a1", atRisk[0].ID)
}
