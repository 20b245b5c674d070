package road

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsafe/models"
)

type fakeRoadRepo struct {
	roads    map[string]*models.Road
	segments map[string][]models.RoadSegment
}

func newFakeRoadRepo() *fakeRoadRepo {
	return &fakeRoadRepo{
		roads:    make(map[string]*models.Road),
		segments: make(map[string][]models.RoadSegment),
	}
}

func (r *fakeRoadRepo) CreateWithSegments(ctx context.Context, road *models.Road, segments []models.RoadSegment) error {
	r.roads[road.ID] = road
	r.segments[road.ID] = segments
	return nil
}
func (r *fakeRoadRepo) GetByID(id string) (*models.Road, error) { return r.roads[id], nil }
func (r *fakeRoadRepo) GetSegment(segmentID string) (*models.RoadSegment, error) {
	return nil, nil
}
func (r *fakeRoadRepo) ListSegments(roadID string) ([]models.RoadSegment, error) {
	return r.segments[roadID], nil
}
func (r *fakeRoadRepo) ListRoads(limit int64) ([]models.Road, error) {
	var out []models.Road
	for _, road := range r.roads {
		out = append(out, *road)
	}
	return out, nil
}
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
func (r *fakeAnnotatorRepo) GetByEmail(email string) (*models.Annotator, error)    { return nil, nil }
func (r *fakeAnnotatorRepo) IncrementPenalty(id string) (*models.Annotator, error) { return nil, nil }
func (r *fakeAnnotatorRepo) Suspend(id string, at time.Time) error                 { return nil }
func (r *fakeAnnotatorRepo) Reactivate(id string) error                            { return nil }
func (r *fakeAnnotatorRepo) SetSuspensionRemarks(id, remarks string) error         { return nil }
func (r *fakeAnnotatorRepo) ListSuspended() ([]models.Annotator, error)            { return nil, nil }
func (r *fakeAnnotatorRepo) ListAtRisk(minPenalty int) ([]models.Annotator, error) {
	return nil, nil
}
func (r *fakeAnnotatorRepo) ListAll(search string) ([]models.Annotator, error) { return nil, nil }
func (r *fakeAnnotatorRepo) Count() (int64, error)                             { return 0, nil }

func newTestService() (*Service, *fakeRoadRepo) {
	roads := newFakeRoadRepo()
	annotators := &fakeAnnotatorRepo{byID: map[string]*models.Annotator{
		"a1": {ID: "a1", Email: "ann@example.com"},
	}}
	return NewService(roads, annotators), roads
}

func TestCreateWithExplicitSegments(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.Create(context.Background(), CreateInput{
		AnnotatorID: "a1",
		Name:        "Mombasa Road",
		Start:       models.GeoPoint{Lat: -1.32, Lng: 36.85},
		End:         models.GeoPoint{Lat: -1.45, Lng: 36.96},
		Segments: []SegmentInput{
			{Start: models.GeoPoint{Lat: -1.32, Lng: 36.85}, End: models.GeoPoint{Lat: -1.38, Lng: 36.90}},
			{Start: models.GeoPoint{Lat: -1.38, Lng: 36.90}, End: models.GeoPoint{Lat: -1.45, Lng: 36.96}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Mombasa Road", result.Road.Name)
	assert.Equal(t, "a1", result.Road.AnnotatorID)
	assert.False(t, result.Road.IsVerified)
	require.Len(t, result.Segments, 2)
	for _, seg := range result.Segments {
		assert.Equal(t, result.Road.ID, seg.RoadID)
		assert.NotEmpty(t, seg.ID)
	}
	assert.Len(t, repo.segments[result.Road.ID], 2)
}

func TestCreateDefaultsToSingleSegment(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.Create(context.Background(), CreateInput{
		AnnotatorID: "a1",
		Name:        "Short Lane",
		Start:       models.GeoPoint{Lat: 0, Lng: 36},
		End:         models.GeoPoint{Lat: 0.1, Lng: 36.1},
	})
	require.NoError(t, err)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, result.Road.Start, result.Segments[0].Start)
	assert.Equal(t, result.Road.End, result.Segments[0].End)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{AnnotatorID: "a1"})
	assert.Error(t, err, "name is required")

	_, err = svc.Create(context.Background(), CreateInput{AnnotatorID: "ghost", Name: "X"})
	assert.Error(t, err, "unknown annotator")
}

func TestGetAssemblesSegments(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), CreateInput{
		AnnotatorID: "a1",
		Name:        "Ring Road",
		Start:       models.GeoPoint{Lat: 1, Lng: 36},
		End:         models.GeoPoint{Lat: 1.2, Lng: 36.2},
	})
	require.NoError(t, err)

	got, err := svc.Get(created.Road.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Road.ID, got.Road.ID)
	assert.Len(t, got.Segments, 1)

	_, err = svc.Get("ghost")
	assert.Error(t, err)
}
