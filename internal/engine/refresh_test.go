package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ekiden-tracker/internal/models"
	"github.com/yourusername/ekiden-tracker/internal/provider"
	"github.com/yourusername/ekiden-tracker/internal/standings"
)

// stubProvider serves canned documents and lets tests fail individual ones
type stubProvider struct {
	report    *models.LiveReport
	results   models.IndividualResults
	config    *models.RaceConfig
	locations []models.RunnerLocation
	course    models.CoursePath

	reportErr    error
	resultsErr   error
	configErr    error
	locationsErr error
	courseErr    error

	courseFetches int
}

func (p *stubProvider) FetchLiveReport(ctx context.Context) (*models.LiveReport, error) {
	if p.reportErr != nil {
		return nil, p.reportErr
	}
	return p.report, nil
}

func (p *stubProvider) FetchIndividualResults(ctx context.Context) (models.IndividualResults, error) {
	if p.resultsErr != nil {
		return nil, p.resultsErr
	}
	return p.results, nil
}

func (p *stubProvider) FetchRaceConfig(ctx context.Context) (*models.RaceConfig, error) {
	if p.configErr != nil {
		return nil, p.configErr
	}
	return p.config, nil
}

func (p *stubProvider) FetchRunnerLocations(ctx context.Context) ([]models.RunnerLocation, error) {
	if p.locationsErr != nil {
		return nil, p.locationsErr
	}
	return p.locations, nil
}

func (p *stubProvider) FetchCoursePath(ctx context.Context) (models.CoursePath, error) {
	p.courseFetches++
	if p.courseErr != nil {
		return nil, p.courseErr
	}
	return p.course, nil
}

func (p *stubProvider) Name() string { return "stub" }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func intPtr(v int) *int { return &v }

func testProvider() *stubProvider {
	return &stubProvider{
		report: &models.LiveReport{
			RaceDay:    3,
			UpdateTime: "08:00",
			Teams: []models.TeamEntry{
				{ID: 1, Name: "Alpha", Runner: "1Aoki", NextRunner: "Ueda", CurrentLeg: 2,
					TodayDistance: 12.5, TotalDistance: 61.0, OverallRank: intPtr(1), PreviousRank: 2},
				{ID: 2, Name: "Beta", Runner: "1Baba", NextRunner: "Endo", CurrentLeg: 2,
					TodayDistance: 11.0, TotalDistance: 58.0, OverallRank: intPtr(2), PreviousRank: 1},
			},
		},
		results: models.IndividualResults{
			"Aoki": {TeamID: 1, TotalDistance: 61.0, Records: []models.RunnerRecord{
				{Day: 1, Leg: 1, Distance: 20.0},
				{Day: 2, Leg: 1, Distance: 21.0},
				{Day: 3, Leg: 2, Distance: 20.0},
			}},
			"Baba": {TeamID: 2, TotalDistance: 58.0, Records: []models.RunnerRecord{
				{Day: 1, Leg: 1, Distance: 19.0},
				{Day: 2, Leg: 1, Distance: 20.0},
				{Day: 3, Leg: 2, Distance: 19.0},
			}},
		},
		config: &models.RaceConfig{
			Teams: []models.RosterTeam{
				{ID: 1, Name: "Alpha", Runners: []string{"Aoki", "Ueda"}},
				{ID: 2, Name: "Beta", Runners: []string{"Baba", "Endo"}},
			},
			LegBoundaries: models.LegBoundaries{50, 120},
		},
		locations: []models.RunnerLocation{
			{Rank: 1, TeamName: "Alpha", Latitude: 35.0, Longitude: 139.0, TotalDistanceKm: 61.0},
			{Rank: 2, TeamName: "Beta", Latitude: 34.9, Longitude: 138.9, TotalDistanceKm: 58.0},
		},
		course: models.CoursePath{
			{Lat: 35.0, Lng: 139.0},
			{Lat: 34.0, Lng: 138.0},
		},
	}
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, 3, snap.RaceDay)
	assert.Equal(t, "08:00", snap.UpdateTime)
	assert.Len(t, snap.Standings, 2)
	assert.Equal(t, 1, snap.Standings[0].TeamID)
	assert.NotEqual(t, [16]byte{}, [16]byte(snap.CycleID))

	assert.Same(t, snap, svc.Store().Latest())
}

func TestRefreshFailureLeavesPreviousSnapshot(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// Any single document failing discards the whole cycle
	p.locationsErr = provider.NewProviderError("stub", provider.DocRunnerLocations,
		provider.ErrCodeNetworkError, "connection refused", nil)

	snap, err := svc.Refresh(context.Background())
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, models.ErrDocumentUnavailable)

	assert.Same(t, first, svc.Store().Latest())
}

func TestRefreshBeforeFirstSuccess(t *testing.T) {
	p := testProvider()
	p.reportErr = provider.NewProviderError("stub", provider.DocLiveReport,
		provider.ErrCodeNotFound, "document not found", nil)
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	snap, err := svc.Refresh(context.Background())
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, models.ErrDocumentUnavailable)
	assert.Nil(t, svc.Store().Latest())
}

func TestRefreshLastWriteWins(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.CycleID, second.CycleID)
	assert.Same(t, second, svc.Store().Latest())
}

func TestRefreshDetectsEventsAgainstPrevious(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, first.Events)

	// Beta overtakes Alpha on the next cycle
	p.report = &models.LiveReport{
		RaceDay:    4,
		UpdateTime: "08:00",
		Teams: []models.TeamEntry{
			{ID: 1, Name: "Alpha", Runner: "1Aoki", CurrentLeg: 2,
				TodayDistance: 9.0, TotalDistance: 70.0, OverallRank: intPtr(2), PreviousRank: 1},
			{ID: 2, Name: "Beta", Runner: "1Baba", CurrentLeg: 2,
				TodayDistance: 14.0, TotalDistance: 72.0, OverallRank: intPtr(1), PreviousRank: 2},
		},
	}

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, second.Events, 1)
	assert.Equal(t, standings.EventLeadChange, second.Events[0].Kind)
	assert.Equal(t, 2, second.Events[0].TeamID)
}

func TestCoursePathCached(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	path, err := svc.CoursePath(context.Background())
	require.NoError(t, err)
	assert.Len(t, path, 2)
	assert.Equal(t, 1, p.courseFetches)

	// Second call is served from the cache
	again, err := svc.CoursePath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, p.courseFetches)
}

func TestCoursePathFetchError(t *testing.T) {
	p := testProvider()
	p.courseErr = provider.NewProviderError("stub", provider.DocCoursePath,
		provider.ErrCodeNotFound, "document not found", nil)
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	path, err := svc.CoursePath(context.Background())
	assert.Nil(t, path)
	assert.Error(t, err)
}

func TestSnapshotFinalGoal(t *testing.T) {
	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), quietLogger())

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 120.0, snap.FinalGoal(), 1e-9)

	var empty Snapshot
	assert.Zero(t, empty.FinalGoal())
}

func TestRefreshEmitsRaceLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	p := testProvider()
	svc := NewRefreshService(p, NewSnapshotStore(), log)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// Beta overtakes Alpha on the next cycle
	p.report = &models.LiveReport{
		RaceDay:    4,
		UpdateTime: "08:00",
		Teams: []models.TeamEntry{
			{ID: 1, Name: "Alpha", Runner: "1Aoki", CurrentLeg: 2,
				TodayDistance: 9.0, TotalDistance: 70.0, OverallRank: intPtr(2), PreviousRank: 1},
			{ID: 2, Name: "Beta", Runner: "1Baba", CurrentLeg: 2,
				TodayDistance: 14.0, TotalDistance: 72.0, OverallRank: intPtr(1), PreviousRank: 2},
		},
	}
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	var cycleLogged, eventLogged bool
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["component"] != "race" {
			continue
		}
		switch entry["msg"] {
		case "Refresh cycle completed":
			cycleLogged = true
			assert.NotEmpty(t, entry["cycle_id"])
		case "Rank event detected":
			eventLogged = true
			assert.Equal(t, "lead_change", entry["kind"])
			assert.Equal(t, "Beta", entry["team_name"])
		}
	}
	assert.True(t, cycleLogged, "cycle completion must be logged with the race component")
	assert.True(t, eventLogged, "rank events must be logged with the race component")
}
