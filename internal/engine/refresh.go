package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ekiden-tracker/internal/logger"
	"github.com/yourusername/ekiden-tracker/internal/metrics"
	"github.com/yourusername/ekiden-tracker/internal/models"
	"github.com/yourusername/ekiden-tracker/internal/provider"
	"github.com/yourusername/ekiden-tracker/internal/standings"
)

// RefreshService runs refresh cycles against a document provider and
// publishes snapshots to the store.
type RefreshService struct {
	provider provider.Provider
	store    *SnapshotStore
	logger   *logrus.Logger
	raceLog  *logger.RaceLogger
}

// NewRefreshService creates a refresh service
func NewRefreshService(p provider.Provider, store *SnapshotStore, baseLogger *logrus.Logger) *RefreshService {
	return &RefreshService{
		provider: p,
		store:    store,
		logger:   baseLogger,
		raceLog:  logger.NewRaceLogger(baseLogger),
	}
}

// Store returns the snapshot store the service publishes to
func (s *RefreshService) Store() *SnapshotStore {
	return s.store
}

// fetchedDocuments collects the results of one cycle's concurrent fetches
type fetchedDocuments struct {
	report    *models.LiveReport
	results   models.IndividualResults
	config    *models.RaceConfig
	locations []models.RunnerLocation
}

// Refresh runs one full cycle: fetch every document, rebuild all derived
// views, publish the snapshot. If any document fails the previous snapshot
// stays published untouched.
func (s *RefreshService) Refresh(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	docs, err := s.fetchAll(ctx)
	if err != nil {
		metrics.RecordRefreshFailure()
		return nil, err
	}

	previous := s.store.Latest()
	snap := buildSnapshot(docs.report, docs.results, docs.config, docs.locations, previous)

	for _, ev := range snap.Events {
		metrics.RecordRankEvent(string(ev.Kind))
		if ev.Kind == standings.EventFinish {
			if team := snap.Report.TeamByID(ev.TeamID); team != nil {
				s.raceLog.LogTeamFinish(team.ID, team.Name, team.GetFinishDay(), ev.ToRank, team.TotalDistance)
				continue
			}
		}
		s.raceLog.LogRankEvent(string(ev.Kind), ev.TeamID, ev.TeamName, ev.FromRank, ev.ToRank, ev.RaceDay)
	}

	s.store.SetLatest(snap)

	finished := 0
	for _, team := range snap.Report.Teams {
		if team.FinishDay != nil {
			finished++
		}
	}
	metrics.UpdateRaceGauges(snap.RaceDay, len(snap.Report.Teams), finished)
	metrics.RecordRefreshSuccess(time.Since(start).Seconds())

	s.raceLog.LogRefreshCycle(snap.CycleID.String(), snap.RaceDay, len(snap.Report.Teams), time.Since(start))

	return snap, nil
}

// fetchAll retrieves the four per-cycle documents concurrently. All four
// must succeed; a single failure discards the whole batch.
func (s *RefreshService) fetchAll(ctx context.Context) (*fetchedDocuments, error) {
	var (
		docs fetchedDocuments
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	fail := func(document string, err error) {
		metrics.RecordDocumentFetchError(document)
		s.raceLog.LogDocumentFailure(document, s.provider.Name(), err)
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		report, err := s.provider.FetchLiveReport(ctx)
		if err != nil {
			fail(provider.DocLiveReport, err)
			return
		}
		docs.report = report
	}()
	go func() {
		defer wg.Done()
		results, err := s.provider.FetchIndividualResults(ctx)
		if err != nil {
			fail(provider.DocIndividualResults, err)
			return
		}
		docs.results = results
	}()
	go func() {
		defer wg.Done()
		cfg, err := s.provider.FetchRaceConfig(ctx)
		if err != nil {
			fail(provider.DocRaceConfig, err)
			return
		}
		docs.config = cfg
	}()
	go func() {
		defer wg.Done()
		locations, err := s.provider.FetchRunnerLocations(ctx)
		if err != nil {
			fail(provider.DocRunnerLocations, err)
			return
		}
		docs.locations = locations
	}()
	wg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %d of 4 documents failed: %v",
			models.ErrDocumentUnavailable, len(errs), errs[0])
	}
	return &docs, nil
}

// CoursePath returns the course polyline, fetching it through the provider
// when the cached copy has expired. The polyline is optional; map modes
// that do not frame the course work without it.
func (s *RefreshService) CoursePath(ctx context.Context) (models.CoursePath, error) {
	if path, ok := s.store.CoursePath(); ok {
		return path, nil
	}

	path, err := s.provider.FetchCoursePath(ctx)
	if err != nil {
		metrics.RecordDocumentFetchError(provider.DocCoursePath)
		return nil, err
	}

	s.store.SetCoursePath(path)
	s.logger.WithField("points", len(path)).Debug("Course path refreshed")
	return path, nil
}
