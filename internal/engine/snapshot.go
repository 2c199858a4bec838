// Package engine runs the refresh cycle: fetch every race document,
// recompute all derived views from scratch, and publish the result as one
// immutable snapshot. Partial fetches never mix with older data; a cycle
// either replaces the whole snapshot or leaves the previous one in place.
package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/ekiden-tracker/internal/models"
	"github.com/yourusername/ekiden-tracker/internal/standings"
)

// Snapshot is the complete state of one successful refresh cycle: the raw
// documents plus every derived view. It is built once and never mutated;
// readers may share it freely.
type Snapshot struct {
	CycleID    uuid.UUID `json:"cycleId"`
	FetchedAt  time.Time `json:"fetchedAt"`
	RaceDay    int       `json:"raceDay"`
	UpdateTime string    `json:"updateTime"`

	Report    *models.LiveReport       `json:"-"`
	Results   models.IndividualResults `json:"-"`
	Config    *models.RaceConfig       `json:"-"`
	Locations []models.RunnerLocation  `json:"-"`

	Standings    []standings.StandingsRow     `json:"standings"`
	Annotated    standings.AnnotatedResults   `json:"annotated"`
	ActiveLegs   []int                        `json:"activeLegs"`
	FinishedLegs []int                        `json:"finishedLegs"`
	LegPrizes    map[int][]standings.PrizeRow `json:"legPrizes"`
	Events       []standings.RankEvent        `json:"events"`
}

// FinalGoal returns the total race distance from the cycle's config
func (s *Snapshot) FinalGoal() float64 {
	if s.Config == nil {
		return 0
	}
	return s.Config.LegBoundaries.FinalGoal()
}

// buildSnapshot derives every view from freshly fetched documents.
// previous may be nil (first cycle); it only feeds event detection.
func buildSnapshot(report *models.LiveReport, results models.IndividualResults,
	cfg *models.RaceConfig, locations []models.RunnerLocation, previous *Snapshot) *Snapshot {

	snap := &Snapshot{
		CycleID:    uuid.New(),
		FetchedAt:  time.Now().UTC(),
		RaceDay:    report.RaceDay,
		UpdateTime: report.UpdateTime,
		Report:     report,
		Results:    results,
		Config:     cfg,
		Locations:  locations,
	}

	snap.Standings = standings.BuildStandings(report, cfg.LegBoundaries)
	snap.Annotated = standings.AnnotateLegRanks(results)
	snap.ActiveLegs = standings.ActiveLegs(report, cfg.LegBoundaries)
	snap.FinishedLegs = standings.FinishedLegs(report, cfg.LegBoundaries)
	snap.LegPrizes = standings.ComputeLegPrizes(results, snap.FinishedLegs)

	if previous != nil {
		snap.Events = standings.DetectRankEvents(previous.Report, report)
	}

	return snap
}
