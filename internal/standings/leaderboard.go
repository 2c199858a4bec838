package standings

import (
	"sort"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// LegState classifies a leaderboard row's relationship to the live race
type LegState string

const (
	// LegRunning means the runner's team is currently on this leg
	LegRunning LegState = "running"
	// LegFinishedToday means the team has moved past this leg and the
	// runner's last record on it is from the current race day
	LegFinishedToday LegState = "finishedToday"
	// LegPast means the runner completed this leg on an earlier day
	LegPast LegState = "past"
)

// LeaderboardRow is one row of the live per-leg leaderboard
type LeaderboardRow struct {
	RunnerName  string   `json:"runnerName"`
	DisplayName string   `json:"displayName"`
	TeamID      int      `json:"teamId"`
	TeamName    string   `json:"teamName"`
	LegDistance float64  `json:"legDistance"`
	Rank        int      `json:"rank"`
	State       LegState `json:"state"`
}

// ActiveLegs returns the distinct legs any team is currently running,
// leading leg first. Legs past the configured count (teams beyond the goal)
// are dropped.
func ActiveLegs(report *models.LiveReport, boundaries models.LegBoundaries) []int {
	if report == nil {
		return nil
	}
	seen := make(map[int]bool)
	var legs []int
	for _, t := range report.Teams {
		if !t.IsRanked() || t.CurrentLeg > boundaries.Legs() || seen[t.CurrentLeg] {
			continue
		}
		seen[t.CurrentLeg] = true
		legs = append(legs, t.CurrentLeg)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(legs)))
	return legs
}

// BuildLegLeaderboard ranks every runner with at least one record on the
// given leg by their summed distance over it, and tags each row with its
// live state. An empty result means no record on the leg yet, not an error.
func BuildLegLeaderboard(report *models.LiveReport, results models.IndividualResults, leg int) []LeaderboardRow {
	if report == nil {
		return nil
	}

	var rows []LeaderboardRow
	for name, runner := range results {
		team := report.TeamByID(runner.TeamID)
		if team == nil {
			continue
		}
		records := runner.RecordsForLeg(leg)
		if len(records) == 0 {
			continue
		}
		total := 0.0
		for _, rec := range records {
			total += rec.Distance
		}
		rows = append(rows, LeaderboardRow{
			RunnerName:  name,
			DisplayName: models.FormatRunnerName(name),
			TeamID:      team.ID,
			TeamName:    team.Name,
			LegDistance: total,
			State:       legState(team, runner, leg, report.RaceDay),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LegDistance != rows[j].LegDistance {
			return rows[i].LegDistance > rows[j].LegDistance
		}
		return rows[i].RunnerName < rows[j].RunnerName
	})

	lastDistance := -1.0
	lastRank := 0
	for i := range rows {
		if rows[i].LegDistance != lastDistance {
			lastRank = i + 1
			lastDistance = rows[i].LegDistance
		}
		rows[i].Rank = lastRank
	}
	return rows
}

func legState(team *models.TeamEntry, runner models.RunnerResult, leg, raceDay int) LegState {
	if team.CurrentLeg == leg {
		return LegRunning
	}
	if team.CurrentLeg > leg && runner.LastDayOnLeg(leg) == raceDay {
		return LegFinishedToday
	}
	return LegPast
}
