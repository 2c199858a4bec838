package standings

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// FinishIcon marks a previously-finished team's final placing in standings
type FinishIcon string

// Finish icons by final rank. Teams that cross the goal today carry no icon
// until the next race day; the table keeps them visually live.
const (
	IconNone   FinishIcon = ""
	IconTrophy FinishIcon = "trophy"
	IconSilver FinishIcon = "silver"
	IconBronze FinishIcon = "bronze"
	IconFlag   FinishIcon = "flag"
)

// RankChange indicates movement against the previous day's rank
type RankChange string

const (
	RankUp        RankChange = "up"
	RankDown      RankChange = "down"
	RankUnchanged RankChange = "unchanged"
)

// GapPlaceholder is shown instead of a numeric gap for the reference team
// itself and for previously-finished teams.
const GapPlaceholder = "----"

// StandingsRow is one rendered-ready row of the overall standings table
type StandingsRow struct {
	Rank                 int        `json:"rank"`
	TeamID               int        `json:"teamId"`
	TeamName             string     `json:"teamName"`
	TeamShortName        string     `json:"teamShortName"`
	FinishIcon           FinishIcon `json:"finishIcon,omitempty"`
	CurrentRunner        string     `json:"currentRunner"`
	TodayDistance        float64    `json:"todayDistance"`
	TodayRank            int        `json:"todayRank"`
	TodayDisplay         string     `json:"todayDisplay"`
	TotalDistance        float64    `json:"totalDistance"`
	TotalDisplay         string     `json:"totalDisplay"`
	GapToReference       float64    `json:"gapToReference"`
	GapDisplay           string     `json:"gapDisplay"`
	RankChange           RankChange `json:"rankChange"`
	PreviousRank         int        `json:"previousRank"`
	NextRunner           string     `json:"nextRunner"`
	IsFinishedPreviously bool       `json:"isFinishedPreviously"`
}

// BuildStandings converts the live report into the overall standings table.
// Non-competing entries (nil overall rank) are dropped. The gap column is
// measured against the highest-ranked team still running as of the report's
// race day; once every team has finished before today, the overall leader
// becomes the reference. Malformed optional fields never fail the build.
func BuildStandings(report *models.LiveReport, boundaries models.LegBoundaries) []StandingsRow {
	if report == nil || len(report.Teams) == 0 {
		return nil
	}

	teams := rankedTeams(report.Teams)
	if len(teams) == 0 {
		return nil
	}

	raceDay := report.RaceDay
	finalGoal := boundaries.FinalGoal()

	reference := referenceTeam(teams, raceDay)
	referenceDistance := reference.TotalDistance
	referenceRank := reference.GetOverallRank()

	rows := make([]StandingsRow, 0, len(teams))
	for _, team := range teams {
		finishedPreviously := team.FinishedBefore(raceDay)

		row := StandingsRow{
			Rank:                 team.GetOverallRank(),
			TeamID:               team.ID,
			TeamName:             team.Name,
			TeamShortName:        team.ShortName,
			CurrentRunner:        models.FormatRunnerName(models.RunnerKey(team.Runner)),
			TodayDistance:        team.TodayDistance,
			TodayRank:            team.TodayRank,
			TotalDistance:        team.TotalDistance,
			PreviousRank:         team.PreviousRank,
			NextRunner:           models.DisplayRunnerName(team.NextRunner),
			IsFinishedPreviously: finishedPreviously,
			RankChange:           rankChange(team),
		}

		if finishedPreviously {
			row.FinishIcon = finishIconFor(team.GetOverallRank())
			row.TodayDisplay = "-"
			row.TotalDisplay = finishScore(team.GetFinishDay(), team.TotalDistance, finalGoal)
		} else {
			row.TodayDisplay = fmt.Sprintf("%.1fkm (%d)", team.TodayDistance, team.TodayRank)
			row.TotalDisplay = fmt.Sprintf("%.1fkm", team.TotalDistance)
		}

		gap := referenceDistance - team.TotalDistance
		row.GapToReference = gap
		if team.GetOverallRank() == referenceRank || finishedPreviously {
			row.GapDisplay = GapPlaceholder
		} else {
			row.GapDisplay = fmt.Sprintf("-%.1fkm", gap)
		}

		rows = append(rows, row)
	}
	return rows
}

// rankedTeams filters out non-competing entries and orders by overall rank.
// The document is sorted upstream, but document order must never matter.
func rankedTeams(teams []models.TeamEntry) []models.TeamEntry {
	ranked := make([]models.TeamEntry, 0, len(teams))
	for _, t := range teams {
		if t.IsRanked() {
			ranked = append(ranked, t)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GetOverallRank() < ranked[j].GetOverallRank()
	})
	return ranked
}

// referenceTeam picks the gap baseline: the best-ranked team not finished
// before raceDay. A team finishing today still counts as running. When the
// whole field finished earlier, the overall leader is the baseline.
func referenceTeam(ranked []models.TeamEntry, raceDay int) models.TeamEntry {
	for _, t := range ranked {
		if !t.FinishedBefore(raceDay) {
			return t
		}
	}
	return ranked[0]
}

func rankChange(team models.TeamEntry) RankChange {
	if !team.HasPreviousRank() {
		return RankUnchanged
	}
	switch {
	case team.GetOverallRank() < team.PreviousRank:
		return RankUp
	case team.GetOverallRank() > team.PreviousRank:
		return RankDown
	default:
		return RankUnchanged
	}
}

func finishIconFor(rank int) FinishIcon {
	switch rank {
	case 1:
		return IconTrophy
	case 2:
		return IconSilver
	case 3:
		return IconBronze
	default:
		return IconFlag
	}
}

// finishScore renders a finished team's total column: the finish day minus
// a hundredth of the overshoot past the goal, so earlier finishes and
// smaller overshoots sort first. Three decimals, computed in decimal space
// to keep the rendering stable.
func finishScore(finishDay int, totalDistance, finalGoal float64) string {
	overshoot := decimal.NewFromFloat(totalDistance).Sub(decimal.NewFromFloat(finalGoal))
	score := decimal.NewFromInt(int64(finishDay)).Sub(overshoot.Div(decimal.NewFromInt(100)))
	return score.StringFixed(3)
}
