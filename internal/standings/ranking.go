// Package standings derives team standings, per-leg rankings and leg prize
// tables from the race documents. Every function is a pure computation over
// snapshot data; nothing here mutates its inputs or keeps state.
package standings

import (
	"sort"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// RankedRunner is one row of a per-leg ranking
type RankedRunner struct {
	RunnerName string  `json:"runnerName"`
	TeamID     int     `json:"teamId"`
	Distance   float64 `json:"distance"`
	Rank       int     `json:"rank"`
}

// ComputeLegRanking ranks every runner who logged a record on the given leg
// on the given day, by distance descending. Ranks are standard competition
// ranks: equal distances share a rank and the next distinct distance resumes
// at its 1-based position in the sorted list.
func ComputeLegRanking(results models.IndividualResults, day, leg int) []RankedRunner {
	var rows []RankedRunner
	for name, runner := range results {
		for _, rec := range runner.Records {
			if rec.Day == day && rec.Leg == leg {
				rows = append(rows, RankedRunner{
					RunnerName: name,
					TeamID:     runner.TeamID,
					Distance:   rec.Distance,
				})
			}
		}
	}
	sortAndRank(rows)
	return rows
}

// sortAndRank orders rows by distance descending (name ascending within
// ties, map iteration order must not leak) and assigns competition ranks.
func sortAndRank(rows []RankedRunner) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Distance != rows[j].Distance {
			return rows[i].Distance > rows[j].Distance
		}
		return rows[i].RunnerName < rows[j].RunnerName
	})

	lastDistance := -1.0
	lastRank := 0
	for i := range rows {
		if rows[i].Distance != lastDistance {
			lastRank = i + 1
			lastDistance = rows[i].Distance
		}
		rows[i].Rank = lastRank
	}
}

// AnnotatedRecord is a runner record plus its rank within that day's leg group
type AnnotatedRecord struct {
	models.RunnerRecord
	LegRank int `json:"legRank"`
}

// AnnotatedResult mirrors RunnerResult with ranked records
type AnnotatedResult struct {
	TeamID        int               `json:"teamId"`
	TotalDistance float64           `json:"totalDistance"`
	Records       []AnnotatedRecord `json:"records"`
}

// AnnotatedResults is the individual results document with per-record leg
// ranks attached, used by the profile charts and the leg rank history view.
type AnnotatedResults map[string]AnnotatedResult

// AnnotateLegRanks computes, for every record, its competition rank among
// all records sharing the same (day, leg) pair. The input document is left
// untouched; a fresh annotated copy is returned.
func AnnotateLegRanks(results models.IndividualResults) AnnotatedResults {
	type groupKey struct{ day, leg int }

	// Collect each (day, leg) group's distances, sorted descending.
	groups := make(map[groupKey][]float64)
	for _, runner := range results {
		for _, rec := range runner.Records {
			k := groupKey{rec.Day, rec.Leg}
			groups[k] = append(groups[k], rec.Distance)
		}
	}
	for k := range groups {
		sort.Sort(sort.Reverse(sort.Float64Slice(groups[k])))
	}

	annotated := make(AnnotatedResults, len(results))
	for name, runner := range results {
		out := AnnotatedResult{
			TeamID:        runner.TeamID,
			TotalDistance: runner.TotalDistance,
			Records:       make([]AnnotatedRecord, 0, len(runner.Records)),
		}
		for _, rec := range runner.Records {
			sorted := groups[groupKey{rec.Day, rec.Leg}]
			rank := 1
			for _, d := range sorted {
				if d > rec.Distance {
					rank++
				} else {
					break
				}
			}
			out.Records = append(out.Records, AnnotatedRecord{RunnerRecord: rec, LegRank: rank})
		}
		annotated[name] = out
	}
	return annotated
}
