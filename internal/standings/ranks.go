package standings

import (
	"sort"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// ComputeRanks derives today's rank, the overall rank, leg advancement and
// first-time finish days for a raw team list, returning fresh entries sorted
// by overall rank. This is the authoritative rank derivation used when the
// live document carries unranked state (the report CLI path); the polling
// service normally receives ranks precomputed by the scoring run.
//
// Both rankings are standard competition rankings: ties share a rank, the
// next distinct value resumes at its 1-based position.
func ComputeRanks(teams []models.TeamEntry, boundaries models.LegBoundaries, raceDay int) []models.TeamEntry {
	out := make([]models.TeamEntry, len(teams))
	copy(out, teams)

	finalGoal := boundaries.FinalGoal()

	// Leg advancement and finish day. A team advances at most one leg per
	// scoring run; the finish day is set once and only once.
	for i := range out {
		t := &out[i]
		if t.CurrentLeg >= 1 && t.CurrentLeg <= boundaries.Legs() {
			if t.TotalDistance >= boundaries[t.CurrentLeg-1] {
				t.CurrentLeg++
			}
		}
		if t.FinishDay == nil && finalGoal > 0 && t.TotalDistance >= finalGoal-models.GoalTolerance {
			day := raceDay
			t.FinishDay = &day
		}
		if t.PreviousRank < 0 {
			t.PreviousRank = 0
		}
	}

	assignRanks(out, func(t *models.TeamEntry) float64 { return t.TodayDistance },
		func(t *models.TeamEntry, rank int) { t.TodayRank = rank })
	assignRanks(out, func(t *models.TeamEntry) float64 { return t.TotalDistance },
		func(t *models.TeamEntry, rank int) { r := rank; t.OverallRank = &r })

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GetOverallRank() < out[j].GetOverallRank()
	})
	return out
}

// assignRanks sorts the teams by the metric descending and writes
// competition ranks through the setter.
func assignRanks(teams []models.TeamEntry, metric func(*models.TeamEntry) float64, set func(*models.TeamEntry, int)) {
	order := make([]*models.TeamEntry, len(teams))
	for i := range teams {
		order[i] = &teams[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return metric(order[i]) > metric(order[j])
	})

	lastScore := -1.0
	lastRank := 0
	for i, t := range order {
		if metric(t) != lastScore {
			lastRank = i + 1
			lastScore = metric(t)
		}
		set(t, lastRank)
	}
}
