package standings

import "github.com/yourusername/ekiden-tracker/internal/models"

// RunnerState is a runner's live position within their team's race
type RunnerState string

const (
	StateSubstituted RunnerState = "substituted"
	StateFinished    RunnerState = "finished"
	StateRunning     RunnerState = "running"
	StateUpcoming    RunnerState = "upcoming"
	StateReserve     RunnerState = "reserve"
)

// RunnerStatus resolves a runner's live state from the roster and the
// team's live entry. Substitution wins over roster position; a name not on
// the active roster is a reserve.
func RunnerStatus(roster *models.RosterTeam, live *models.TeamEntry, name string) RunnerState {
	if live != nil {
		for _, out := range live.SubstitutedOut {
			if out == name {
				return StateSubstituted
			}
		}
	}
	if roster == nil || live == nil {
		return StateReserve
	}
	leg := roster.LegOf(name)
	if leg == 0 {
		return StateReserve
	}
	switch {
	case leg < live.CurrentLeg:
		return StateFinished
	case leg == live.CurrentLeg:
		return StateRunning
	default:
		return StateUpcoming
	}
}
