package models

// RunnerLocation represents one entry in the runner locations document.
// The list is produced by interpolating each team's total distance along
// the course path; it may arrive in any order.
type RunnerLocation struct {
	Rank              int     `json:"rank"`
	TeamName          string  `json:"team_name"`
	TeamShortName     string  `json:"team_short_name"`
	RunnerName        string  `json:"runner_name"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	IsReferenceMarker bool    `json:"is_reference_marker,omitempty"`
	Edition           int     `json:"edition,omitempty"`
}

// GoalTolerance is the slack, in km, applied when deciding whether a
// runner has reached the final goal. Distances are sums of one-decimal
// readings, so exact float comparison is unreliable.
const GoalTolerance = 0.01

// HasReachedGoal reports whether the runner's distance has crossed the
// final goal distance, within GoalTolerance.
func (l *RunnerLocation) HasReachedGoal(finalGoal float64) bool {
	return l.TotalDistanceKm >= finalGoal-GoalTolerance
}
