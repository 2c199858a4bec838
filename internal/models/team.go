package models

// TeamEntry represents one team's row in the live report document
type TeamEntry struct {
	ID             int      `json:"id" validate:"required,gt=0"`
	Name           string   `json:"name" validate:"required"`
	ShortName      string   `json:"short_name"`
	Runner         string   `json:"runner"`
	NextRunner     string   `json:"nextRunner"`
	CurrentLeg     int      `json:"currentLeg" validate:"gte=1"`
	TodayDistance  float64  `json:"todayDistance"`
	TodayRank      int      `json:"todayRank"`
	TotalDistance  float64  `json:"totalDistance" validate:"gte=0"`
	OverallRank    *int     `json:"overallRank"`
	PreviousRank   int      `json:"previousRank"`
	FinishDay      *int     `json:"finishDay"`
	SubstitutedOut []string `json:"substituted_out,omitempty"`
}

// GetOverallRank returns the overall rank or 0 when the team is a
// non-competing entry (e.g. the historical best-record marker)
func (t *TeamEntry) GetOverallRank() int {
	if t.OverallRank == nil {
		return 0
	}
	return *t.OverallRank
}

// IsRanked reports whether the team takes part in the standings table
func (t *TeamEntry) IsRanked() bool {
	return t.OverallRank != nil
}

// HasPreviousRank reports whether a prior-day rank exists (0 means none)
func (t *TeamEntry) HasPreviousRank() bool {
	return t.PreviousRank > 0
}

// GetFinishDay returns the finish day or 0 if the team is still running
func (t *TeamEntry) GetFinishDay() int {
	if t.FinishDay == nil {
		return 0
	}
	return *t.FinishDay
}

// FinishedBefore reports whether the team crossed the goal on a day strictly
// before raceDay. A team finishing on raceDay itself is not "previously
// finished" and keeps its live row treatment in the standings.
func (t *TeamEntry) FinishedBefore(raceDay int) bool {
	return t.FinishDay != nil && *t.FinishDay < raceDay
}

// RosterTeam represents a team's configured roster in the race config document
type RosterTeam struct {
	ID          int      `json:"id" validate:"required,gt=0"`
	Name        string   `json:"name" validate:"required"`
	ShortName   string   `json:"short_name"`
	Color       string   `json:"color"`
	Runners     []string `json:"runners" validate:"required,min=1"`
	Substitutes []string `json:"substitutes"`
}

// RunnerForLeg returns the rostered runner for a 1-based leg number,
// or "" when the leg is beyond the roster (the team has finished).
func (r *RosterTeam) RunnerForLeg(leg int) string {
	if leg < 1 || leg > len(r.Runners) {
		return ""
	}
	return r.Runners[leg-1]
}

// LegOf returns the 1-based leg a rostered runner is assigned to, or 0
// when the name is not on the active roster.
func (r *RosterTeam) LegOf(name string) int {
	for i, n := range r.Runners {
		if n == name {
			return i + 1
		}
	}
	return 0
}
