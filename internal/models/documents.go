package models

// LiveReport is the live snapshot document produced after every scoring run
type LiveReport struct {
	RaceDay               int         `json:"raceDay" validate:"required,gte=1"`
	UpdateTime            string      `json:"updateTime"`
	Teams                 []TeamEntry `json:"teams" validate:"required,min=1,dive"`
	BreakingNewsComment   string      `json:"breakingNewsComment,omitempty"`
	BreakingNewsTimestamp string      `json:"breakingNewsTimestamp,omitempty"`
}

// TeamByID returns the team entry with the given ID, or nil if absent
func (r *LiveReport) TeamByID(id int) *TeamEntry {
	for i := range r.Teams {
		if r.Teams[i].ID == id {
			return &r.Teams[i]
		}
	}
	return nil
}

// RaceConfig is the static race configuration document: rosters plus the
// cumulative leg boundaries.
type RaceConfig struct {
	Teams         []RosterTeam  `json:"teams" validate:"required,min=1,dive"`
	LegBoundaries LegBoundaries `json:"leg_boundaries" validate:"required,min=1"`
}

// TeamByID returns the roster for the given team ID, or nil if absent
func (c *RaceConfig) TeamByID(id int) *RosterTeam {
	for i := range c.Teams {
		if c.Teams[i].ID == id {
			return &c.Teams[i]
		}
	}
	return nil
}

// LegBoundaries is the ordered sequence of cumulative distance thresholds,
// one per leg. The last element is the total race distance.
type LegBoundaries []float64

// FinalGoal returns the total race distance, 0 for an empty sequence
func (b LegBoundaries) FinalGoal() float64 {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}

// Legs returns the number of legs in the race
func (b LegBoundaries) Legs() int {
	return len(b)
}

// IsValid reports whether the sequence is non-empty and strictly increasing
func (b LegBoundaries) IsValid() bool {
	if len(b) == 0 {
		return false
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return false
		}
	}
	return b[0] > 0
}
