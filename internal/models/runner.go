package models

// RunnerRecord represents a single daily result for one runner
type RunnerRecord struct {
	Day      int     `json:"day" validate:"gte=1"`
	Leg      int     `json:"leg" validate:"gte=1"`
	Distance float64 `json:"distance" validate:"gte=0"`
}

// RunnerResult holds the complete in-edition history for one runner.
// The map key in the individual results document is the raw runner name;
// the engine treats the records slice as immutable.
type RunnerResult struct {
	TeamID        int            `json:"teamId" validate:"required,gt=0"`
	TotalDistance float64        `json:"totalDistance"`
	Records       []RunnerRecord `json:"records"`
}

// RecordsForLeg returns every record the runner logged on the given leg.
// A substituted runner can re-enter on the same leg later, so the days
// are not necessarily contiguous.
func (r *RunnerResult) RecordsForLeg(leg int) []RunnerRecord {
	var out []RunnerRecord
	for _, rec := range r.Records {
		if rec.Leg == leg {
			out = append(out, rec)
		}
	}
	return out
}

// LastDayOnLeg returns the most recent day the runner logged a record on
// the given leg, or 0 when no such record exists.
func (r *RunnerResult) LastDayOnLeg(leg int) int {
	last := 0
	for _, rec := range r.Records {
		if rec.Leg == leg && rec.Day > last {
			last = rec.Day
		}
	}
	return last
}

// IndividualResults is the individual-records document: raw runner name
// to that runner's full history.
type IndividualResults map[string]RunnerResult
