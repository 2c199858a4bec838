package standings

import (
	"sort"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// EventKind classifies a notable change between two consecutive reports
type EventKind string

const (
	// EventLeadChange fires when a team takes over first place
	EventLeadChange EventKind = "lead_change"
	// EventTopThreeEntry fires when a team moves into the top three
	EventTopThreeEntry EventKind = "top3_entry"
	// EventFinish fires the first time a team's finish day is recorded
	EventFinish EventKind = "finish"
)

// RankEvent describes one notable change, ready for a news ticker
type RankEvent struct {
	Kind     EventKind `json:"kind"`
	TeamID   int       `json:"teamId"`
	TeamName string    `json:"teamName"`
	FromRank int       `json:"fromRank,omitempty"`
	ToRank   int       `json:"toRank"`
	RaceDay  int       `json:"raceDay"`
}

// DetectRankEvents compares two consecutive live reports and emits the
// notable changes. With no previous report there is nothing to compare and
// no events are produced. Events are ordered by the team's current rank.
func DetectRankEvents(previous, current *models.LiveReport) []RankEvent {
	if previous == nil || current == nil {
		return nil
	}

	prevRank := make(map[int]int, len(previous.Teams))
	prevFinished := make(map[int]bool, len(previous.Teams))
	for _, t := range previous.Teams {
		if t.IsRanked() {
			prevRank[t.ID] = t.GetOverallRank()
		}
		prevFinished[t.ID] = t.FinishDay != nil
	}

	var events []RankEvent
	for _, t := range current.Teams {
		if !t.IsRanked() {
			continue
		}
		rank := t.GetOverallRank()
		before, known := prevRank[t.ID]

		switch {
		case rank == 1 && known && before > 1:
			events = append(events, RankEvent{
				Kind: EventLeadChange, TeamID: t.ID, TeamName: t.Name,
				FromRank: before, ToRank: rank, RaceDay: current.RaceDay,
			})
		case rank <= 3 && known && before > 3:
			events = append(events, RankEvent{
				Kind: EventTopThreeEntry, TeamID: t.ID, TeamName: t.Name,
				FromRank: before, ToRank: rank, RaceDay: current.RaceDay,
			})
		}

		if t.FinishDay != nil && !prevFinished[t.ID] {
			events = append(events, RankEvent{
				Kind: EventFinish, TeamID: t.ID, TeamName: t.Name,
				ToRank: rank, RaceDay: current.RaceDay,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ToRank < events[j].ToRank
	})
	return events
}
