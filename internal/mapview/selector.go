package mapview

import (
	"sort"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// Mode selects which viewport the map should frame on each refresh
type Mode string

const (
	// ModeLeadGroup follows the top two active runners (the default)
	ModeLeadGroup Mode = "lead_group"
	// ModeFullCourse frames the whole course polyline
	ModeFullCourse Mode = "full_course"
	// ModeAllTeams frames every displayed location
	ModeAllTeams Mode = "all_teams"
	// ModeReferenceTracking frames the historical best-record marker
	// together with the leading active runner
	ModeReferenceTracking Mode = "reference_tracking"
	// Any other value is treated as a team name to center on.
)

// Directive kinds
type DirectiveKind string

const (
	DirectiveFitBounds DirectiveKind = "fitBounds"
	DirectiveCenter    DirectiveKind = "center"
	DirectiveNone      DirectiveKind = "none"
)

// Viewport framing constants, matched to the dashboard map behavior.
const (
	coursePadFraction  = 0.1
	leadGroupPaddingPx = 30
	referencePaddingPx = 50
	groupMaxZoom       = 14
	soloRunnerZoom     = 13
	teamTrackZoom      = 14
)

// Directive tells the presentation layer how to frame the map
type Directive struct {
	Kind      DirectiveKind `json:"kind"`
	Bounds    Bounds        `json:"bounds,omitempty"`
	PaddingPx int           `json:"paddingPx,omitempty"`
	MaxZoom   int           `json:"maxZoom,omitempty"`
	Center    Point         `json:"center,omitempty"`
	Zoom      int           `json:"zoom,omitempty"`
}

func fitBounds(b Bounds, paddingPx, maxZoom int) Directive {
	return Directive{Kind: DirectiveFitBounds, Bounds: b, PaddingPx: paddingPx, MaxZoom: maxZoom}
}

func center(p Point, zoom int) Directive {
	return Directive{Kind: DirectiveCenter, Center: p, Zoom: zoom}
}

func noOp() Directive {
	return Directive{Kind: DirectiveNone}
}

// PlacedRunner is a runner location after the goal-snap rule: a runner who
// has crossed the final goal is shown at the goal marker, not at the last
// interpolated coordinate.
type PlacedRunner struct {
	models.RunnerLocation
	Position Point `json:"position"`
	Finished bool  `json:"finished"`
}

// PlaceRunners applies the goal-snap rule and orders runners by rank, so
// that selection never depends on document order. The input is not
// modified.
func PlaceRunners(locations []models.RunnerLocation, course Course, finalGoal float64) []PlacedRunner {
	placed := make([]PlacedRunner, 0, len(locations))
	for _, loc := range locations {
		p := PlacedRunner{
			RunnerLocation: loc,
			Position:       Point{Lat: loc.Latitude, Lng: loc.Longitude},
		}
		if loc.HasReachedGoal(finalGoal) {
			p.Position = course.Goal
			p.Finished = true
		}
		placed = append(placed, p)
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Rank < placed[j].Rank
	})
	return placed
}

// SelectView decides the viewport for the given tracking mode.
//
// Lead-group mode narrows to active runners: not finished and not the
// reference marker. Two or more active runners frame the top two; exactly
// one centers on it; none (the whole field finished) falls back to the
// full course.
func SelectView(locations []models.RunnerLocation, course Course, finalGoal float64, mode Mode) Directive {
	runners := PlaceRunners(locations, course, finalGoal)

	switch mode {
	case ModeFullCourse:
		return fitBounds(course.Bounds().Pad(coursePadFraction), 0, 0)

	case ModeAllTeams:
		if len(runners) == 0 {
			return noOp()
		}
		return fitBounds(BoundsOf(positions(runners)).Pad(coursePadFraction), 0, 0)

	case ModeReferenceTracking:
		var group []PlacedRunner
		if ref := referenceMarker(runners); ref != nil {
			group = append(group, *ref)
		}
		if lead := leadingActive(runners); lead != nil {
			group = append(group, *lead)
		}
		if len(group) == 0 {
			return noOp()
		}
		return fitBounds(BoundsOf(positions(group)), referencePaddingPx, groupMaxZoom)

	case ModeLeadGroup, "":
		active := activeRunners(runners)
		switch {
		case len(active) >= 2:
			return fitBounds(BoundsOf(positions(active[:2])), leadGroupPaddingPx, groupMaxZoom)
		case len(active) == 1:
			return center(active[0].Position, soloRunnerZoom)
		default:
			return fitBounds(course.Bounds().Pad(coursePadFraction), 0, 0)
		}

	default:
		// A specific team name.
		for _, r := range runners {
			if r.TeamName == string(mode) {
				return center(r.Position, teamTrackZoom)
			}
		}
		return noOp()
	}
}

// activeRunners filters to competitors still on the course, rank order
// preserved.
func activeRunners(runners []PlacedRunner) []PlacedRunner {
	var active []PlacedRunner
	for _, r := range runners {
		if !r.Finished && !r.IsReferenceMarker {
			active = append(active, r)
		}
	}
	return active
}

func leadingActive(runners []PlacedRunner) *PlacedRunner {
	for i := range runners {
		if !runners[i].Finished && !runners[i].IsReferenceMarker {
			return &runners[i]
		}
	}
	return nil
}

func referenceMarker(runners []PlacedRunner) *PlacedRunner {
	for i := range runners {
		if runners[i].IsReferenceMarker {
			return &runners[i]
		}
	}
	return nil
}

func positions(runners []PlacedRunner) []Point {
	pts := make([]Point, len(runners))
	for i, r := range runners {
		pts[i] = r.Position
	}
	return pts
}
