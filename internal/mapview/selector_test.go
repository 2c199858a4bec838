package mapview

import (
	"testing"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

var testCourse = Course{
	Path: []Point{
		{Lat: 35.0, Lng: 135.0},
		{Lat: 35.5, Lng: 135.8},
		{Lat: 36.2, Lng: 136.4},
	},
	Goal: Point{Lat: 36.2, Lng: 136.4},
}

const testGoalKm = 300.0

func loc(rank int, team string, lat, lng, dist float64) models.RunnerLocation {
	return models.RunnerLocation{
		Rank: rank, TeamName: team,
		Latitude: lat, Longitude: lng, TotalDistanceKm: dist,
	}
}

func TestLeadGroupFramesTopTwoActive(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(3, "C", 35.1, 135.1, 180),
		loc(1, "A", 35.4, 135.6, 220),
		loc(2, "B", 35.3, 135.4, 210),
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeLeadGroup)
	if d.Kind != DirectiveFitBounds {
		t.Fatalf("kind = %s, want fitBounds", d.Kind)
	}
	// Bounds of ranks 1 and 2 only; rank 3 at lat 35.1 stays outside.
	if d.Bounds.SouthWest.Lat != 35.3 || d.Bounds.NorthEast.Lat != 35.4 {
		t.Errorf("bounds %+v should frame ranks 1 and 2 only", d.Bounds)
	}
	if d.PaddingPx != 30 || d.MaxZoom != 14 {
		t.Errorf("padding/zoom = %d/%d, want 30/14", d.PaddingPx, d.MaxZoom)
	}
}

func TestLeadGroupSingleActiveCenters(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(1, "A", 36.2, 136.4, 300),
		loc(2, "B", 35.3, 135.4, 250),
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeLeadGroup)
	if d.Kind != DirectiveCenter {
		t.Fatalf("kind = %s, want center", d.Kind)
	}
	if d.Center != (Point{Lat: 35.3, Lng: 135.4}) || d.Zoom != 13 {
		t.Errorf("center = %+v zoom %d", d.Center, d.Zoom)
	}
}

func TestLeadGroupAllFinishedShowsFullCourse(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(1, "A", 36.2, 136.4, 305),
		loc(2, "B", 36.2, 136.4, 300),
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeLeadGroup)
	if d.Kind != DirectiveFitBounds {
		t.Fatalf("kind = %s, want fitBounds over the course", d.Kind)
	}
	want := testCourse.Bounds().Pad(0.1)
	if d.Bounds != want {
		t.Errorf("bounds = %+v, want padded course bounds %+v", d.Bounds, want)
	}
}

func TestLeadGroupIgnoresReferenceMarker(t *testing.T) {
	ghost := loc(0, "Record Ghost", 35.9, 136.0, 290)
	ghost.IsReferenceMarker = true
	locations := []models.RunnerLocation{
		ghost,
		loc(1, "A", 35.4, 135.6, 220),
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeLeadGroup)
	if d.Kind != DirectiveCenter {
		t.Fatalf("kind = %s: the ghost must not count as an active runner", d.Kind)
	}
}

func TestFullCourseMode(t *testing.T) {
	d := SelectView(nil, testCourse, testGoalKm, ModeFullCourse)
	if d.Kind != DirectiveFitBounds {
		t.Fatalf("kind = %s", d.Kind)
	}
	if d.Bounds != testCourse.Bounds().Pad(0.1) {
		t.Errorf("bounds = %+v", d.Bounds)
	}
}

func TestAllTeamsMode(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(1, "A", 35.4, 135.6, 220),
		loc(2, "B", 35.1, 135.1, 200),
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeAllTeams)
	if d.Kind != DirectiveFitBounds {
		t.Fatalf("kind = %s", d.Kind)
	}
	want := BoundsOf([]Point{{35.4, 135.6}, {35.1, 135.1}}).Pad(0.1)
	if d.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", d.Bounds, want)
	}
}

func TestReferenceTrackingMode(t *testing.T) {
	ghost := loc(0, "Record Ghost", 35.9, 136.0, 290)
	ghost.IsReferenceMarker = true
	locations := []models.RunnerLocation{
		loc(1, "A", 35.4, 135.6, 305), // finished, not active
		loc(2, "B", 35.2, 135.3, 250),
		ghost,
	}
	d := SelectView(locations, testCourse, testGoalKm, ModeReferenceTracking)
	if d.Kind != DirectiveFitBounds {
		t.Fatalf("kind = %s", d.Kind)
	}
	// Frames the ghost and B (the leading active runner), not A.
	want := BoundsOf([]Point{{35.9, 136.0}, {35.2, 135.3}})
	if d.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", d.Bounds, want)
	}
	if d.PaddingPx != 50 || d.MaxZoom != 14 {
		t.Errorf("padding/zoom = %d/%d, want 50/14", d.PaddingPx, d.MaxZoom)
	}
}

func TestTeamNameMode(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(1, "A", 35.4, 135.6, 220),
	}
	d := SelectView(locations, testCourse, testGoalKm, Mode("A"))
	if d.Kind != DirectiveCenter || d.Zoom != 14 {
		t.Fatalf("directive = %+v", d)
	}
	if d.Center != (Point{Lat: 35.4, Lng: 135.6}) {
		t.Errorf("center = %+v", d.Center)
	}

	missing := SelectView(locations, testCourse, testGoalKm, Mode("Unknown"))
	if missing.Kind != DirectiveNone {
		t.Errorf("unknown team should be a no-op, got %s", missing.Kind)
	}
}

func TestPlaceRunnersGoalSnap(t *testing.T) {
	locations := []models.RunnerLocation{
		loc(2, "B", 35.3, 135.4, 250),
		loc(1, "A", 36.19, 136.39, 299.995), // within tolerance of the goal
	}
	placed := PlaceRunners(locations, testCourse, testGoalKm)

	if placed[0].TeamName != "A" {
		t.Fatalf("placed runners must be rank-ordered, got %s first", placed[0].TeamName)
	}
	if !placed[0].Finished {
		t.Error("runner within tolerance of the goal is finished")
	}
	if placed[0].Position != testCourse.Goal {
		t.Errorf("finished runner snaps to the goal marker, got %+v", placed[0].Position)
	}
	if placed[1].Finished || placed[1].Position != (Point{Lat: 35.3, Lng: 135.4}) {
		t.Errorf("active runner keeps reported position, got %+v", placed[1])
	}
}

func TestBoundsPad(t *testing.T) {
	b := Bounds{SouthWest: Point{Lat: 35.0, Lng: 135.0}, NorthEast: Point{Lat: 36.0, Lng: 136.0}}
	padded := b.Pad(0.1)
	if padded.SouthWest.Lat != 34.9 || padded.NorthEast.Lng != 136.1 {
		t.Errorf("padded = %+v", padded)
	}
}
