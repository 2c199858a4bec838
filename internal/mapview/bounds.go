// Package mapview selects which region or point the course map should
// frame. It is pure selection logic: the output is a viewport directive for
// the presentation layer, never a rendered map.
package mapview

import "github.com/yourusername/ekiden-tracker/internal/models"

// Point is a WGS84 coordinate
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is an axis-aligned lat/lng box
type Bounds struct {
	SouthWest Point `json:"southWest"`
	NorthEast Point `json:"northEast"`
}

// BoundsOf returns the smallest bounds containing every point.
// The zero Bounds is returned for an empty slice.
func BoundsOf(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}

// Extend grows the bounds to include the point
func (b Bounds) Extend(p Point) Bounds {
	if p.Lat < b.SouthWest.Lat {
		b.SouthWest.Lat = p.Lat
	}
	if p.Lng < b.SouthWest.Lng {
		b.SouthWest.Lng = p.Lng
	}
	if p.Lat > b.NorthEast.Lat {
		b.NorthEast.Lat = p.Lat
	}
	if p.Lng > b.NorthEast.Lng {
		b.NorthEast.Lng = p.Lng
	}
	return b
}

// Pad grows the bounds by a fraction of its own size on every side,
// mirroring Leaflet's LatLngBounds.pad.
func (b Bounds) Pad(fraction float64) Bounds {
	latPad := (b.NorthEast.Lat - b.SouthWest.Lat) * fraction
	lngPad := (b.NorthEast.Lng - b.SouthWest.Lng) * fraction
	return Bounds{
		SouthWest: Point{Lat: b.SouthWest.Lat - latPad, Lng: b.SouthWest.Lng - lngPad},
		NorthEast: Point{Lat: b.NorthEast.Lat + latPad, Lng: b.NorthEast.Lng + lngPad},
	}
}

// Course is the race route: the full polyline plus the goal coordinate
type Course struct {
	Path []Point `json:"path"`
	Goal Point   `json:"goal"`
}

// Bounds returns the bounds of the full course polyline
func (c Course) Bounds() Bounds {
	return BoundsOf(c.Path)
}

// CourseFromPath builds a Course from the course path document. The goal
// is the polyline's last vertex.
func CourseFromPath(path models.CoursePath) Course {
	points := make([]Point, len(path))
	for i, p := range path {
		points[i] = Point{Lat: p.Lat, Lng: p.Lng}
	}
	c := Course{Path: points}
	if len(points) > 0 {
		c.Goal = points[len(points)-1]
	}
	return c
}
