package models

// CoursePoint is one vertex of the course polyline document
type CoursePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CoursePath is the full course polyline, start to goal
type CoursePath []CoursePoint

// GoalPoint returns the last vertex (the goal coordinate), or a zero point
// for an empty path.
func (p CoursePath) GoalPoint() CoursePoint {
	if len(p) == 0 {
		return CoursePoint{}
	}
	return p[len(p)-1]
}
