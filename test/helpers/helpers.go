package helpers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RaceDocuments holds the JSON bodies of one complete set of race
// documents, keyed ready for either transport.
type RaceDocuments struct {
	LiveReport        string
	IndividualResults string
	RaceConfig        string
	RunnerLocations   string
	CoursePath        string
}

// SampleRaceDocuments returns a small consistent race: two teams on day 3
// of a two-leg, 120 km course.
func SampleRaceDocuments() RaceDocuments {
	return RaceDocuments{
		LiveReport: `{
			"raceDay": 3,
			"updateTime": "08:00",
			"teams": [
				{"id": 1, "name": "Fujimi", "short_name": "FJM", "runner": "1Aoki",
				 "nextRunner": "Ueda", "currentLeg": 2, "todayDistance": 12.5,
				 "todayRank": 1, "totalDistance": 61.0, "overallRank": 1, "previousRank": 2},
				{"id": 2, "name": "Hamana", "short_name": "HMN", "runner": "1Baba",
				 "nextRunner": "Endo", "currentLeg": 2, "todayDistance": 11.0,
				 "todayRank": 2, "totalDistance": 58.0, "overallRank": 2, "previousRank": 1}
			]
		}`,
		IndividualResults: `{
			"Aoki": {"teamId": 1, "totalDistance": 61.0, "records": [
				{"day": 1, "leg": 1, "distance": 20.0},
				{"day": 2, "leg": 1, "distance": 21.0},
				{"day": 3, "leg": 2, "distance": 20.0}
			]},
			"Baba": {"teamId": 2, "totalDistance": 58.0, "records": [
				{"day": 1, "leg": 1, "distance": 19.0},
				{"day": 2, "leg": 1, "distance": 20.0},
				{"day": 3, "leg": 2, "distance": 19.0}
			]}
		}`,
		RaceConfig: `{
			"teams": [
				{"id": 1, "name": "Fujimi", "short_name": "FJM", "runners": ["Aoki", "Ueda"]},
				{"id": 2, "name": "Hamana", "short_name": "HMN", "runners": ["Baba", "Endo"]}
			],
			"leg_boundaries": [50, 120]
		}`,
		RunnerLocations: `[
			{"rank": 1, "team_name": "Fujimi", "runner_name": "Aoki",
			 "latitude": 35.0, "longitude": 139.0, "total_distance_km": 61.0},
			{"rank": 2, "team_name": "Hamana", "runner_name": "Baba",
			 "latitude": 34.9, "longitude": 138.9, "total_distance_km": 58.0}
		]`,
		CoursePath: `[
			{"lat": 35.1, "lng": 139.1},
			{"lat": 34.5, "lng": 138.5},
			{"lat": 34.0, "lng": 138.0}
		]`,
	}
}

// documentRoutes maps the default document paths to their bodies.
func documentRoutes(docs RaceDocuments) map[string]string {
	return map[string]string{
		"data/realtime_report.json":    docs.LiveReport,
		"data/individual_results.json": docs.IndividualResults,
		"config/ekiden_data.json":      docs.RaceConfig,
		"data/runner_locations.json":   docs.RunnerLocations,
		"config/course_path.json":      docs.CoursePath,
	}
}

// WriteRaceDocuments lays the documents out in dir using the default
// dashboard host layout, for the file provider.
func WriteRaceDocuments(t *testing.T, dir string, docs RaceDocuments) {
	t.Helper()

	for rel, body := range documentRoutes(docs) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

// NewDocumentServer serves the documents over HTTP the way the dashboard
// host does, for the HTTP provider. The caller owns the server.
func NewDocumentServer(t *testing.T, docs RaceDocuments) *httptest.Server {
	t.Helper()

	routes := documentRoutes(docs)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path[1:]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}
