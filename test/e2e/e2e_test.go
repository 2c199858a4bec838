//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ekiden-tracker/internal/api"
	"github.com/yourusername/ekiden-tracker/internal/engine"
	"github.com/yourusername/ekiden-tracker/internal/provider"
	"github.com/yourusername/ekiden-tracker/internal/scheduler"
	"github.com/yourusername/ekiden-tracker/test/helpers"
)

const skipE2E = "Skipping E2E test in short mode"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// TestFullPipelineOverHTTP drives the whole stack the way the deployed
// service runs it: documents served over HTTP, a refresh cycle, then the
// API surface read back.
func TestFullPipelineOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip(skipE2E)
	}

	docs := helpers.SampleRaceDocuments()
	host := helpers.NewDocumentServer(t, docs)
	defer host.Close()

	quiet := quietLogger()
	client := provider.NewRateLimitedHTTPClient(provider.DefaultHTTPClientConfig(), log.New(os.Stderr, "", 0))
	defer client.Close()

	docProvider := provider.NewHTTPProvider(client, host.URL, provider.DefaultDocumentPaths(), quiet)
	refreshSvc := engine.NewRefreshService(docProvider, engine.NewSnapshotStore(), quiet)

	snap, err := refreshSvc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 3, snap.RaceDay)

	server := api.NewServer(api.Config{
		ServiceName: "ekiden-tracker",
		Port:        "0",
		Logger:      quiet,
		Refresh:     refreshSvc,
	})
	handler := server.Handler()

	for _, path := range []string{
		"/health", "/ready", "/api/standings", "/api/legs",
		"/api/prizes", "/api/events", "/api/mapview", "/metrics",
	} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, 200, rec.Code, path)
	}

	// Spot-check the standings payload end to end
	req := httptest.NewRequest("GET", "/api/standings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body struct {
		RaceDay   int `json:"raceDay"`
		Standings []struct {
			Rank     int    `json:"rank"`
			TeamName string `json:"teamName"`
		} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.RaceDay)
	require.Len(t, body.Standings, 2)
	assert.Equal(t, "Fujimi", body.Standings[0].TeamName)
}

// TestFullPipelineFromDirectory runs the same stack against a local
// document directory, the report CLI's mode of operation.
func TestFullPipelineFromDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip(skipE2E)
	}

	dir := t.TempDir()
	helpers.WriteRaceDocuments(t, dir, helpers.SampleRaceDocuments())

	quiet := quietLogger()
	docProvider := provider.NewFileProvider(dir, provider.DefaultDocumentPaths(), quiet)
	refreshSvc := engine.NewRefreshService(docProvider, engine.NewSnapshotStore(), quiet)

	sched := scheduler.NewScheduler(refreshSvc, log.New(os.Stderr, "scheduler: ", log.LstdFlags))
	require.NoError(t, sched.TriggerNow(context.Background()))

	snap := refreshSvc.Store().Latest()
	require.NotNil(t, snap)
	assert.Len(t, snap.Standings, 2)
	assert.Equal(t, []int{1}, snap.FinishedLegs)
	assert.Equal(t, "FJM", snap.Report.Teams[0].ShortName)

	path, err := refreshSvc.CoursePath(context.Background())
	require.NoError(t, err)
	assert.Len(t, path, 3)
}
