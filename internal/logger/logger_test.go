package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("warn", "development")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("shouting", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerFormatterFollowsEnvironment(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production environment must use the JSON formatter")

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok, "development environment must use the text formatter")
}

func TestRaceLoggerRefreshCycle(t *testing.T) {
	log, buf := setupTestLogger()
	raceLogger := NewRaceLogger(log)

	raceLogger.LogRefreshCycle("cycle-001", 7, 20, 250*time.Millisecond)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "cycle-001", logEntry["cycle_id"])
	assert.Equal(t, float64(7), logEntry["race_day"])
	assert.Equal(t, "race", logEntry["component"])
}

func TestRaceLoggerRankEvent(t *testing.T) {
	log, buf := setupTestLogger()
	raceLogger := NewRaceLogger(log)

	raceLogger.LogRankEvent("lead_change", 3, "Kofu", 2, 1, 7)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "lead_change", logEntry["kind"])
	assert.Equal(t, float64(3), logEntry["team_id"])
	assert.Equal(t, float64(1), logEntry["to_rank"])
}

func TestRaceLoggerTeamFinish(t *testing.T) {
	log, buf := setupTestLogger()
	raceLogger := NewRaceLogger(log)

	raceLogger.LogTeamFinish(5, "Kumagaya", 14, 2, 300.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(14), logEntry["finish_day"])
	assert.Equal(t, float64(2), logEntry["final_rank"])
}

func TestRaceLoggerDocumentFailure(t *testing.T) {
	log, buf := setupTestLogger()
	raceLogger := NewRaceLogger(log)

	raceLogger.LogDocumentFailure("live_report", "http", errors.New("connection refused"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "live_report", logEntry["document"])
	assert.Equal(t, "http", logEntry["provider"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	raceLogger := NewRaceLogger(log)

	raceLogger.LogRefreshCycle("cycle-002", 8, 20, 100*time.Millisecond)

	// Verify output is valid JSON
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkRaceLoggerRefreshCycle(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	raceLogger := NewRaceLogger(log)

	for i := 0; i < b.N; i++ {
		raceLogger.LogRefreshCycle("cycle-001", 7, 20, 250*time.Millisecond)
	}
}
