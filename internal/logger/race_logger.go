// Package logger provides race event logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RaceLogger provides dedicated logging for race state changes.
type RaceLogger struct {
	*logrus.Entry
}

// NewRaceLogger creates a new race logger.
func NewRaceLogger(baseLogger *logrus.Logger) *RaceLogger {
	return &RaceLogger{
		Entry: baseLogger.WithField("component", "race"),
	}
}

// LogRefreshCycle logs a completed refresh cycle.
func (rl *RaceLogger) LogRefreshCycle(cycleID string, raceDay int, teams int, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"cycle_id":    cycleID,
		"race_day":    raceDay,
		"teams":       teams,
		"duration_ms": duration.Milliseconds(),
	}).Info("Refresh cycle completed")
}

// LogRankEvent logs a detected rank event.
func (rl *RaceLogger) LogRankEvent(kind string, teamID int, teamName string, fromRank, toRank, raceDay int) {
	rl.WithFields(logrus.Fields{
		"kind":      kind,
		"team_id":   teamID,
		"team_name": teamName,
		"from_rank": fromRank,
		"to_rank":   toRank,
		"race_day":  raceDay,
	}).Info("Rank event detected")
}

// LogTeamFinish logs a team crossing the final goal.
func (rl *RaceLogger) LogTeamFinish(teamID int, teamName string, finishDay, finalRank int, totalDistance float64) {
	rl.WithFields(logrus.Fields{
		"team_id":        teamID,
		"team_name":      teamName,
		"finish_day":     finishDay,
		"final_rank":     finalRank,
		"total_distance": totalDistance,
	}).Info("Team finished the race")
}

// LogDocumentFailure logs a failed document fetch.
func (rl *RaceLogger) LogDocumentFailure(document, providerName string, err error) {
	rl.WithFields(logrus.Fields{
		"document": document,
		"provider": providerName,
		"error":    err,
	}).Warn("Document fetch failed")
}
