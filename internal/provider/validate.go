package provider

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

var documentValidator = validator.New()

// NormalizeLiveReport applies the documented defaults for optional fields
// in place, so downstream code never re-checks them: a negative previous
// rank collapses to 0 ("no prior rank"), a missing current leg becomes 1.
func NormalizeLiveReport(report *models.LiveReport, logger *logrus.Logger) {
	if report == nil {
		return
	}
	for i := range report.Teams {
		t := &report.Teams[i]
		if t.PreviousRank < 0 {
			t.PreviousRank = 0
		}
		if t.CurrentLeg < 1 {
			if logger != nil {
				logger.WithField("team", t.Name).Warn("Team entry missing current leg, defaulting to 1")
			}
			t.CurrentLeg = 1
		}
	}
}

// ValidateLiveReport rejects documents the engine cannot compute from:
// no race day, no teams, or duplicate team IDs. Optional-field problems are
// normalization concerns, not validation failures.
func ValidateLiveReport(report *models.LiveReport) error {
	if err := documentValidator.Struct(report); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	seen := make(map[int]bool, len(report.Teams))
	for _, t := range report.Teams {
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate team id %d", models.ErrMalformedDocument, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// ValidateRaceConfig rejects configs with empty rosters or a boundary
// sequence that is not strictly increasing.
func ValidateRaceConfig(cfg *models.RaceConfig) error {
	if err := documentValidator.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	if !cfg.LegBoundaries.IsValid() {
		return models.ErrInvalidBoundaries
	}
	return nil
}

// NormalizeIndividualResults drops records missing a day, leg or with a
// negative distance, logging each drop. An otherwise valid runner entry
// survives with the remaining records.
func NormalizeIndividualResults(results models.IndividualResults, logger *logrus.Logger) models.IndividualResults {
	normalized := make(models.IndividualResults, len(results))
	for name, runner := range results {
		kept := make([]models.RunnerRecord, 0, len(runner.Records))
		for _, rec := range runner.Records {
			if rec.Day < 1 || rec.Leg < 1 || rec.Distance < 0 {
				if logger != nil {
					logger.WithFields(logrus.Fields{
						"runner": name,
						"day":    rec.Day,
						"leg":    rec.Leg,
					}).Warn("Dropping malformed runner record")
				}
				continue
			}
			kept = append(kept, rec)
		}
		runner.Records = kept
		normalized[name] = runner
	}
	return normalized
}
