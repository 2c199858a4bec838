// Package provider fetches the race documents the standings engine
// consumes. Documents are transport-agnostic: the same four JSON files can
// come from a web server or a local directory.
package provider

import (
	"context"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// Provider supplies the race documents for one refresh cycle
type Provider interface {
	// FetchLiveReport retrieves the live snapshot document
	FetchLiveReport(ctx context.Context) (*models.LiveReport, error)

	// FetchIndividualResults retrieves the per-runner records document
	FetchIndividualResults(ctx context.Context) (models.IndividualResults, error)

	// FetchRaceConfig retrieves the roster and leg-boundary document
	FetchRaceConfig(ctx context.Context) (*models.RaceConfig, error)

	// FetchRunnerLocations retrieves the interpolated runner positions
	FetchRunnerLocations(ctx context.Context) ([]models.RunnerLocation, error)

	// FetchCoursePath retrieves the course polyline
	FetchCoursePath(ctx context.Context) (models.CoursePath, error)

	// Name returns the provider's name for logs and metrics
	Name() string
}

// Document names, used in errors, logs and metrics labels
const (
	DocLiveReport        = "live_report"
	DocIndividualResults = "individual_results"
	DocRaceConfig        = "race_config"
	DocRunnerLocations   = "runner_locations"
	DocCoursePath        = "course_path"
)

// Error codes
const (
	ErrCodeNetworkError = "network_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeServerError  = "server_error"
)

// ProviderError describes a failed document fetch
type ProviderError struct {
	Provider string // provider name
	Document string // document name
	Code     string // error code
	Message  string
	Err      error
}

func (e ProviderError) Error() string {
	msg := e.Provider + ": " + e.Document + ": " + e.Code + ": " + e.Message
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error
func NewProviderError(provider, document, code, message string, err error) ProviderError {
	return ProviderError{
		Provider: provider,
		Document: document,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}
