package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// DocumentPaths maps each document to its path below the base URL
type DocumentPaths struct {
	LiveReport        string
	IndividualResults string
	RaceConfig        string
	RunnerLocations   string
	CoursePath        string
}

// DefaultDocumentPaths returns the paths the dashboard host publishes
func DefaultDocumentPaths() DocumentPaths {
	return DocumentPaths{
		LiveReport:        "data/realtime_report.json",
		IndividualResults: "data/individual_results.json",
		RaceConfig:        "config/ekiden_data.json",
		RunnerLocations:   "data/runner_locations.json",
		CoursePath:        "config/course_path.json",
	}
}

// HTTPProvider fetches documents from a static-file host over HTTP
type HTTPProvider struct {
	client  *RateLimitedHTTPClient
	baseURL string
	paths   DocumentPaths
	logger  *logrus.Logger
}

// NewHTTPProvider creates a provider for the given base URL
func NewHTTPProvider(client *RateLimitedHTTPClient, baseURL string, paths DocumentPaths, logger *logrus.Logger) *HTTPProvider {
	return &HTTPProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   paths,
		logger:  logger,
	}
}

// Name returns the provider name
func (p *HTTPProvider) Name() string { return "http" }

// FetchLiveReport retrieves and validates the live snapshot document
func (p *HTTPProvider) FetchLiveReport(ctx context.Context) (*models.LiveReport, error) {
	var report models.LiveReport
	if err := p.fetchJSON(ctx, DocLiveReport, p.paths.LiveReport, &report); err != nil {
		return nil, err
	}
	NormalizeLiveReport(&report, p.logger)
	if err := ValidateLiveReport(&report); err != nil {
		return nil, NewProviderError(p.Name(), DocLiveReport, ErrCodeInvalidData, "document failed validation", err)
	}
	return &report, nil
}

// FetchIndividualResults retrieves the per-runner records document
func (p *HTTPProvider) FetchIndividualResults(ctx context.Context) (models.IndividualResults, error) {
	var results models.IndividualResults
	if err := p.fetchJSON(ctx, DocIndividualResults, p.paths.IndividualResults, &results); err != nil {
		return nil, err
	}
	return NormalizeIndividualResults(results, p.logger), nil
}

// FetchRaceConfig retrieves the roster and leg-boundary document
func (p *HTTPProvider) FetchRaceConfig(ctx context.Context) (*models.RaceConfig, error) {
	var cfg models.RaceConfig
	if err := p.fetchJSON(ctx, DocRaceConfig, p.paths.RaceConfig, &cfg); err != nil {
		return nil, err
	}
	if err := ValidateRaceConfig(&cfg); err != nil {
		return nil, NewProviderError(p.Name(), DocRaceConfig, ErrCodeInvalidData, "document failed validation", err)
	}
	return &cfg, nil
}

// FetchRunnerLocations retrieves the runner positions document
func (p *HTTPProvider) FetchRunnerLocations(ctx context.Context) ([]models.RunnerLocation, error) {
	var locations []models.RunnerLocation
	if err := p.fetchJSON(ctx, DocRunnerLocations, p.paths.RunnerLocations, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// FetchCoursePath retrieves the course polyline document
func (p *HTTPProvider) FetchCoursePath(ctx context.Context) (models.CoursePath, error) {
	var path models.CoursePath
	if err := p.fetchJSON(ctx, DocCoursePath, p.paths.CoursePath, &path); err != nil {
		return nil, err
	}
	return path, nil
}

// fetchJSON gets one document with a cache-busting query parameter, so an
// intermediate cache never serves a stale poll.
func (p *HTTPProvider) fetchJSON(ctx context.Context, document, path string, out interface{}) error {
	url := fmt.Sprintf("%s/%s?_=%d", p.baseURL, path, time.Now().UnixMilli())

	resp, err := p.client.Get(ctx, url)
	if err != nil {
		return NewProviderError(p.Name(), document, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NewProviderError(p.Name(), document, ErrCodeNotFound, "document not found", nil)
	case resp.StatusCode >= 500:
		return NewProviderError(p.Name(), document, ErrCodeServerError,
			fmt.Sprintf("server returned %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return NewProviderError(p.Name(), document, ErrCodeNetworkError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewProviderError(p.Name(), document, ErrCodeNetworkError, "failed to read body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(p.Name(), document, ErrCodeInvalidData, "failed to decode JSON", err)
	}

	p.logger.WithFields(logrus.Fields{
		"document": document,
		"bytes":    len(body),
	}).Debug("Document fetched")

	return nil
}
