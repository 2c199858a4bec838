package provider

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// FileProvider reads the race documents from a local directory, the same
// layout the dashboard host serves. Used for development, the report CLI
// and tests.
type FileProvider struct {
	dir    string
	paths  DocumentPaths
	logger *logrus.Logger
}

// NewFileProvider creates a provider rooted at the given directory
func NewFileProvider(dir string, paths DocumentPaths, logger *logrus.Logger) *FileProvider {
	return &FileProvider{dir: dir, paths: paths, logger: logger}
}

// Name returns the provider name
func (p *FileProvider) Name() string { return "file" }

// FetchLiveReport reads and validates the live snapshot document
func (p *FileProvider) FetchLiveReport(ctx context.Context) (*models.LiveReport, error) {
	var report models.LiveReport
	if err := p.readJSON(ctx, DocLiveReport, p.paths.LiveReport, &report); err != nil {
		return nil, err
	}
	NormalizeLiveReport(&report, p.logger)
	if err := ValidateLiveReport(&report); err != nil {
		return nil, NewProviderError(p.Name(), DocLiveReport, ErrCodeInvalidData, "document failed validation", err)
	}
	return &report, nil
}

// FetchIndividualResults reads the per-runner records document
func (p *FileProvider) FetchIndividualResults(ctx context.Context) (models.IndividualResults, error) {
	var results models.IndividualResults
	if err := p.readJSON(ctx, DocIndividualResults, p.paths.IndividualResults, &results); err != nil {
		return nil, err
	}
	return NormalizeIndividualResults(results, p.logger), nil
}

// FetchRaceConfig reads the roster and leg-boundary document
func (p *FileProvider) FetchRaceConfig(ctx context.Context) (*models.RaceConfig, error) {
	var cfg models.RaceConfig
	if err := p.readJSON(ctx, DocRaceConfig, p.paths.RaceConfig, &cfg); err != nil {
		return nil, err
	}
	if err := ValidateRaceConfig(&cfg); err != nil {
		return nil, NewProviderError(p.Name(), DocRaceConfig, ErrCodeInvalidData, "document failed validation", err)
	}
	return &cfg, nil
}

// FetchRunnerLocations reads the runner positions document
func (p *FileProvider) FetchRunnerLocations(ctx context.Context) ([]models.RunnerLocation, error) {
	var locations []models.RunnerLocation
	if err := p.readJSON(ctx, DocRunnerLocations, p.paths.RunnerLocations, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// FetchCoursePath reads the course polyline document
func (p *FileProvider) FetchCoursePath(ctx context.Context) (models.CoursePath, error) {
	var path models.CoursePath
	if err := p.readJSON(ctx, DocCoursePath, p.paths.CoursePath, &path); err != nil {
		return nil, err
	}
	return path, nil
}

func (p *FileProvider) readJSON(ctx context.Context, document, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return NewProviderError(p.Name(), document, ErrCodeNetworkError, "context cancelled", err)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return NewProviderError(p.Name(), document, ErrCodeNotFound, "document file missing", err)
		}
		return NewProviderError(p.Name(), document, ErrCodeNetworkError, "failed to read file", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewProviderError(p.Name(), document, ErrCodeInvalidData, "failed to decode JSON", err)
	}
	return nil
}
