// Package analyzer uploads craft images to object storage and asks a
// multimodal model to describe them.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/resilience"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storage"
)

// ObjectStore receives raw image bytes and returns a location URI.
type ObjectStore interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// VisionModel returns the model's text response for an image and prompt.
type VisionModel interface {
	Analyze(ctx context.Context, prompt, mimeType string, image []byte) (string, error)
}

// Image is an uploaded photograph of a piece.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Result struct {
	URI      string
	Analysis models.CraftAnalysis
}

type Service struct {
	store   ObjectStore
	model   VisionModel
	timeout time.Duration
	upload  *resilience.Breaker
	vision  *resilience.Breaker
	now     func() time.Time
	log     zerolog.Logger
}

// NewService returns a service that reports ErrServiceUnavailable on every
// call when store or model is nil.
func NewService(store ObjectStore, model VisionModel, cfg config.AnalysisConfig) *Service {
	return &Service{
		store:   store,
		model:   model,
		timeout: cfg.Timeout,
		upload:  resilience.NewBreaker("gcs-upload", cfg),
		vision:  resilience.NewBreaker("gemini-vision", cfg),
		now:     time.Now,
		log:     logging.With("analyzer"),
	}
}

// Enabled reports whether both collaborators are configured.
func (s *Service) Enabled() bool {
	return s.store != nil && s.model != nil
}

// Analyze stores the image and returns the model's description of it. An
// unreadable model response is not an error; it produces a partial analysis.
func (s *Service) Analyze(ctx context.Context, profile *models.ArtisanProfile, img Image) (*Result, error) {
	if !s.Enabled() {
		metrics.AnalysisOutcomes.WithLabelValues("unavailable").Inc()
		return nil, models.Unavailable("image analysis is not configured", nil)
	}

	name := storage.ObjectName(profile.ID, img.Filename, s.now())
	uri, err := resilience.Call(ctx, s.upload, s.timeout, func(ctx context.Context) (string, error) {
		return s.store.Upload(ctx, name, img.ContentType, img.Data)
	})
	if err != nil {
		return nil, s.unavailable("image upload failed", err)
	}

	text, err := resilience.Call(ctx, s.vision, s.timeout, func(ctx context.Context) (string, error) {
		return s.model.Analyze(ctx, buildPrompt(profile), img.ContentType, img.Data)
	})
	if err != nil {
		return nil, s.unavailable("image analysis failed", err)
	}

	analysis, out := parseAnalysis(text, profile.Specialization)
	metrics.AnalysisOutcomes.WithLabelValues(string(out)).Inc()
	switch out {
	case outcomePartial:
		s.log.Warn().Str("profile_id", profile.ID).Str("uri", uri).Msg("model response had no usable analysis, returning partial record")
	case outcomeRepaired:
		s.log.Warn().Str("profile_id", profile.ID).Msg("model response needed JSON repair")
	default:
		s.log.Info().Str("profile_id", profile.ID).Str("craft", string(analysis.CraftType)).Float64("confidence", analysis.Confidence).Msg("image analyzed")
	}

	return &Result{URI: uri, Analysis: analysis}, nil
}

func (s *Service) unavailable(reason string, err error) error {
	switch {
	case resilience.Rejected(err):
		metrics.AnalysisOutcomes.WithLabelValues("rejected").Inc()
		s.log.Warn().Err(err).Msg(reason + ": circuit open")
	case errors.Is(err, context.Canceled):
		metrics.AnalysisOutcomes.WithLabelValues("canceled").Inc()
		s.log.Info().Err(err).Msg(reason + ": request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		metrics.AnalysisOutcomes.WithLabelValues("timeout").Inc()
		s.log.Error().Err(err).Dur("timeout", s.timeout).Msg(reason)
	default:
		metrics.AnalysisOutcomes.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg(reason)
	}
	return models.Unavailable(reason, err)
}
