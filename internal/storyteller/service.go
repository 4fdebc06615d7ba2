// Package storyteller asks a text model for marketing narratives built around
// an artisan profile, falling back to a template story when the reply is
// unusable.
package storyteller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/llmjson"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/resilience"
)

// TextModel returns the model's text response for a prompt.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request selects the story to tell. Analysis is optional.
type Request struct {
	Type      models.StoryType
	Platforms []models.Platform
	Analysis  *models.CraftAnalysis
}

type Service struct {
	model   TextModel
	timeout time.Duration
	breaker *resilience.Breaker
	now     func() time.Time
	log     zerolog.Logger
}

// NewService returns a service that reports ErrServiceUnavailable on every
// call when model is nil.
func NewService(model TextModel, cfg config.AnalysisConfig) *Service {
	return &Service{
		model:   model,
		timeout: cfg.Timeout,
		breaker: resilience.NewBreaker("gemini-story", cfg),
		now:     time.Now,
		log:     logging.With("storyteller"),
	}
}

func (s *Service) Enabled() bool {
	return s != nil && s.model != nil
}

// Tell generates one story. An unusable model reply is not an error; it
// yields the fallback story with Partial set.
func (s *Service) Tell(ctx context.Context, p *models.ArtisanProfile, req Request) (*models.Story, error) {
	return s.tell(ctx, p, req, nil)
}

// Chain generates the five-story marketing sequence, each story reinforcing
// the ranked recommendations. Stories are generated concurrently and returned
// in sequence order; any unavailable call fails the whole chain.
func (s *Service) Chain(ctx context.Context, p *models.ArtisanProfile, recs []models.ContentRecommendation, analysis *models.CraftAnalysis) ([]models.Story, error) {
	if !s.Enabled() {
		metrics.StoriesGenerated.WithLabelValues("unavailable").Inc()
		return nil, models.Unavailable("storytelling is not configured", nil)
	}

	base := newMarketingContext(recs)
	stories := make([]models.Story, len(marketingChain))

	g, gctx := errgroup.WithContext(ctx)
	for i, step := range marketingChain {
		mc := *base
		mc.position, mc.total = i+1, len(marketingChain)
		req := Request{Type: step.story, Platforms: step.platforms, Analysis: analysis}

		g.Go(func() error {
			st, err := s.tell(gctx, p, req, &mc)
			if err != nil {
				return err
			}
			st.Position = mc.position
			stories[i] = *st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info().Str("profile_id", p.ID).Int("stories", len(stories)).Msg("marketing story chain generated")
	return stories, nil
}

func (s *Service) tell(ctx context.Context, p *models.ArtisanProfile, req Request, mc *marketingContext) (*models.Story, error) {
	if !s.Enabled() {
		metrics.StoriesGenerated.WithLabelValues("unavailable").Inc()
		return nil, models.Unavailable("storytelling is not configured", nil)
	}
	if _, ok := frameworks[req.Type]; !ok {
		return nil, models.NewValidationError("type", fmt.Sprintf("unknown story type %q", req.Type))
	}
	if len(req.Platforms) == 0 {
		req.Platforms = p.Platforms
	}

	text, err := resilience.Call(ctx, s.breaker, s.timeout, func(ctx context.Context) (string, error) {
		return s.model.Generate(ctx, buildPrompt(p, req, mc))
	})
	if err != nil {
		return nil, s.unavailable(err)
	}

	st, out := parseStory(text, p, req)
	metrics.StoriesGenerated.WithLabelValues(string(out)).Inc()
	if out == llmjson.Failed {
		s.log.Warn().Str("profile_id", p.ID).Str("type", string(req.Type)).Msg("model story was unusable, returning fallback story")
	} else {
		s.log.Info().Str("profile_id", p.ID).Str("type", string(req.Type)).Str("outcome", string(out)).Msg("story generated")
	}

	now := s.now()
	st.ID = fmt.Sprintf("story_%s_%s_%s", now.Format("20060102_150405"), req.Type, uuid.NewString()[:8])
	st.CreatedAt = now
	return &st, nil
}

func (s *Service) unavailable(err error) error {
	switch {
	case resilience.Rejected(err):
		metrics.StoriesGenerated.WithLabelValues("rejected").Inc()
		s.log.Warn().Err(err).Msg("story generation failed: circuit open")
	case errors.Is(err, context.Canceled):
		metrics.StoriesGenerated.WithLabelValues("canceled").Inc()
		s.log.Info().Err(err).Msg("story generation canceled")
	case errors.Is(err, context.DeadlineExceeded):
		metrics.StoriesGenerated.WithLabelValues("timeout").Inc()
		s.log.Error().Err(err).Dur("timeout", s.timeout).Msg("story generation failed")
	default:
		metrics.StoriesGenerated.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("story generation failed")
	}
	return models.Unavailable("story generation failed", err)
}
