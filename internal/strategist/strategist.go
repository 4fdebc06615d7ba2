// Package strategist ties the profile store, recommendation engine, calendar,
// image analysis and storytelling together for the transport layers.
package strategist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BerylCAtieno/artisan-content-agent/internal/analyzer"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/recommend"
	"github.com/BerylCAtieno/artisan-content-agent/internal/store"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storyteller"
)

// StrategyCalendarDays is the calendar length bundled into a full strategy.
const StrategyCalendarDays = 7

// Query carries the optional request parameters shared by recommendation calls.
type Query struct {
	Season models.Season
	// Limit truncates the ranked list when positive.
	Limit int
}

// Strategy bundles every recommendation view for one artisan.
type Strategy struct {
	Artisan     models.ProfileSummary          `json:"artisan"`
	Season      models.Season                  `json:"season"`
	General     []models.ContentRecommendation `json:"general"`
	Specialized []models.ContentRecommendation `json:"specialized"`
	Seasonal    []models.ContentRecommendation `json:"seasonal"`
	Calendar    []models.CalendarEntry         `json:"calendar"`
}

type Service struct {
	profiles    *store.ProfileStore
	engine      *recommend.Engine
	analyzer    *analyzer.Service
	stories     *storyteller.Service
	maxCalendar int
	now         func() time.Time
	log         zerolog.Logger

	// latest holds the most recent complete analysis per profile so stories
	// can describe the last piece photographed.
	mu     sync.RWMutex
	latest map[string]models.CraftAnalysis
}

type Option func(*Service)

// WithStoryteller enables the story operations.
func WithStoryteller(st *storyteller.Service) Option {
	return func(s *Service) { s.stories = st }
}

// WithCalendarLimit caps the days a calendar request may ask for. Values
// outside 1..recommend.MaxCalendarDays are ignored.
func WithCalendarLimit(days int) Option {
	return func(s *Service) {
		if days >= 1 && days <= recommend.MaxCalendarDays {
			s.maxCalendar = days
		}
	}
}

func New(profiles *store.ProfileStore, engine *recommend.Engine, an *analyzer.Service, opts ...Option) *Service {
	s := &Service{
		profiles:    profiles,
		engine:      engine,
		analyzer:    an,
		maxCalendar: recommend.MaxCalendarDays,
		now:         time.Now,
		log:         logging.With("strategist"),
		latest:      make(map[string]models.CraftAnalysis),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Profiles() *store.ProfileStore { return s.profiles }

// AnalysisEnabled reports whether image analysis can be served.
func (s *Service) AnalysisEnabled() bool { return s.analyzer.Enabled() }

// StoriesEnabled reports whether story generation can be served.
func (s *Service) StoriesEnabled() bool { return s.stories.Enabled() }

// MaxCalendarDays is the largest calendar a caller may request.
func (s *Service) MaxCalendarDays() int { return s.maxCalendar }

func (s *Service) request(id string, q Query) (recommend.Request, *models.ArtisanProfile, error) {
	p, err := s.profiles.Get(id)
	if err != nil {
		return recommend.Request{}, nil, err
	}
	req := recommend.RequestFor(p)
	req.Season = q.Season
	return req, p, nil
}

func (s *Service) Recommendations(id string, q Query) ([]models.ContentRecommendation, error) {
	req, _, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	return served("general", limit(s.engine.Recommend(req), q.Limit)), nil
}

func (s *Service) Specialized(id string, q Query) ([]models.ContentRecommendation, error) {
	req, _, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	return served("specialized", limit(s.engine.Specialized(req), q.Limit)), nil
}

func (s *Service) Seasonal(id string, q Query) ([]models.ContentRecommendation, error) {
	req, _, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	return served("seasonal", limit(s.engine.Seasonal(req), q.Limit)), nil
}

// Technique requires a technique name. Techniques foreign to the craft give an
// empty list.
func (s *Service) Technique(id, technique string, q Query) ([]models.ContentRecommendation, error) {
	if strings.TrimSpace(technique) == "" {
		return nil, models.NewValidationError("technique", "is required")
	}
	req, _, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	return served("technique", s.engine.Technique(req, technique)), nil
}

func (s *Service) Market(id, market string, q Query) ([]models.ContentRecommendation, error) {
	req, _, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	return served("market", s.engine.Market(req, market)), nil
}

// Calendar ranks the general pool and spreads it over days dates from today.
func (s *Service) Calendar(id string, days int, q Query) ([]models.CalendarEntry, error) {
	if days <= 0 {
		return nil, models.NewValidationError("days", "must be at least 1")
	}
	if days > s.maxCalendar {
		return nil, models.NewValidationError("days", fmt.Sprintf("must be at most %d", s.maxCalendar))
	}
	recs, err := s.Recommendations(id, q)
	if err != nil {
		return nil, err
	}
	return recommend.AssignCalendar(recs, days, s.now())
}

func (s *Service) Strategy(id string, q Query) (*Strategy, error) {
	req, p, err := s.request(id, q)
	if err != nil {
		return nil, err
	}

	general := served("general", s.engine.Recommend(req))
	calendar, err := recommend.AssignCalendar(general, StrategyCalendarDays, s.now())
	if err != nil {
		return nil, err
	}

	return &Strategy{
		Artisan:     p.Summary(),
		Season:      s.engine.ActiveSeason(q.Season),
		General:     general,
		Specialized: served("specialized", s.engine.Specialized(req)),
		Seasonal:    served("seasonal", s.engine.Seasonal(req)),
		Calendar:    calendar,
	}, nil
}

// AnalyzeImage uploads and analyzes a craft photo, then recommends content
// with the analysis as context.
func (s *Service) AnalyzeImage(ctx context.Context, id string, img analyzer.Image) (*models.ImageAnalysisResult, error) {
	p, err := s.profiles.Get(id)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return nil, models.NewValidationError("file", fmt.Sprintf("content type %q is not an image", img.ContentType))
	}
	if len(img.Data) == 0 {
		return nil, models.NewValidationError("file", "is empty")
	}

	res, err := s.analyzer.Analyze(ctx, p, img)
	if err != nil {
		return nil, err
	}

	req := recommend.RequestFor(p)
	req.Analysis = &res.Analysis

	if !res.Analysis.Partial {
		s.mu.Lock()
		s.latest[p.ID] = res.Analysis
		s.mu.Unlock()
	}

	s.log.Info().
		Str("profile_id", p.ID).
		Str("detected", string(res.Analysis.CraftType)).
		Str("complexity", string(res.Analysis.Complexity)).
		Bool("partial", res.Analysis.Partial).
		Msg("image analysis completed")

	return &models.ImageAnalysisResult{
		ProfileID:   p.ID,
		ImageURI:    res.URI,
		Analysis:    res.Analysis,
		Insights:    recommend.Insights(res.Analysis),
		General:     served("general", s.engine.Recommend(req)),
		Specialized: served("specialized", s.engine.Specialized(req)),
	}, nil
}

// Story tells one story of type t for the profile. Empty platforms default to
// the profile's own.
func (s *Service) Story(ctx context.Context, id string, t models.StoryType, platforms []models.Platform) (*models.Story, error) {
	p, err := s.profiles.Get(id)
	if err != nil {
		return nil, err
	}
	return s.stories.Tell(ctx, p, storyteller.Request{
		Type:      t,
		Platforms: platforms,
		Analysis:  s.latestAnalysis(p.ID),
	})
}

// StoryChain builds the marketing story sequence around the profile's ranked
// recommendations.
func (s *Service) StoryChain(ctx context.Context, id string, q Query) ([]models.Story, error) {
	req, p, err := s.request(id, q)
	if err != nil {
		return nil, err
	}
	recs := limit(s.engine.Recommend(req), q.Limit)
	return s.stories.Chain(ctx, p, recs, s.latestAnalysis(p.ID))
}

func (s *Service) latestAnalysis(id string) *models.CraftAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.latest[id]
	if !ok {
		return nil
	}
	return &a
}

func limit(recs []models.ContentRecommendation, n int) []models.ContentRecommendation {
	if n > 0 && len(recs) > n {
		return recs[:n]
	}
	return recs
}

func served(pool string, recs []models.ContentRecommendation) []models.ContentRecommendation {
	metrics.RecommendationsServed.WithLabelValues(pool).Add(float64(len(recs)))
	return recs
}
