package strategist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/artisan-content-agent/internal/analyzer"
	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/recommend"
	"github.com/BerylCAtieno/artisan-content-agent/internal/store"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storyteller"
)

type stubStore struct{}

func (stubStore) Upload(_ context.Context, name, _ string, _ []byte) (string, error) {
	return "gs://crafts/" + name, nil
}

type stubModel struct{ reply string }

func (m stubModel) Analyze(context.Context, string, string, []byte) (string, error) {
	return m.reply, nil
}

var analysisConfig = config.AnalysisConfig{Timeout: time.Second, BreakerFailures: 3, BreakerOpenFor: time.Minute}

type stubWriter struct {
	mu      sync.Mutex
	prompts []string
}

func (w *stubWriter) Generate(_ context.Context, prompt string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prompts = append(w.prompts, prompt)
	return `{"title": "From Khurja Clay", "narrative": "Asha shapes every pot by hand."}`, nil
}

func newService(t *testing.T, an *analyzer.Service, opts ...Option) (*Service, string) {
	t.Helper()
	profiles := store.NewMemory()
	p, err := profiles.Create(store.ProfileInput{
		Name:            "Asha Kumari",
		Location:        "Khurja",
		Specialization:  "pottery",
		ExperienceYears: 12,
		SignatureStyle:  "blue glazed terracotta",
		TargetAudience:  "urban home decor buyers",
		Platforms:       []string{"instagram", "youtube"},
	})
	require.NoError(t, err)

	if an == nil {
		an = analyzer.NewService(nil, nil, analysisConfig)
	}
	clock := func() time.Time { return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC) }
	s := New(profiles, recommend.NewEngine(recommend.WithClock(clock)), an, opts...)
	s.now = clock
	return s, p.ID
}

func TestRecommendations(t *testing.T) {
	s, id := newService(t, nil)

	all, err := s.Recommendations(id, Query{Season: models.SeasonFestival})
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.Equal(t, models.ContentSeasonal, all[0].ContentType)

	top2, err := s.Recommendations(id, Query{Season: models.SeasonFestival, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, all[:2], top2)

	_, err = s.Recommendations("nobody_9", Query{})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestSpecializedSeasonalTechniqueMarket(t *testing.T) {
	s, id := newService(t, nil)

	specialized, err := s.Specialized(id, Query{})
	require.NoError(t, err)
	assert.NotEmpty(t, specialized)

	seasonal, err := s.Seasonal(id, Query{Season: models.SeasonMonsoon})
	require.NoError(t, err)
	require.NotEmpty(t, seasonal)
	assert.Contains(t, seasonal[0].Description, "water storage")

	tech, err := s.Technique(id, "glazing", Query{})
	require.NoError(t, err)
	assert.Len(t, tech, 1)

	_, err = s.Technique(id, " ", Query{})
	assert.True(t, errors.Is(err, models.ErrValidation))

	market, err := s.Market(id, "art collectors", Query{})
	require.NoError(t, err)
	assert.Len(t, market, 1)

	_, err = s.Market("ghost_1", "fashion", Query{})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCalendar(t *testing.T) {
	s, id := newService(t, nil)

	entries, err := s.Calendar(id, 30, Query{Season: models.SeasonSummer})
	require.NoError(t, err)
	require.Len(t, entries, 30)
	assert.Equal(t, "2026-03-02", entries[0].Date)

	recs, err := s.Recommendations(id, Query{Season: models.SeasonSummer})
	require.NoError(t, err)

	placed := 0
	for _, e := range entries {
		placed += len(e.Recommendations)
	}
	assert.Equal(t, len(recs), placed)

	_, err = s.Calendar(id, 0, Query{})
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = s.Calendar(id, recommend.MaxCalendarDays+1, Query{})
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = s.Calendar("ghost_1", 7, Query{})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestStrategy(t *testing.T) {
	s, id := newService(t, nil)

	st, err := s.Strategy(id, Query{})
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", st.Artisan.Name)
	assert.Equal(t, models.SeasonSummer, st.Season)
	assert.NotEmpty(t, st.General)
	assert.NotEmpty(t, st.Specialized)
	assert.NotEmpty(t, st.Seasonal)
	assert.Len(t, st.Calendar, StrategyCalendarDays)
}

func TestAnalyzeImage_Unconfigured(t *testing.T) {
	s, id := newService(t, nil)
	assert.False(t, s.AnalysisEnabled())

	_, err := s.AnalyzeImage(context.Background(), id, analyzer.Image{
		Filename: "pot.jpg", ContentType: "image/jpeg", Data: []byte{1, 2, 3},
	})
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestAnalyzeImage_RejectsBadInput(t *testing.T) {
	s, id := newService(t, analyzer.NewService(stubStore{}, stubModel{reply: "{}"}, analysisConfig))

	_, err := s.AnalyzeImage(context.Background(), id, analyzer.Image{Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hi")})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = s.AnalyzeImage(context.Background(), id, analyzer.Image{Filename: "pot.png", ContentType: "image/png"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = s.AnalyzeImage(context.Background(), "ghost_1", analyzer.Image{ContentType: "image/png", Data: []byte{1}})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestAnalyzeImage(t *testing.T) {
	reply := `{"craft_type": "pottery", "colors": ["ochre"], "materials": ["red clay"],
		"style": "festival diya set", "complexity_level": "advanced", "confidence_score": 0.95}`
	s, id := newService(t, analyzer.NewService(stubStore{}, stubModel{reply: reply}, analysisConfig))

	res, err := s.AnalyzeImage(context.Background(), id, analyzer.Image{
		Filename: "diyas.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8},
	})
	require.NoError(t, err)

	assert.Equal(t, id, res.ProfileID)
	assert.Regexp(t, `^gs://crafts/asha_kumari_1/`, res.ImageURI)
	assert.Equal(t, models.ComplexityAdvanced, res.Analysis.Complexity)
	assert.Equal(t, "Perfect for festival seasons and celebrations", res.Insights.SeasonalRelevance)
	assert.Equal(t, "Highly distinctive craft with clear traditional elements", res.Insights.UniquenessFactor)

	require.NotEmpty(t, res.General)
	require.NotEmpty(t, res.Specialized)
	assert.Contains(t, res.General[0].Hashtags, "#redclay")
}

func TestCalendar_Limit(t *testing.T) {
	s, id := newService(t, nil, WithCalendarLimit(60))
	assert.Equal(t, 60, s.MaxCalendarDays())

	entries, err := s.Calendar(id, 60, Query{})
	require.NoError(t, err)
	assert.Len(t, entries, 60)

	_, err = s.Calendar(id, 61, Query{})
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = s.Calendar(id, 100000, Query{})
	assert.True(t, errors.Is(err, models.ErrValidation))

	s, _ = newService(t, nil, WithCalendarLimit(5000))
	assert.Equal(t, recommend.MaxCalendarDays, s.MaxCalendarDays())
}

func TestStory_Unconfigured(t *testing.T) {
	s, id := newService(t, nil)
	assert.False(t, s.StoriesEnabled())

	_, err := s.Story(context.Background(), id, models.StoryOrigin, nil)
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
	_, err = s.StoryChain(context.Background(), id, Query{})
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestStory(t *testing.T) {
	writer := &stubWriter{}
	s, id := newService(t, nil, WithStoryteller(storyteller.NewService(writer, analysisConfig)))
	assert.True(t, s.StoriesEnabled())

	st, err := s.Story(context.Background(), id, models.StoryCraftJourney, nil)
	require.NoError(t, err)
	assert.Equal(t, "From Khurja Clay", st.Title)
	assert.Equal(t, id, st.ProfileID)
	require.Len(t, writer.prompts, 1)
	assert.Contains(t, writer.prompts[0], "Target platforms: instagram, youtube")

	_, err = s.Story(context.Background(), "ghost_1", models.StoryOrigin, nil)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestStory_UsesLatestAnalysis(t *testing.T) {
	reply := `{"craft_type": "pottery", "colors": ["cobalt blue"], "materials": ["quartz"], "style": "khurja glaze"}`
	writer := &stubWriter{}
	s, id := newService(t,
		analyzer.NewService(stubStore{}, stubModel{reply: reply}, analysisConfig),
		WithStoryteller(storyteller.NewService(writer, analysisConfig)),
	)

	_, err := s.AnalyzeImage(context.Background(), id, analyzer.Image{Filename: "vase.jpg", ContentType: "image/jpeg", Data: []byte{0xff}})
	require.NoError(t, err)

	_, err = s.Story(context.Background(), id, models.StoryProcess, []models.Platform{models.PlatformPinterest})
	require.NoError(t, err)
	require.Len(t, writer.prompts, 1)
	assert.Contains(t, writer.prompts[0], "- Colors: cobalt blue")
	assert.Contains(t, writer.prompts[0], "Target platforms: pinterest")
}

func TestStoryChain(t *testing.T) {
	writer := &stubWriter{}
	s, id := newService(t, nil, WithStoryteller(storyteller.NewService(writer, analysisConfig)))

	stories, err := s.StoryChain(context.Background(), id, Query{Season: models.SeasonFestival, Limit: 3})
	require.NoError(t, err)
	require.Len(t, stories, 5)
	assert.Equal(t, models.StoryBehindScenes, stories[0].Type)
	assert.Equal(t, 5, stories[4].Position)
	assert.Len(t, writer.prompts, 5)

	_, err = s.StoryChain(context.Background(), "ghost_1", Query{})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
