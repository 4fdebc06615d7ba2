package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/artisan-content-agent/internal/analyzer"
	"github.com/BerylCAtieno/artisan-content-agent/internal/config"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/recommend"
	"github.com/BerylCAtieno/artisan-content-agent/internal/store"
	"github.com/BerylCAtieno/artisan-content-agent/internal/storyteller"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

type fakeStore struct{}

func (fakeStore) Upload(_ context.Context, name, _ string, _ []byte) (string, error) {
	return "gs://test-bucket/" + name, nil
}

type fakeModel struct{}

func (fakeModel) Analyze(context.Context, string, string, []byte) (string, error) {
	return `{"craft_type": "pottery", "colors": ["terracotta"], "materials": ["clay"], "complexity_level": "intermediate", "confidence_score": 0.9}`, nil
}

type fakeWriter struct{}

func (fakeWriter) Generate(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "compelling customer story") {
		return "no story today", nil
	}
	return `{"title": "Indigo Hands", "narrative": "Meera prints at dawn.", "hashtags": ["#dabu"]}`, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, an *analyzer.Service) (*gin.Engine, *store.ProfileStore) {
	t.Helper()
	if an == nil {
		an = analyzer.NewService(nil, nil, config.AnalysisConfig{Timeout: time.Second, BreakerFailures: 3, BreakerOpenFor: time.Minute})
	}
	profiles := store.NewMemory()
	svc := strategist.New(profiles, recommend.NewEngine(), an)
	return NewRouter(svc, nil, Options{MaxUploadBytes: 1 << 10, CalendarDays: 14}), profiles
}

func newStoryRouter(t *testing.T, opts ...strategist.Option) (*gin.Engine, *store.ProfileStore) {
	t.Helper()
	cfg := config.AnalysisConfig{Timeout: time.Second, BreakerFailures: 3, BreakerOpenFor: time.Minute}
	profiles := store.NewMemory()
	opts = append(opts, strategist.WithStoryteller(storyteller.NewService(fakeWriter{}, cfg)))
	svc := strategist.New(profiles, recommend.NewEngine(), analyzer.NewService(nil, nil, cfg), opts...)
	return NewRouter(svc, nil, Options{CalendarDays: 30}), profiles
}

func seed(t *testing.T, profiles *store.ProfileStore) string {
	t.Helper()
	p, err := profiles.Create(store.ProfileInput{
		Name:            "Meera Devi",
		Location:        "Jaipur",
		Specialization:  "textiles",
		ExperienceYears: 9,
		SignatureStyle:  "block printed indigo",
		Platforms:       []string{"instagram", "pinterest"},
	})
	require.NoError(t, err)
	return p.ID
}

func do(router *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["analysis_enabled"])
	assert.Equal(t, false, body["stories_enabled"])
}

func TestCraftTypes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(router, http.MethodGet, "/api/craft-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CraftTypes []craftTypeResponse `json:"craft_types"`
	}
	decode(t, rec, &body)
	require.Len(t, body.CraftTypes, len(models.CraftTypes))
	assert.Equal(t, models.CraftPottery, body.CraftTypes[0].Value)
	assert.NotEmpty(t, body.CraftTypes[0].Techniques)
}

func TestProfileLifecycle(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	payload := []byte(`{"name": "Ravi Kumar", "location": "Saharanpur", "specialization": "Woodwork",
		"experience_years": 20, "social_media_platforms": ["youtube"]}`)
	rec := do(router, http.MethodPost, "/api/profiles", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.ArtisanProfile
	decode(t, rec, &created)
	assert.Equal(t, models.CraftWoodwork, created.Specialization)
	require.NotEmpty(t, created.ID)

	rec = do(router, http.MethodGet, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPut, "/api/profiles/"+created.ID, []byte(`{"experience_years": 21}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.ArtisanProfile
	decode(t, rec, &updated)
	assert.Equal(t, 21, updated.ExperienceYears)

	rec = do(router, http.MethodDelete, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/api/profiles/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileLifecycle_NameWithPathCharacters(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	payload := []byte(`{"name": "Meera/Devi Crafts?", "location": "Jaipur", "specialization": "textiles",
		"experience_years": 4, "social_media_platforms": ["instagram"]}`)
	rec := do(router, http.MethodPost, "/api/profiles", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.ArtisanProfile
	decode(t, rec, &created)
	assert.Equal(t, "meera_devi_crafts_1", created.ID)
	assert.Equal(t, "Meera/Devi Crafts?", created.Name)

	rec = do(router, http.MethodGet, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodPut, "/api/profiles/"+created.ID, []byte(`{"experience_years": 5}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/profiles/"+created.ID+"/recommendations", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodDelete, "/api/profiles/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/profiles/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProfile_Invalid(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name": `},
		{"missing name", `{"location": "Pune", "specialization": "pottery", "social_media_platforms": ["instagram"]}`},
		{"unknown craft", `{"name": "A", "location": "Pune", "specialization": "origami", "social_media_platforms": ["instagram"]}`},
		{"negative experience", `{"name": "A", "location": "Pune", "specialization": "pottery", "experience_years": -1, "social_media_platforms": ["instagram"]}`},
		{"unknown platform", `{"name": "A", "location": "Pune", "specialization": "pottery", "social_media_platforms": ["myspace"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/api/profiles", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestListProfiles_Filters(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	seed(t, profiles)

	var body struct {
		Profiles []models.ProfileSummary `json:"profiles"`
		Total    int                     `json:"total"`
	}

	rec := do(router, http.MethodGet, "/api/profiles?craft=textiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Total)

	rec = do(router, http.MethodGet, "/api/profiles?craft=pottery", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, 0, body.Total)

	rec = do(router, http.MethodGet, "/api/profiles?location=jaipur", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Total)

	rec = do(router, http.MethodGet, "/api/profiles?craft=origami", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatistics(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total  int                      `json:"total_artisans"`
		Crafts map[models.CraftType]int `json:"craft_distribution"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.Crafts[models.CraftTextiles])
}

func TestRecommendationRoutes(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"general", "/api/profiles/" + id + "/recommendations?season=festival", http.StatusOK},
		{"limited", "/api/profiles/" + id + "/recommendations?limit=2", http.StatusOK},
		{"specialized", "/api/profiles/" + id + "/specialized-recommendations", http.StatusOK},
		{"seasonal", "/api/profiles/" + id + "/seasonal-recommendations?season=Summer", http.StatusOK},
		{"technique", "/api/profiles/" + id + "/technique-recommendations?technique=block%20printing", http.StatusOK},
		{"market", "/api/profiles/" + id + "/market-recommendations?market=fashion", http.StatusOK},
		{"bad season", "/api/profiles/" + id + "/recommendations?season=spring", http.StatusBadRequest},
		{"bad limit", "/api/profiles/" + id + "/recommendations?limit=-3", http.StatusBadRequest},
		{"missing technique", "/api/profiles/" + id + "/technique-recommendations", http.StatusBadRequest},
		{"unknown profile", "/api/profiles/nobody_1/recommendations", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var body struct {
				Recommendations []models.ContentRecommendation `json:"recommendations"`
				Total           int                            `json:"total"`
			}
			decode(t, rec, &body)
			assert.Equal(t, len(body.Recommendations), body.Total)
			assert.NotEmpty(t, body.Recommendations)
		})
	}

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/recommendations?limit=2", nil)
	var body struct {
		Total int `json:"total"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 2, body.Total)
}

func TestCalendar(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	var body struct {
		Days     int                    `json:"days"`
		Calendar []models.CalendarEntry `json:"calendar"`
	}

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, 14, body.Days)
	assert.Len(t, body.Calendar, 14)

	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/calendar?days=5&season=winter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Len(t, body.Calendar, 5)

	for _, days := range []string{"0", "-2", "ten", "367", "100000"} {
		rec = do(router, http.MethodGet, "/api/profiles/"+id+"/calendar?days="+days, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, days)
	}

	rec = do(router, http.MethodGet, "/api/profiles/ghost_1/calendar", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendar_ConfiguredLimit(t *testing.T) {
	router, profiles := newStoryRouter(t, strategist.WithCalendarLimit(20))
	id := seed(t, profiles)

	// the default of 30 is clamped to the limit
	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Days int `json:"days"`
	}
	decode(t, rec, &body)
	assert.Equal(t, 20, body.Days)

	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/calendar?days=21", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be at most 20")
}

func TestExportProfiles(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/profiles/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="artisan_profiles.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var exported map[string]models.ArtisanProfile
	decode(t, rec, &exported)
	require.Contains(t, exported, id)
	assert.Equal(t, "Meera Devi", exported[id].Name)

	// a profile literally named "export" still resolves by its own id
	rec = do(router, http.MethodPost, "/api/profiles", []byte(`{"name": "Export", "location": "Surat",
		"specialization": "textiles", "experience_years": 3, "social_media_platforms": ["facebook"]}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(router, http.MethodGet, "/api/profiles/export_2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStory_Unconfigured(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/story", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/story-chain", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStory(t *testing.T) {
	router, profiles := newStoryRouter(t)
	id := seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/story?type=cultural_heritage&platforms=instagram,YouTube", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st models.Story
	decode(t, rec, &st)
	assert.Equal(t, models.StoryCulturalHeritage, st.Type)
	assert.Equal(t, "Indigo Hands", st.Title)
	assert.Equal(t, []string{"#dabu"}, st.Hashtags)
	assert.False(t, st.Partial)

	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/story", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &st)
	assert.Equal(t, models.StoryOrigin, st.Type)

	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/story?type=customer_story", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &st)
	assert.True(t, st.Partial)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"unknown type", "/api/profiles/" + id + "/story?type=fairy_tale", http.StatusBadRequest},
		{"unknown platform", "/api/profiles/" + id + "/story?platforms=instagram,myspace", http.StatusBadRequest},
		{"unknown profile", "/api/profiles/ghost_1/story", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, do(router, http.MethodGet, tt.target, nil).Code)
		})
	}
}

func TestStoryChain(t *testing.T) {
	router, profiles := newStoryRouter(t)
	id := seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/story-chain?season=festival", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Stories []models.Story `json:"stories"`
		Total   int            `json:"total"`
	}
	decode(t, rec, &body)
	require.Equal(t, 5, body.Total)
	assert.Equal(t, models.StoryBehindScenes, body.Stories[0].Type)
	assert.True(t, body.Stories[3].Partial)
	assert.Equal(t, 4, body.Stories[3].Position)

	rec = do(router, http.MethodGet, "/api/profiles/"+id+"/story-chain?season=spring", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStrategy(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	rec := do(router, http.MethodGet, "/api/profiles/"+id+"/strategy?season=monsoon", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var st strategist.Strategy
	decode(t, rec, &st)
	assert.Equal(t, models.SeasonMonsoon, st.Season)
	assert.Equal(t, "Meera Devi", st.Artisan.Name)
	assert.Len(t, st.Calendar, strategist.StrategyCalendarDays)
}

func upload(t *testing.T, router *gin.Engine, target, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Minimal PNG header so content sniffing reports image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestAnalyzeImage_Unconfigured(t *testing.T) {
	router, profiles := newTestRouter(t, nil)
	id := seed(t, profiles)

	rec := upload(t, router, "/api/profiles/"+id+"/analyze-image", "saree.png", pngBytes)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyzeImage(t *testing.T) {
	an := analyzer.NewService(fakeStore{}, fakeModel{}, config.AnalysisConfig{Timeout: time.Second, BreakerFailures: 3, BreakerOpenFor: time.Minute})
	router, profiles := newTestRouter(t, an)
	id := seed(t, profiles)
	target := "/api/profiles/" + id + "/analyze-image"

	rec := upload(t, router, target, "saree.png", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res models.ImageAnalysisResult
	decode(t, rec, &res)
	assert.True(t, strings.HasPrefix(res.ImageURI, "gs://test-bucket/"+id+"/"))
	assert.Equal(t, models.CraftPottery, res.Analysis.CraftType)
	assert.NotEmpty(t, res.General)

	rec = upload(t, router, target, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, router, target, "notes.txt", []byte("plain words, not a picture"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, router, target, "huge.png", append(pngBytes, make([]byte, 2<<10)...))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, router, "/api/profiles/ghost_1/analyze-image", "saree.png", pngBytes)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
