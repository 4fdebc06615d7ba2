package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BerylCAtieno/artisan-content-agent/internal/analyzer"
	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/recommend"
	"github.com/BerylCAtieno/artisan-content-agent/internal/store"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

type Handler struct {
	svc          *strategist.Service
	maxUpload    int64
	calendarDays int
	log          zerolog.Logger
}

func NewHandler(svc *strategist.Service, opts Options) *Handler {
	return &Handler{
		svc:          svc,
		maxUpload:    opts.MaxUploadBytes,
		calendarDays: opts.CalendarDays,
		log:          logging.With("api"),
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"analysis_enabled": h.svc.AnalysisEnabled(),
		"stories_enabled":  h.svc.StoriesEnabled(),
	})
}

type craftTypeResponse struct {
	Value      models.CraftType `json:"value"`
	Label      string           `json:"label"`
	Techniques []string         `json:"techniques"`
	Markets    []string         `json:"markets"`
}

func (h *Handler) CraftTypes(c *gin.Context) {
	crafts := make([]craftTypeResponse, 0, len(models.CraftTypes))
	for _, ct := range models.CraftTypes {
		crafts = append(crafts, craftTypeResponse{
			Value:      ct,
			Label:      ct.Title(),
			Techniques: recommend.Techniques(ct),
			Markets:    recommend.Markets(ct),
		})
	}
	c.JSON(http.StatusOK, gin.H{"craft_types": crafts})
}

func (h *Handler) Statistics(c *gin.Context) {
	profiles := h.svc.Profiles()
	c.JSON(http.StatusOK, gin.H{
		"total_artisans":          profiles.Len(),
		"craft_distribution":      profiles.CraftStatistics(),
		"experience_distribution": profiles.ExperienceDistribution(),
		"analysis_enabled":        h.svc.AnalysisEnabled(),
	})
}

func (h *Handler) CreateProfile(c *gin.Context) {
	var in store.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	p, err := h.svc.Profiles().Create(in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	var profiles []*models.ArtisanProfile
	switch craft, location := c.Query("craft"), c.Query("location"); {
	case craft != "":
		ct := models.ParseCraftType(craft)
		if ct == models.CraftUnknown {
			h.handleError(c, models.NewValidationError("craft", fmt.Sprintf("unknown specialization %q", craft)))
			return
		}
		profiles = h.svc.Profiles().FindByCraft(ct)
	case location != "":
		profiles = h.svc.Profiles().FindByLocation(location)
	default:
		profiles = h.svc.Profiles().List()
	}

	summaries := make([]models.ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, p.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"profiles": summaries, "total": len(summaries)})
}

func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.svc.Profiles().Get(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var in store.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.handleError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	p, err := h.svc.Profiles().Update(c.Param("id"), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Profiles().Delete(id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ExportProfiles downloads every profile as the JSON document the store
// persists.
func (h *Handler) ExportProfiles(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Profiles().Export(&buf); err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="artisan_profiles.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func (h *Handler) AnalyzeImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.handleError(c, models.NewValidationError("file", "multipart field is required"))
		return
	}
	if header.Size > h.maxUpload {
		h.handleError(c, models.NewValidationError("file", fmt.Sprintf("exceeds %d bytes", h.maxUpload)))
		return
	}

	f, err := header.Open()
	if err != nil {
		h.handleError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		h.handleError(c, fmt.Errorf("read upload: %w", err))
		return
	}
	if int64(len(data)) > h.maxUpload {
		h.handleError(c, models.NewValidationError("file", fmt.Sprintf("exceeds %d bytes", h.maxUpload)))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	res, err := h.svc.AnalyzeImage(c.Request.Context(), c.Param("id"), analyzer.Image{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Recommendations(c *gin.Context) {
	h.recommendations(c, h.svc.Recommendations)
}

func (h *Handler) Specialized(c *gin.Context) {
	h.recommendations(c, h.svc.Specialized)
}

func (h *Handler) Seasonal(c *gin.Context) {
	h.recommendations(c, h.svc.Seasonal)
}

func (h *Handler) Technique(c *gin.Context) {
	technique := c.Query("technique")
	h.recommendations(c, func(id string, q strategist.Query) ([]models.ContentRecommendation, error) {
		return h.svc.Technique(id, technique, q)
	})
}

func (h *Handler) Market(c *gin.Context) {
	market := c.Query("market")
	h.recommendations(c, func(id string, q strategist.Query) ([]models.ContentRecommendation, error) {
		return h.svc.Market(id, market, q)
	})
}

func (h *Handler) recommendations(c *gin.Context, fetch func(string, strategist.Query) ([]models.ContentRecommendation, error)) {
	q, err := parseQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	id := c.Param("id")
	recs, err := fetch(id, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile_id":      id,
		"recommendations": recs,
		"total":           len(recs),
	})
}

func (h *Handler) Calendar(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	days := h.calendarDays
	if raw, ok := c.GetQuery("days"); ok {
		days, err = strconv.Atoi(raw)
		if err != nil {
			h.handleError(c, models.NewValidationError("days", "must be an integer"))
			return
		}
	}

	id := c.Param("id")
	entries, err := h.svc.Calendar(id, days, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile_id": id,
		"days":       days,
		"calendar":   entries,
	})
}

func (h *Handler) Strategy(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	st, err := h.svc.Strategy(c.Param("id"), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) Story(c *gin.Context) {
	storyType, ok := models.ParseStoryType(c.Query("type"))
	if !ok {
		h.handleError(c, models.NewValidationError("type", fmt.Sprintf("unknown story type %q", c.Query("type"))))
		return
	}

	var platforms []models.Platform
	if raw := c.Query("platforms"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			p, ok := models.ParsePlatform(name)
			if !ok {
				h.handleError(c, models.NewValidationError("platforms", fmt.Sprintf("unknown platform %q", strings.TrimSpace(name))))
				return
			}
			platforms = append(platforms, p)
		}
	}

	st, err := h.svc.Story(c.Request.Context(), c.Param("id"), storyType, platforms)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) StoryChain(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	id := c.Param("id")
	stories, err := h.svc.StoryChain(c.Request.Context(), id, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile_id": id,
		"stories":    stories,
		"total":      len(stories),
	})
}

func parseQuery(c *gin.Context) (strategist.Query, error) {
	var q strategist.Query

	season, ok := models.ParseSeason(c.Query("season"))
	if !ok {
		return q, models.NewValidationError("season", fmt.Sprintf("unknown season %q", c.Query("season")))
	}
	q.Season = season

	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, models.NewValidationError("limit", "must be a non-negative integer")
		}
		q.Limit = n
	}
	return q, nil
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Errors})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
