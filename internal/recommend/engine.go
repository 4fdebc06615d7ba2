// Package recommend ranks static content templates for an artisan profile and
// spreads the result over a posting calendar.
package recommend

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// Score adjustments applied on top of a template's base priority.
const (
	PlatformBonus   = 0.15
	SeasonBonus     = 0.10
	ComplexityBonus = 0.05

	MaxHashtags = 15
)

// Request is everything the engine needs to know about the artisan.
type Request struct {
	Craft           models.CraftType
	Style           string
	Audience        string
	Platforms       []models.Platform
	ExperienceYears int
	// Season overrides the calendar-derived season when set.
	Season   models.Season
	Analysis *models.CraftAnalysis
}

// RequestFor builds a request from a stored profile.
func RequestFor(p *models.ArtisanProfile) Request {
	return Request{
		Craft:           p.Specialization,
		Style:           p.SignatureStyle,
		Audience:        p.TargetAudience,
		Platforms:       p.Platforms,
		ExperienceYears: p.ExperienceYears,
	}
}

type Option func(*Engine)

// WithClock replaces time.Now for season derivation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is stateless apart from its clock and safe for concurrent use.
type Engine struct {
	now func() time.Time
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ActiveSeason returns the override if set, otherwise the season of the current month.
func (e *Engine) ActiveSeason(override models.Season) models.Season {
	if override != "" {
		return override
	}
	return SeasonFor(e.now().Month())
}

// Recommend ranks the craft's general templates plus the seasonal idea for the
// active season. Unknown crafts yield an empty list.
func (e *Engine) Recommend(req Request) []models.ContentRecommendation {
	cp, ok := catalog[req.Craft]
	if !ok {
		return []models.ContentRecommendation{}
	}
	season := e.ActiveSeason(req.Season)
	return rank(req, season, append(generalTemplates(cp), seasonalTemplates(cp)...))
}

// Specialized ranks only the craft's technique-oriented templates, with
// skill-level hashtags for the artisan's experience.
func (e *Engine) Specialized(req Request) []models.ContentRecommendation {
	cp, ok := catalog[req.Craft]
	if !ok {
		return []models.ContentRecommendation{}
	}
	return rank(req, e.ActiveSeason(req.Season), specializedTemplates(cp, models.SkillLevelFor(req.ExperienceYears)))
}

// Seasonal returns the seasonal idea for the active season followed by the
// general templates tagged with it.
func (e *Engine) Seasonal(req Request) []models.ContentRecommendation {
	cp, ok := catalog[req.Craft]
	if !ok {
		return []models.ContentRecommendation{}
	}
	season := e.ActiveSeason(req.Season)
	var pool []Template
	for _, t := range append(seasonalTemplates(cp), generalTemplates(cp)...) {
		if t.taggedWith(season) {
			pool = append(pool, t)
		}
	}
	return rank(req, season, pool)
}

// Technique returns a single tutorial for a technique the craft uses, or an
// empty list when the technique does not belong to the craft.
func (e *Engine) Technique(req Request, technique string) []models.ContentRecommendation {
	cp, ok := catalog[req.Craft]
	if !ok {
		return []models.ContentRecommendation{}
	}
	technique = strings.ToLower(strings.TrimSpace(technique))
	for _, known := range cp.techniques {
		if known != technique {
			continue
		}
		t := techniquePattern
		t.BestTime = cp.postingTimes[0]
		t.Hashtags = append([]string{hashtag(technique)}, skillHashtags[models.SkillAdvanced]...)
		t.vars = map[string]string{"technique": technique}
		return rank(req, e.ActiveSeason(req.Season), []Template{t})
	}
	return []models.ContentRecommendation{}
}

// Market returns a finished-product idea aimed at a market segment. Unknown
// markets fall back to home decor.
func (e *Engine) Market(req Request, market string) []models.ContentRecommendation {
	cp, ok := catalog[req.Craft]
	if !ok {
		return []models.ContentRecommendation{}
	}
	market = strings.ToLower(strings.TrimSpace(market))
	strategy, ok := marketStrategies[market]
	if !ok {
		market = defaultMarket
		strategy = marketStrategies[defaultMarket]
	}
	t := marketPattern
	t.BestTime = cp.postingTimes[0]
	t.Platforms = strategy.platforms
	t.Hashtags = strategy.hashtags
	t.vars = map[string]string{"market": market, "focus": strategy.focus}
	return rank(req, e.ActiveSeason(req.Season), []Template{t})
}

func generalTemplates(cp craftProfile) []Template {
	out := make([]Template, 0, len(cp.general))
	for i, s := range cp.general {
		t := generalPatterns[s.kind]
		t.Type = s.kind
		t.Priority = s.priority
		t.Seasons = s.seasons
		t.BestTime = cp.postingTimes[i%len(cp.postingTimes)]
		t.Hashtags = append(append([]string(nil), t.Hashtags...), cp.hashtags...)
		out = append(out, t)
	}
	return out
}

func seasonalTemplates(cp craftProfile) []Template {
	out := make([]Template, 0, len(models.Seasons))
	for _, s := range models.Seasons {
		theme, ok := cp.themes[s]
		if !ok {
			continue
		}
		t := seasonalPattern
		t.Seasons = []models.Season{s}
		t.BestTime = cp.postingTimes[0]
		t.Hashtags = append([]string{"#" + string(s)}, cp.hashtags...)
		t.vars = map[string]string{"theme": theme}
		out = append(out, t)
	}
	return out
}

func specializedTemplates(cp craftProfile, skill models.SkillLevel) []Template {
	out := make([]Template, 0, len(cp.specialized))
	for i, s := range cp.specialized {
		t := specializedPatterns[s.kind]
		t.Type = s.kind
		t.Priority = s.priority
		t.Seasons = s.seasons
		t.BestTime = cp.postingTimes[0]
		t.Hashtags = append(append(append([]string(nil), t.Hashtags...), skillHashtags[skill]...), cp.hashtags...)
		t.vars = map[string]string{
			"technique": cp.techniques[i%len(cp.techniques)],
			"skill":     string(skill),
		}
		out = append(out, t)
	}
	return out
}

// rank instantiates and scores the pool, then sorts by descending priority.
// The sort is stable so ties keep declaration order.
func rank(req Request, season models.Season, pool []Template) []models.ContentRecommendation {
	out := make([]models.ContentRecommendation, 0, len(pool))
	for _, t := range pool {
		if t.seasonBound() && !t.taggedWith(season) {
			continue
		}
		out = append(out, instantiate(req, season, t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

func instantiate(req Request, season models.Season, t Template) models.ContentRecommendation {
	title, body := replacers(req, season, t.vars)

	desc := body.Replace(t.Description)
	if a := req.Analysis; a != nil {
		if len(a.Colors) > 0 {
			desc += " Feature the " + strings.Join(firstN(a.Colors, 3), ", ") + " palette."
		}
		if len(a.Materials) > 0 {
			desc += " Call out the " + strings.Join(firstN(a.Materials, 3), ", ") + " used."
		}
	}

	return models.ContentRecommendation{
		ContentType:     t.Type,
		TitleSuggestion: title.Replace(t.Title),
		Description:     desc,
		BestTimeToPost:  t.BestTime,
		Hashtags:        hashtags(req, t),
		TargetPlatforms: append([]models.Platform(nil), t.Platforms...),
		PriorityScore:   score(req, season, t),
		Reasoning:       body.Replace(t.Reasoning),
	}
}

func score(req Request, season models.Season, t Template) float64 {
	p := t.Priority
	if sharesPlatform(t.Platforms, req.Platforms) {
		p += PlatformBonus
	}
	if t.taggedWith(season) {
		p += SeasonBonus
	}
	if req.Analysis != nil && suitsComplexity(req.Analysis.Complexity, t.Type) {
		p += ComplexityBonus
	}
	return math.Round(p*100) / 100
}

func sharesPlatform(a, b []models.Platform) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func suitsComplexity(c models.Complexity, ct models.ContentType) bool {
	switch c {
	case models.ComplexityAdvanced:
		return ct == models.ContentProcessVideo || ct == models.ContentTimeLapse
	case models.ComplexityBeginner:
		return ct == models.ContentTutorial
	default:
		return false
	}
}

// hashtags merges template tags with craft-derived and analysis-derived tags,
// dropping case-insensitive duplicates and capping at MaxHashtags.
func hashtags(req Request, t Template) []string {
	tags := make([]string, 0, MaxHashtags)
	seen := make(map[string]bool)
	add := func(list ...string) {
		for _, tag := range list {
			key := strings.ToLower(tag)
			if tag == "" || seen[key] || len(tags) == MaxHashtags {
				continue
			}
			seen[key] = true
			tags = append(tags, tag)
		}
	}

	add(hashtag(string(req.Craft)))
	add(commonHashtags...)
	add(t.Hashtags...)
	if req.Analysis != nil {
		for _, m := range firstN(req.Analysis.Materials, 3) {
			add(hashtag(m))
		}
	}
	return tags
}

func hashtag(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if s == "" {
		return ""
	}
	return "#" + s
}

func replacers(req Request, season models.Season, vars map[string]string) (title, body *strings.Replacer) {
	craft := req.Craft.Title()
	craftLC := string(req.Craft)

	style := strings.TrimSpace(req.Style)
	if style == "" && req.Analysis != nil {
		style = strings.TrimSpace(req.Analysis.Style)
	}
	if style == "" {
		style = "signature " + craftLC + " pieces"
	}
	audience := strings.TrimSpace(req.Audience)
	if audience == "" {
		audience = "craft lovers"
	}

	common := []string{
		"{craft}", craft,
		"{craft_lc}", craftLC,
		"{style}", style,
		"{audience}", audience,
		"{season}", titleWords(string(season)),
		"{season_lc}", string(season),
		"{theme}", vars["theme"],
		"{focus}", vars["focus"],
		"{market}", vars["market"],
		"{market_title}", titleWords(vars["market"]),
	}
	title = strings.NewReplacer(append(common,
		"{technique}", titleWords(vars["technique"]),
		"{skill}", titleWords(vars["skill"]),
	)...)
	body = strings.NewReplacer(append(common,
		"{technique}", vars["technique"],
		"{skill}", vars["skill"],
	)...)
	return title, body
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
