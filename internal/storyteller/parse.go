package storyteller

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/llmjson"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

type rawStory struct {
	Title               string            `json:"title"`
	Hook                string            `json:"hook"`
	Narrative           string            `json:"narrative"`
	KeyMessages         []string          `json:"key_messages"`
	EmotionalTone       string            `json:"emotional_tone"`
	TargetAudience      string            `json:"target_audience"`
	CallToAction        string            `json:"call_to_action"`
	PlatformAdaptations map[string]string `json:"platform_adaptations"`
	SupportingAssets    []string          `json:"supporting_assets"`
	Hashtags            []string          `json:"hashtags"`
	CulturalHooks       []string          `json:"cultural_hooks"`
	MarketingAngles     []string          `json:"marketing_angles"`
}

// parseStory never fails. A reply without a narrative or title becomes the
// fallback story for the request.
func parseStory(text string, p *models.ArtisanProfile, req Request) (models.Story, llmjson.Outcome) {
	var raw rawStory
	out := llmjson.Decode(text, &raw)
	if out == llmjson.Failed || (strings.TrimSpace(raw.Narrative) == "" && strings.TrimSpace(raw.Title) == "") {
		return fallbackStory(p, req), llmjson.Failed
	}
	return raw.toStory(p, req), out
}

func (r rawStory) toStory(p *models.ArtisanProfile, req Request) models.Story {
	fw := frameworks[req.Type]
	st := models.Story{
		ProfileID:           p.ID,
		Type:                req.Type,
		Title:               orDefault(r.Title, fmt.Sprintf("%s - %s", p.Name, titleCase(req.Type.Label()))),
		Hook:                strings.TrimSpace(r.Hook),
		Narrative:           strings.TrimSpace(r.Narrative),
		KeyMessages:         nonNil(r.KeyMessages),
		EmotionalTone:       orDefault(r.EmotionalTone, fw.emotionalArc),
		TargetAudience:      orDefault(r.TargetAudience, p.TargetAudience),
		CallToAction:        orDefault(r.CallToAction, fw.callToAction),
		PlatformAdaptations: map[models.Platform]string{},
		SupportingAssets:    nonNil(r.SupportingAssets),
		Hashtags:            nonNil(r.Hashtags),
		CulturalHooks:       nonNil(r.CulturalHooks),
		MarketingAngles:     nonNil(r.MarketingAngles),
	}
	for k, v := range r.PlatformAdaptations {
		if pl, ok := models.ParsePlatform(k); ok && strings.TrimSpace(v) != "" {
			st.PlatformAdaptations[pl] = strings.TrimSpace(v)
		}
	}
	return st
}

func fallbackStory(p *models.ArtisanProfile, req Request) models.Story {
	fw := frameworks[req.Type]
	label := req.Type.Label()

	adaptations := make(map[models.Platform]string, len(req.Platforms))
	for _, pl := range req.Platforms {
		adaptations[pl] = "Platform-optimized content coming soon"
	}

	return models.Story{
		ProfileID:           p.ID,
		Type:                req.Type,
		Title:               "The Art of " + titleCase(label),
		Hook:                "In the heart of India, tradition meets artistry...",
		Narrative:           fmt.Sprintf("Every craft tells a story, and this %s is no different. Through dedication and skill, %s brings tradition to life.", label, p.Name),
		KeyMessages:         []string{"Authentic craftsmanship", "Cultural heritage", "Artistic excellence"},
		EmotionalTone:       fw.emotionalArc,
		TargetAudience:      "Craft enthusiasts and cultural appreciators",
		CallToAction:        fw.callToAction,
		PlatformAdaptations: adaptations,
		SupportingAssets:    []string{"process video", "finished product photo"},
		Hashtags:            []string{},
		CulturalHooks:       []string{},
		MarketingAngles:     []string{},
		Partial:             true,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
