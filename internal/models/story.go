package models

import (
	"strings"
	"time"
)

type StoryType string

const (
	StoryOrigin           StoryType = "origin_story"
	StoryCraftJourney     StoryType = "craft_journey"
	StoryCulturalHeritage StoryType = "cultural_heritage"
	StoryCustomer         StoryType = "customer_story"
	StoryBehindScenes     StoryType = "behind_scenes"
	StorySeasonal         StoryType = "seasonal_story"
	StoryProcess          StoryType = "process_story"
	StoryInspiration      StoryType = "inspiration_story"
)

var StoryTypes = []StoryType{
	StoryOrigin,
	StoryCraftJourney,
	StoryCulturalHeritage,
	StoryCustomer,
	StoryBehindScenes,
	StorySeasonal,
	StoryProcess,
	StoryInspiration,
}

// ParseStoryType is case-insensitive and defaults an empty string to StoryOrigin.
func ParseStoryType(s string) (StoryType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StoryOrigin, true
	}
	for _, known := range StoryTypes {
		if StoryType(s) == known {
			return known, true
		}
	}
	return "", false
}

// Label returns the words of the type, e.g. "behind scenes".
func (t StoryType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// Story is a generated marketing narrative. Partial marks a fallback story
// built without a usable model response.
type Story struct {
	ID                  string              `json:"story_id"`
	ProfileID           string              `json:"profile_id"`
	Type                StoryType           `json:"story_type"`
	Title               string              `json:"title"`
	Hook                string              `json:"hook"`
	Narrative           string              `json:"narrative"`
	KeyMessages         []string            `json:"key_messages"`
	EmotionalTone       string              `json:"emotional_tone"`
	TargetAudience      string              `json:"target_audience"`
	CallToAction        string              `json:"call_to_action"`
	PlatformAdaptations map[Platform]string `json:"platform_adaptations"`
	SupportingAssets    []string            `json:"supporting_assets"`
	Hashtags            []string            `json:"hashtags"`
	CulturalHooks       []string            `json:"cultural_hooks"`
	MarketingAngles     []string            `json:"marketing_angles"`
	// Position is the 1-based place of the story in a marketing chain, zero
	// for a standalone story.
	Position  int       `json:"position,omitempty"`
	Partial   bool      `json:"partial"`
	CreatedAt time.Time `json:"created_at"`
}
