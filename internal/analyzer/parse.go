package analyzer

import (
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/llmjson"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

const (
	defaultConfidence  = 0.5
	repairedConfidence = 0.6
	// partialConfidence stays below defaultConfidence so a fallback record
	// never outranks a real parse that omitted its score.
	partialConfidence = 0.3
)

type outcome string

const (
	outcomeOK       outcome = "ok"
	outcomeRepaired outcome = "repaired"
	outcomePartial  outcome = "partial"
)

type rawAnalysis struct {
	CraftType            string   `json:"craft_type"`
	Colors               []string `json:"colors"`
	Patterns             []string `json:"patterns"`
	Materials            []string `json:"materials"`
	Style                string   `json:"style"`
	Complexity           string   `json:"complexity_level"`
	EstimatedTime        string   `json:"estimated_time"`
	Confidence           *float64 `json:"confidence_score"`
	CulturalSignificance string   `json:"cultural_significance"`
	CulturalNotes        string   `json:"cultural_notes"`
	TechniquesObserved   []string `json:"techniques_observed"`
	ContentAngles        []string `json:"content_angles"`
}

// parseAnalysis never fails. Text that only parses after repair gets its
// confidence capped. Text that cannot be parsed, or decodes to an object with
// none of the craft fields, yields a partial record built from the profile's
// specialization.
func parseAnalysis(text string, fallback models.CraftType) (models.CraftAnalysis, outcome) {
	var raw rawAnalysis
	switch llmjson.Decode(text, &raw) {
	case llmjson.OK:
		if raw.describesCraft() {
			return raw.toModel(fallback, 1), outcomeOK
		}
	case llmjson.Repaired:
		if raw.describesCraft() {
			return raw.toModel(fallback, repairedConfidence), outcomeRepaired
		}
	}
	return partialAnalysis(fallback), outcomePartial
}

func partialAnalysis(craft models.CraftType) models.CraftAnalysis {
	return models.CraftAnalysis{
		CraftType:     craft,
		Colors:        []string{},
		Patterns:      []string{},
		Materials:     []string{},
		Style:         "traditional",
		Complexity:    models.ComplexityIntermediate,
		EstimatedTime: "unknown",
		Confidence:    partialConfidence,
		Partial:       true,
	}
}

func (r rawAnalysis) describesCraft() bool {
	return strings.TrimSpace(r.CraftType) != "" || len(r.Colors) > 0 || len(r.Patterns) > 0 || len(r.Materials) > 0
}

func (r rawAnalysis) toModel(fallback models.CraftType, maxConfidence float64) models.CraftAnalysis {
	craft := models.ParseCraftType(r.CraftType)
	if craft == models.CraftUnknown {
		craft = fallback
	}

	confidence := defaultConfidence
	if r.Confidence != nil {
		confidence = *r.Confidence
	}
	confidence = min(max(confidence, 0), maxConfidence)

	notes := r.CulturalSignificance
	if notes == "" {
		notes = r.CulturalNotes
	}

	return models.CraftAnalysis{
		CraftType:          craft,
		Colors:             nonNil(r.Colors),
		Patterns:           nonNil(r.Patterns),
		Materials:          nonNil(r.Materials),
		Style:              strings.TrimSpace(r.Style),
		Complexity:         models.ParseComplexity(r.Complexity),
		EstimatedTime:      strings.TrimSpace(r.EstimatedTime),
		Confidence:         confidence,
		CulturalNotes:      strings.TrimSpace(notes),
		TechniquesObserved: r.TechniquesObserved,
		ContentAngles:      r.ContentAngles,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
