package models

import "time"

type ArtisanProfile struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	Specialization  CraftType  `json:"specialization"`
	ExperienceYears int        `json:"experience_years"`
	SignatureStyle  string     `json:"signature_style"`
	TargetAudience  string     `json:"target_audience"`
	Platforms       []Platform `json:"social_media_platforms"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Clone returns a deep copy so callers never share the platform slice with the store.
func (p *ArtisanProfile) Clone() *ArtisanProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Platforms = append([]Platform(nil), p.Platforms...)
	return &cp
}

type ProfileSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Specialization  CraftType `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p *ArtisanProfile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:              p.ID,
		Name:            p.Name,
		Location:        p.Location,
		Specialization:  p.Specialization,
		ExperienceYears: p.ExperienceYears,
		CreatedAt:       p.CreatedAt,
	}
}

type CraftAnalysis struct {
	CraftType          CraftType  `json:"craft_type"`
	Colors             []string   `json:"colors"`
	Patterns           []string   `json:"patterns"`
	Materials          []string   `json:"materials"`
	Style              string     `json:"style"`
	Complexity         Complexity `json:"complexity_level"`
	EstimatedTime      string     `json:"estimated_time"`
	Confidence         float64    `json:"confidence_score"`
	CulturalNotes      string     `json:"cultural_notes"`
	TechniquesObserved []string   `json:"techniques_observed,omitempty"`
	ContentAngles      []string   `json:"content_angles,omitempty"`
	Partial            bool       `json:"partial"`
}

type ContentRecommendation struct {
	ContentType     ContentType `json:"content_type"`
	TitleSuggestion string      `json:"title_suggestion"`
	Description     string      `json:"description"`
	BestTimeToPost  string      `json:"best_time_to_post"`
	Hashtags        []string    `json:"hashtags"`
	TargetPlatforms []Platform  `json:"target_platforms"`
	PriorityScore   float64     `json:"priority_score"`
	Reasoning       string      `json:"reasoning"`
}

type CalendarEntry struct {
	Date            string                  `json:"date"`
	Recommendations []ContentRecommendation `json:"recommendations"`
}

type CraftInsights struct {
	MarketAppeal      string `json:"market_appeal"`
	TargetAudience    string `json:"target_audience"`
	SeasonalRelevance string `json:"seasonal_relevance"`
	UniquenessFactor  string `json:"uniqueness_factor"`
	ContentPotential  string `json:"content_potential"`
}

type ImageAnalysisResult struct {
	ProfileID   string                  `json:"profile_id"`
	ImageURI    string                  `json:"image_uri"`
	Analysis    CraftAnalysis           `json:"analysis"`
	Insights    CraftInsights           `json:"insights"`
	General     []ContentRecommendation `json:"general_recommendations"`
	Specialized []ContentRecommendation `json:"specialized_recommendations"`
}
