package models

import "strings"

type CraftType string

const (
	CraftUnknown    CraftType = "unknown"
	CraftPottery    CraftType = "pottery"
	CraftTextiles   CraftType = "textiles"
	CraftJewelry    CraftType = "jewelry"
	CraftWoodwork   CraftType = "woodwork"
	CraftMetalwork  CraftType = "metalwork"
	CraftPainting   CraftType = "painting"
	CraftEmbroidery CraftType = "embroidery"
	CraftLeather    CraftType = "leather"
	CraftBamboo     CraftType = "bamboo"
	CraftStonework  CraftType = "stonework"
	CraftGlasswork  CraftType = "glasswork"
)

// CraftTypes lists every known specialization in declaration order.
var CraftTypes = []CraftType{
	CraftPottery,
	CraftTextiles,
	CraftJewelry,
	CraftWoodwork,
	CraftMetalwork,
	CraftPainting,
	CraftEmbroidery,
	CraftLeather,
	CraftBamboo,
	CraftStonework,
	CraftGlasswork,
}

// ParseCraftType is case-insensitive. Unrecognised values map to CraftUnknown.
func ParseCraftType(s string) CraftType {
	c := CraftType(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return CraftUnknown
}

func (c CraftType) Valid() bool {
	for _, known := range CraftTypes {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the display form, e.g. "Pottery".
func (c CraftType) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformWhatsApp  Platform = "whatsapp"
)

var Platforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformYouTube,
	PlatformPinterest,
	PlatformTikTok,
	PlatformTwitter,
	PlatformWhatsApp,
}

func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

type ContentType string

const (
	ContentProcessVideo        ContentType = "process_video"
	ContentFinishedProduct     ContentType = "finished_product"
	ContentBehindScenes        ContentType = "behind_scenes"
	ContentTutorial            ContentType = "tutorial"
	ContentStoryTelling        ContentType = "story_telling"
	ContentCulturalContext     ContentType = "cultural_context"
	ContentCustomerTestimonial ContentType = "customer_testimonial"
	ContentTimeLapse           ContentType = "time_lapse"
	ContentComparison          ContentType = "comparison"
	ContentSeasonal            ContentType = "seasonal_content"
)

var ContentTypes = []ContentType{
	ContentProcessVideo,
	ContentFinishedProduct,
	ContentBehindScenes,
	ContentTutorial,
	ContentStoryTelling,
	ContentCulturalContext,
	ContentCustomerTestimonial,
	ContentTimeLapse,
	ContentComparison,
	ContentSeasonal,
}

func (c ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if c == known {
			return true
		}
	}
	return false
}

type Season string

const (
	SeasonFestival Season = "festival"
	SeasonMonsoon  Season = "monsoon"
	SeasonSummer   Season = "summer"
	SeasonWinter   Season = "winter"
)

var Seasons = []Season{SeasonFestival, SeasonMonsoon, SeasonSummer, SeasonWinter}

// ParseSeason accepts an empty string as "no override".
func ParseSeason(s string) (Season, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	for _, known := range Seasons {
		if Season(s) == known {
			return known, true
		}
	}
	return "", false
}

type Complexity string

const (
	ComplexityBeginner     Complexity = "beginner"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// ParseComplexity folds model vocabulary onto the three levels.
func ParseComplexity(s string) Complexity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "simple", "basic":
		return ComplexityBeginner
	case "advanced", "master", "expert":
		return ComplexityAdvanced
	default:
		return ComplexityIntermediate
	}
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

func SkillLevelFor(experienceYears int) SkillLevel {
	switch {
	case experienceYears <= 2:
		return SkillBeginner
	case experienceYears <= 7:
		return SkillIntermediate
	case experienceYears <= 15:
		return SkillAdvanced
	default:
		return SkillExpert
	}
}
