package storyteller

import (
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

type framework struct {
	structure    []string
	emotionalArc string
	keyElements  []string
	callToAction string
}

var frameworks = map[models.StoryType]framework{
	models.StoryOrigin: {
		structure:    []string{"heritage", "inspiration", "first creation", "evolution", "legacy"},
		emotionalArc: "humble beginnings to mastery",
		keyElements:  []string{"family tradition", "cultural significance", "personal journey"},
		callToAction: "Discover the heritage behind every piece",
	},
	models.StoryCraftJourney: {
		structure:    []string{"learning", "challenges", "breakthrough", "mastery", "innovation"},
		emotionalArc: "struggle to triumph",
		keyElements:  []string{"skill development", "dedication", "artistic growth"},
		callToAction: "Appreciate the craftsmanship",
	},
	models.StoryCulturalHeritage: {
		structure:    []string{"ancient roots", "traditional methods", "cultural meaning", "preservation", "modern relevance"},
		emotionalArc: "pride and preservation",
		keyElements:  []string{"historical context", "cultural symbols", "traditional techniques"},
		callToAction: "Help preserve the tradition",
	},
	models.StoryCustomer: {
		structure:    []string{"customer need", "craft solution", "creation process", "delivery", "satisfaction"},
		emotionalArc: "problem to joy",
		keyElements:  []string{"personal connection", "custom creation", "emotional value"},
		callToAction: "Create your own story",
	},
	models.StoryBehindScenes: {
		structure:    []string{"workspace", "tools", "process", "challenges", "satisfaction"},
		emotionalArc: "curiosity to appreciation",
		keyElements:  []string{"intimate details", "crafting secrets", "personal touch"},
		callToAction: "Experience the craftsmanship",
	},
	models.StorySeasonal: {
		structure:    []string{"season significance", "traditional connection", "craft adaptation", "celebration", "community"},
		emotionalArc: "anticipation to celebration",
		keyElements:  []string{"seasonal relevance", "festival connection", "cultural celebration"},
		callToAction: "Celebrate with us",
	},
	models.StoryProcess: {
		structure:    []string{"raw materials", "preparation", "creation steps", "refinement", "final product"},
		emotionalArc: "transformation journey",
		keyElements:  []string{"technical skill", "artistic vision", "patience and precision"},
		callToAction: "Appreciate the process",
	},
	models.StoryInspiration: {
		structure:    []string{"inspiration source", "creative vision", "design process", "execution", "impact"},
		emotionalArc: "inspiration to creation",
		keyElements:  []string{"creative spark", "artistic interpretation", "unique perspective"},
		callToAction: "Find your inspiration",
	},
}

// Keys are matched as substrings of the lower-cased location, with
// underscores read as spaces.
var regionalElements = map[string][]string{
	"rajasthan":  {"desert beauty", "royal heritage", "vibrant colors", "folk traditions"},
	"kerala":     {"backwaters", "spices", "ayurveda", "classical arts"},
	"punjab":     {"fertility", "harvest", "bhangra", "golden fields"},
	"gujarat":    {"business acumen", "textile heritage", "garba", "entrepreneurship"},
	"tamil_nadu": {"temple architecture", "classical dance", "bronze casting", "silk weaving"},
}

// regionOrder keeps region matching deterministic.
var regionOrder = []string{"rajasthan", "kerala", "punjab", "gujarat", "tamil_nadu"}

var craftTraditions = map[models.CraftType][]string{
	models.CraftPottery:  {"earthy traditions", "fire element", "divine creation"},
	models.CraftTextiles: {"weaving traditions", "color symbolism", "fabric heritage"},
	models.CraftJewelry:  {"adornment culture", "precious traditions", "ceremonial importance"},
	models.CraftWoodwork: {"tree reverence", "carved heritage", "furniture traditions"},
}

var traditionalValues = []string{"respect for elders", "devotion to craft", "patience"}

func regionFor(location string) []string {
	loc := strings.ToLower(location)
	for _, region := range regionOrder {
		if strings.Contains(loc, strings.ReplaceAll(region, "_", " ")) || strings.Contains(loc, region) {
			return regionalElements[region]
		}
	}
	return nil
}

func skillNarrative(years int) string {
	switch models.SkillLevelFor(years) {
	case models.SkillBeginner:
		return "emerging artisan, passionate beginner"
	case models.SkillIntermediate:
		return "skilled craftsperson with growing expertise"
	case models.SkillAdvanced:
		return "experienced master with refined technique"
	default:
		return "legendary artisan and heritage keeper"
	}
}

// chainStep is one story of the marketing funnel.
type chainStep struct {
	story     models.StoryType
	platforms []models.Platform
}

var marketingChain = []chainStep{
	{models.StoryBehindScenes, []models.Platform{models.PlatformInstagram, models.PlatformFacebook}},
	{models.StoryProcess, []models.Platform{models.PlatformYouTube, models.PlatformInstagram}},
	{models.StoryCulturalHeritage, []models.Platform{models.PlatformFacebook, models.PlatformPinterest}},
	{models.StoryCustomer, []models.Platform{models.PlatformInstagram, models.PlatformFacebook}},
	{models.StoryOrigin, []models.Platform{models.PlatformYouTube, models.PlatformFacebook}},
}
