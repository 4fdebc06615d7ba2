package recommend

import "github.com/BerylCAtieno/artisan-content-agent/internal/models"

// Template is a static content idea. Title and Description may contain the
// tokens {craft}, {craft_lc}, {style}, {audience}, {season}, {season_lc},
// {theme}, {technique}, {skill}, {market}, {market_title} and {focus}.
type Template struct {
	Type        models.ContentType
	Title       string
	Description string
	Hashtags    []string
	Platforms   []models.Platform
	Priority    float64
	Seasons     []models.Season
	BestTime    string
	Reasoning   string

	vars map[string]string
}

func (t Template) taggedWith(s models.Season) bool {
	for _, ts := range t.Seasons {
		if ts == s {
			return true
		}
	}
	return false
}

// seasonBound templates only make sense inside their own season.
func (t Template) seasonBound() bool {
	return t.Type == models.ContentSeasonal
}

// slot selects a pattern and gives it a craft-specific base priority.
type slot struct {
	kind     models.ContentType
	priority float64
	seasons  []models.Season
}

var (
	ig = models.PlatformInstagram
	fb = models.PlatformFacebook
	yt = models.PlatformYouTube
	pi = models.PlatformPinterest
	tt = models.PlatformTikTok
)

var generalPatterns = map[models.ContentType]Template{
	models.ContentProcessVideo: {
		Title:       "From Raw Material to {craft}: The Making of {style}",
		Description: "Film the full making process of one {style} piece, narrated for {audience}.",
		Hashtags:    []string{"#processvideo", "#makingof"},
		Platforms:   []models.Platform{ig, yt},
		Reasoning:   "Process videos are the most engaging format for handmade {craft_lc} content",
	},
	models.ContentFinishedProduct: {
		Title:       "Latest {craft} Creation: {style}",
		Description: "Photograph the finished piece in natural light and in settings {audience} can picture at home.",
		Hashtags:    []string{"#shophandmade"},
		Platforms:   []models.Platform{ig, fb, pi},
		Reasoning:   "Finished product photos drive purchase interest",
	},
	models.ContentBehindScenes: {
		Title:       "A Day in My {craft} Workshop",
		Description: "Show the workspace, tools and daily rhythm behind your {style} work.",
		Hashtags:    []string{"#behindthescenes"},
		Platforms:   []models.Platform{ig, fb},
		Reasoning:   "Behind-the-scenes content builds trust and a personal connection",
	},
	models.ContentTutorial: {
		Title:       "{craft} Tutorial for Beginners",
		Description: "Teach one simple {craft_lc} step so {audience} can appreciate the skill involved.",
		Hashtags:    []string{"#tutorial", "#learncraft"},
		Platforms:   []models.Platform{yt, ig},
		Reasoning:   "Educational content builds authority in {craft_lc}",
	},
	models.ContentStoryTelling: {
		Title:       "The Story Behind My {style}",
		Description: "Share how you learned {craft_lc}, who taught you and what your style means to you.",
		Hashtags:    []string{"#artisanstory"},
		Platforms:   []models.Platform{ig, fb},
		Reasoning:   "Personal stories make handmade work memorable",
	},
	models.ContentCulturalContext: {
		Title:       "The Heritage of Indian {craft}",
		Description: "Explain the tradition, region and symbolism behind your {craft_lc} for {audience}.",
		Hashtags:    []string{"#heritage", "#culture"},
		Platforms:   []models.Platform{ig, fb, yt},
		Reasoning:   "Cultural context separates handmade {craft_lc} from mass-produced goods",
	},
	models.ContentCustomerTestimonial: {
		Title:       "Why Customers Love Our {craft}",
		Description: "Feature a customer photo or short review of your {style} pieces in use.",
		Hashtags:    []string{"#happycustomer"},
		Platforms:   []models.Platform{ig, fb},
		Reasoning:   "Social proof increases buyer confidence",
	},
	models.ContentTimeLapse: {
		Title:       "{craft} Time-Lapse: Hours of Work in One Minute",
		Description: "Record a complete {craft_lc} piece and compress it into a short reel.",
		Hashtags:    []string{"#timelapse", "#reels"},
		Platforms:   []models.Platform{ig, tt, yt},
		Reasoning:   "Short time-lapses perform well as reels and shorts",
	},
	models.ContentComparison: {
		Title:       "Handmade vs Machine-Made {craft}",
		Description: "Compare your handmade {craft_lc} with factory alternatives and point out what only hand work produces.",
		Hashtags:    []string{"#handmadevsmachine"},
		Platforms:   []models.Platform{ig, yt},
		Reasoning:   "Comparisons teach buyers the value of handmade work",
	},
}

var specializedPatterns = map[models.ContentType]Template{
	models.ContentTutorial: {
		Title:       "Master {technique} in {craft}: {skill}-Level Guide",
		Description: "Break {technique} down into clear steps and show common mistakes to avoid.",
		Hashtags:    []string{"#tutorial", "#technique"},
		Platforms:   []models.Platform{yt, ig},
		Reasoning:   "Technique tutorials showcase {skill}-level expertise in {craft_lc}",
	},
	models.ContentProcessVideo: {
		Title:       "{technique} Up Close: How I Make {style}",
		Description: "A close-up, narrated video of {technique} on one of your {style} pieces.",
		Hashtags:    []string{"#processvideo"},
		Platforms:   []models.Platform{ig, yt},
		Reasoning:   "Close-up process footage highlights the skill behind {technique}",
	},
	models.ContentBehindScenes: {
		Title:       "Preparing for {technique}: Inside My {craft} Workshop",
		Description: "Walk through the tools, materials and preparation that {technique} needs.",
		Hashtags:    []string{"#behindthescenes", "#tools"},
		Platforms:   []models.Platform{ig, fb},
		Reasoning:   "Showing preparation work builds appreciation for the craft",
	},
	models.ContentTimeLapse: {
		Title:       "{technique} in 60 Seconds",
		Description: "Compress a full {technique} session into a one-minute reel.",
		Hashtags:    []string{"#timelapse"},
		Platforms:   []models.Platform{ig, tt, yt},
		Reasoning:   "Fast technique reels reach new audiences",
	},
	models.ContentComparison: {
		Title:       "Beginner vs {skill}: {technique} Side by Side",
		Description: "Show how {technique} looks at different skill levels and what changes with practice.",
		Hashtags:    []string{"#skillprogress"},
		Platforms:   []models.Platform{ig, pi},
		Reasoning:   "Skill comparisons invite engagement from learners",
	},
}

var seasonalPattern = Template{
	Type:        models.ContentSeasonal,
	Title:       "Perfect {season} {craft}: {theme}",
	Description: "{theme}. Plan posts around what {audience} are shopping for this {season_lc}.",
	Platforms:   []models.Platform{ig, fb},
	Priority:    0.8,
	Reasoning:   "Seasonal relevance increases engagement during {season_lc}",
}

var techniquePattern = Template{
	Type:        models.ContentTutorial,
	Title:       "Mastering {technique} in {craft}",
	Description: "Step-by-step guide to the {technique} technique.",
	Platforms:   []models.Platform{yt, ig},
	Priority:    0.95,
	Reasoning:   "Technique-specific content showcases expertise in {technique}",
}

type marketStrategy struct {
	focus     string
	platforms []models.Platform
	hashtags  []string
}

const defaultMarket = "home decor"

var marketStrategies = map[string]marketStrategy{
	"home decor": {
		focus:     "lifestyle integration, room styling and functional beauty",
		platforms: []models.Platform{pi, ig, fb},
		hashtags:  []string{"#homedecor", "#interiordesign", "#handmadehome"},
	},
	"fashion": {
		focus:     "styling tips, outfit coordination and trend integration",
		platforms: []models.Platform{ig, pi, tt},
		hashtags:  []string{"#fashion", "#style", "#handmadefashion"},
	},
	"art collectors": {
		focus:     "artistic process, uniqueness and investment value",
		platforms: []models.Platform{ig, yt, fb},
		hashtags:  []string{"#artcollection", "#investment", "#uniqueart"},
	},
}

var marketPattern = Template{
	Type:        models.ContentFinishedProduct,
	Title:       "{craft} for {market_title} Enthusiasts",
	Description: "Showcase how your {craft_lc} fits {market}: {focus}.",
	Priority:    0.9,
	Reasoning:   "Market-specific content resonates with the {market} audience",
}

var skillHashtags = map[models.SkillLevel][]string{
	models.SkillBeginner:     {"#learning", "#newartisan", "#practice"},
	models.SkillIntermediate: {"#skilled", "#crafting", "#technique"},
	models.SkillAdvanced:     {"#expert", "#masterpiece", "#advanced"},
	models.SkillExpert:       {"#master", "#heritage", "#teaching"},
}

// commonHashtags follow the craft-name tag on every recommendation.
var commonHashtags = []string{"#handmade", "#indiancrafts"}
