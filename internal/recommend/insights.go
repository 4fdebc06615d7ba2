package recommend

import (
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

var audiences = map[models.CraftType]string{
	models.CraftPottery:    "Home decor buyers, art collectors, functional pottery users",
	models.CraftTextiles:   "Home decor enthusiasts, fashion lovers, cultural appreciators",
	models.CraftJewelry:    "Fashion enthusiasts, gift buyers, collectors",
	models.CraftWoodwork:   "Furniture buyers, art collectors, home decorators",
	models.CraftMetalwork:  "Home decorators, festive gift buyers, collectors",
	models.CraftPainting:   "Art collectors, interior designers, corporate gift buyers",
	models.CraftEmbroidery: "Fashion lovers, bridal shoppers, cultural appreciators",
	models.CraftLeather:    "Fashion buyers, everyday accessory shoppers, gift buyers",
	models.CraftBamboo:     "Sustainable living enthusiasts, home decorators",
	models.CraftStonework:  "Architects, home decorators, art collectors",
	models.CraftGlasswork:  "Jewelry lovers, home decorators, gift buyers",
}

// Insights derives marketing notes from an image analysis.
func Insights(a models.CraftAnalysis) models.CraftInsights {
	in := models.CraftInsights{
		MarketAppeal:      "Good market appeal - accessible to broad audience",
		TargetAudience:    "Art enthusiasts and cultural appreciators",
		SeasonalRelevance: "Consistent year-round appeal",
		UniquenessFactor:  "Unique handmade appeal with artistic value",
		ContentPotential:  "Good content potential - educational and inspiring for audience",
	}

	if a.Complexity == models.ComplexityAdvanced {
		in.MarketAppeal = "Strong market appeal - suitable for mid to high-end market"
		in.ContentPotential = "Excellent content potential - complex process showcases expertise"
	}
	if aud, ok := audiences[a.CraftType]; ok {
		in.TargetAudience = aud
	}

	switch {
	case strings.Contains(strings.ToLower(a.Style), "festival"):
		in.SeasonalRelevance = "Perfect for festival seasons and celebrations"
	case a.CraftType == models.CraftTextiles:
		in.SeasonalRelevance = "Year-round appeal with seasonal color variations"
	}

	switch {
	case a.Confidence > 0.9:
		in.UniquenessFactor = "Highly distinctive craft with clear traditional elements"
	case a.Confidence > 0.7:
		in.UniquenessFactor = "Good uniqueness with recognizable craft characteristics"
	}
	return in
}
