package analyzer

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

func buildPrompt(p *models.ArtisanProfile) string {
	crafts := make([]string, len(models.CraftTypes))
	for i, c := range models.CraftTypes {
		crafts[i] = string(c)
	}

	return fmt.Sprintf(`Analyze this Indian craft image and respond with a single JSON object and nothing else.

Artisan context:
- Specialization: %s
- Experience: %d years
- Location: %s
- Style: %s

Use exactly these keys:
{
  "craft_type": one of %s,
  "colors": [dominant colors],
  "patterns": [visible patterns such as geometric, floral, tribal],
  "materials": [materials such as clay, wood, metal, fabric],
  "style": "overall style description",
  "complexity_level": "beginner" | "intermediate" | "advanced" | "master",
  "estimated_time": "estimated creation time",
  "cultural_significance": "brief cultural context",
  "confidence_score": number between 0 and 1,
  "techniques_observed": [techniques visible in the piece],
  "content_angles": [suggested social media content angles]
}

Focus on traditional Indian craft characteristics. Take the artisan's specialization and experience into account.`,
		p.Specialization, p.ExperienceYears, p.Location, p.SignatureStyle, strings.Join(crafts, "/"))
}
