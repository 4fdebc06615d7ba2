package storyteller

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// marketingContext summarises the ranked recommendations a story chain
// should reinforce.
type marketingContext struct {
	contentTypes []string
	platforms    []string
	hashtags     []string
	postingTimes []string
	position     int
	total        int
}

func newMarketingContext(recs []models.ContentRecommendation) *marketingContext {
	mc := &marketingContext{}
	seenType := map[string]bool{}
	seenPlatform := map[string]bool{}
	seenTag := map[string]bool{}
	seenTime := map[string]bool{}

	for _, r := range recs {
		if t := string(r.ContentType); t != "" && !seenType[t] {
			seenType[t] = true
			mc.contentTypes = append(mc.contentTypes, t)
		}
		for _, p := range r.TargetPlatforms {
			if !seenPlatform[string(p)] && len(mc.platforms) < 3 {
				seenPlatform[string(p)] = true
				mc.platforms = append(mc.platforms, string(p))
			}
		}
		for _, tag := range r.Hashtags[:min(5, len(r.Hashtags))] {
			if !seenTag[tag] && len(mc.hashtags) < 10 {
				seenTag[tag] = true
				mc.hashtags = append(mc.hashtags, tag)
			}
		}
		if r.BestTimeToPost != "" && !seenTime[r.BestTimeToPost] {
			seenTime[r.BestTimeToPost] = true
			mc.postingTimes = append(mc.postingTimes, r.BestTimeToPost)
		}
	}
	return mc
}

func buildPrompt(p *models.ArtisanProfile, req Request, mc *marketingContext) string {
	fw := frameworks[req.Type]
	var b strings.Builder

	fmt.Fprintf(&b, "Create a compelling %s for an Indian artisan and respond with a single JSON object and nothing else.\n\n", req.Type.Label())

	b.WriteString("Artisan profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Location: %s\n", p.Location)
	fmt.Fprintf(&b, "- Craft: %s\n", p.Specialization.Title())
	fmt.Fprintf(&b, "- Experience: %d years (%s)\n", p.ExperienceYears, skillNarrative(p.ExperienceYears))
	fmt.Fprintf(&b, "- Style: %s\n", p.SignatureStyle)
	fmt.Fprintf(&b, "- Target audience: %s\n", p.TargetAudience)

	if a := req.Analysis; a != nil && !a.Partial {
		b.WriteString("\nCurrent piece:\n")
		fmt.Fprintf(&b, "- Colors: %s\n", strings.Join(a.Colors, ", "))
		fmt.Fprintf(&b, "- Materials: %s\n", strings.Join(a.Materials, ", "))
		fmt.Fprintf(&b, "- Patterns: %s\n", strings.Join(a.Patterns, ", "))
		fmt.Fprintf(&b, "- Style: %s\n", a.Style)
		fmt.Fprintf(&b, "- Complexity: %s\n", a.Complexity)
		fmt.Fprintf(&b, "- Creation time: %s\n", a.EstimatedTime)
	}

	b.WriteString("\nCultural context:\n")
	fmt.Fprintf(&b, "- Regional elements: %s\n", strings.Join(regionFor(p.Location), ", "))
	fmt.Fprintf(&b, "- Traditional values: %s\n", strings.Join(traditionalValues, ", "))
	fmt.Fprintf(&b, "- Craft traditions: %s\n", strings.Join(craftTraditions[p.Specialization], ", "))

	b.WriteString("\nStory framework:\n")
	fmt.Fprintf(&b, "- Structure: %s\n", strings.Join(fw.structure, " -> "))
	fmt.Fprintf(&b, "- Emotional arc: %s\n", fw.emotionalArc)
	fmt.Fprintf(&b, "- Key elements: %s\n", strings.Join(fw.keyElements, ", "))

	if mc != nil {
		fmt.Fprintf(&b, "\nMarketing sequence: story %d of %d.\n", mc.position, mc.total)
		fmt.Fprintf(&b, "- Recommended content types: %s\n", strings.Join(mc.contentTypes, ", "))
		fmt.Fprintf(&b, "- Priority platforms: %s\n", strings.Join(mc.platforms, ", "))
		fmt.Fprintf(&b, "- Key hashtags: %s\n", strings.Join(mc.hashtags, " "))
		fmt.Fprintf(&b, "- Posting times: %s\n", strings.Join(mc.postingTimes, "; "))
	}

	platforms := make([]string, len(req.Platforms))
	for i, pl := range req.Platforms {
		platforms[i] = string(pl)
	}
	fmt.Fprintf(&b, "\nTarget platforms: %s\n", strings.Join(platforms, ", "))

	b.WriteString(`
Use exactly these keys:
{
  "title": "compelling title",
  "hook": "opening line that grabs attention",
  "narrative": "complete story following the structure",
  "key_messages": [3 to 5 takeaway messages],
  "emotional_tone": "primary emotional tone",
  "target_audience": "audience this story resonates with",
  "call_to_action": "clear call to action",
  "platform_adaptations": {"<platform>": "version adapted to that platform", one key per target platform},
  "supporting_assets": [visual or video content that supports the story],
  "hashtags": [up to 15 hashtags],
  "cultural_hooks": [cultural elements that make the story authentic],
  "marketing_angles": [how the story supports sales]
}

Keep the story authentic and culturally rich, include sensory details of the craft process and keep marketing subtle.`)

	return b.String()
}
