package a2a

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

// Number of ideas per pool shown in a chat reply.
const (
	generalShown     = 5
	specializedShown = 3
)

func renderStrategy(st *strategist.Strategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Content strategy for %s\n\n", st.Artisan.Name)
	fmt.Fprintf(&b, "%s artisan from %s, %d years of experience. Season: **%s**.\n",
		st.Artisan.Specialization.Title(), st.Artisan.Location, st.Artisan.ExperienceYears, st.Season)

	writeSection(&b, "Top content ideas", st.General, generalShown)
	writeSection(&b, "Skill showcase", st.Specialized, specializedShown)

	if len(st.Calendar) > 0 {
		b.WriteString("\n## This week\n")
		writeCalendar(&b, st.Calendar)
	}
	return b.String()
}

func renderCalendar(p *models.ArtisanProfile, entries []models.CalendarEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d-day content calendar for %s\n\n", len(entries), p.Name)
	writeCalendar(&b, entries)
	return b.String()
}

func writeSection(b *strings.Builder, heading string, recs []models.ContentRecommendation, n int) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", heading)
	for i, r := range recs {
		if i == n {
			break
		}
		fmt.Fprintf(b, "\n**%d. %s** (%s, priority %.2f)\n", i+1, r.TitleSuggestion, r.ContentType, r.PriorityScore)
		fmt.Fprintf(b, "%s\n", r.Description)
		fmt.Fprintf(b, "- Best time: %s\n", r.BestTimeToPost)
		fmt.Fprintf(b, "- Platforms: %s\n", joinPlatforms(r.TargetPlatforms))
		fmt.Fprintf(b, "- Hashtags: %s\n", strings.Join(r.Hashtags, " "))
	}
}

func writeCalendar(b *strings.Builder, entries []models.CalendarEntry) {
	for _, e := range entries {
		if len(e.Recommendations) == 0 {
			continue
		}
		titles := make([]string, 0, len(e.Recommendations))
		for _, r := range e.Recommendations {
			titles = append(titles, r.TitleSuggestion)
		}
		fmt.Fprintf(b, "- %s: %s\n", e.Date, strings.Join(titles, "; "))
	}
}

func joinPlatforms(ps []models.Platform) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return strings.Join(out, ", ")
}
