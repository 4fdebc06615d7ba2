package recommend

import (
	"fmt"
	"time"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

const (
	DefaultCalendarDays = 30
	// MaxCalendarDays bounds the entries allocated for one calendar.
	MaxCalendarDays    = 366
	calendarDateLayout = "2006-01-02"
)

// AssignCalendar spreads recs over days dates starting at start. Recommendation
// i lands on day (i*stride) mod days with stride = max(1, days/len(recs)), so
// higher priorities come first and no two recommendations share a day unless
// there are more recommendations than days. Every date is present; unassigned
// dates carry an empty list.
func AssignCalendar(recs []models.ContentRecommendation, days int, start time.Time) ([]models.CalendarEntry, error) {
	if days <= 0 {
		return nil, models.NewValidationError("days", "must be at least 1")
	}
	if days > MaxCalendarDays {
		return nil, models.NewValidationError("days", fmt.Sprintf("must be at most %d", MaxCalendarDays))
	}

	entries := make([]models.CalendarEntry, days)
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for d := range entries {
		entries[d] = models.CalendarEntry{
			Date:            first.AddDate(0, 0, d).Format(calendarDateLayout),
			Recommendations: []models.ContentRecommendation{},
		}
	}

	stride := max(1, days/max(1, len(recs)))
	for i, rec := range recs {
		d := (i * stride) % days
		entries[d].Recommendations = append(entries[d].Recommendations, rec)
	}
	return entries, nil
}
