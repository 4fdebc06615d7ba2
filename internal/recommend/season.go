package recommend

import (
	"time"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// SeasonFor maps a calendar month onto a content season.
func SeasonFor(month time.Month) models.Season {
	switch {
	case month >= time.October && month <= time.November:
		return models.SeasonFestival
	case month >= time.June && month <= time.September:
		return models.SeasonMonsoon
	case month >= time.March && month <= time.May:
		return models.SeasonSummer
	default:
		return models.SeasonWinter
	}
}
