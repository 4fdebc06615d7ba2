package store

import "github.com/BerylCAtieno/artisan-content-agent/internal/models"

// Experience distribution bucket labels.
const (
	BucketBeginner     = "beginner (0-2 years)"
	BucketIntermediate = "intermediate (3-7 years)"
	BucketExperienced  = "experienced (8-15 years)"
	BucketExpert       = "expert (15+ years)"
)

// CraftStatistics counts profiles per specialization.
func (s *ProfileStore) CraftStatistics() map[models.CraftType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[models.CraftType]int)
	for _, p := range s.profiles {
		stats[p.Specialization]++
	}
	return stats
}

// ExperienceDistribution buckets profiles by years of experience. Every bucket
// is present even when empty.
func (s *ProfileStore) ExperienceDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := map[string]int{
		BucketBeginner:     0,
		BucketIntermediate: 0,
		BucketExperienced:  0,
		BucketExpert:       0,
	}
	for _, p := range s.profiles {
		switch models.SkillLevelFor(p.ExperienceYears) {
		case models.SkillBeginner:
			dist[BucketBeginner]++
		case models.SkillIntermediate:
			dist[BucketIntermediate]++
		case models.SkillAdvanced:
			dist[BucketExperienced]++
		default:
			dist[BucketExpert]++
		}
	}
	return dist
}
