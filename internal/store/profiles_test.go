package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

func potter() ProfileInput {
	return ProfileInput{
		Name:            "Asha Kumari",
		Location:        "Khurja, Uttar Pradesh",
		Specialization:  "Pottery",
		ExperienceYears: 12,
		SignatureStyle:  "blue glazed terracotta",
		TargetAudience:  "urban home decor buyers",
		Platforms:       []string{"instagram", "youtube"},
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	s := NewMemory()

	created, err := s.Create(potter())
	require.NoError(t, err)
	assert.Equal(t, "asha_kumari_1", created.ID)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", got.Name)
	assert.Equal(t, "Khurja, Uttar Pradesh", got.Location)
	assert.Equal(t, models.CraftPottery, got.Specialization)
	assert.Equal(t, 12, got.ExperienceYears)
	assert.Equal(t, "blue glazed terracotta", got.SignatureStyle)
	assert.Equal(t, "urban home decor buyers", got.TargetAudience)
	assert.Equal(t, []models.Platform{models.PlatformInstagram, models.PlatformYouTube}, got.Platforms)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_DefaultsPlatforms(t *testing.T) {
	s := NewMemory()
	in := potter()
	in.Platforms = nil

	p, err := s.Create(in)
	require.NoError(t, err)
	assert.Equal(t, []models.Platform{models.PlatformInstagram, models.PlatformFacebook}, p.Platforms)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		field  string
	}{
		{"blank name", func(in *ProfileInput) { in.Name = "  " }, "name"},
		{"unknown craft", func(in *ProfileInput) { in.Specialization = "origami" }, "specialization"},
		{"unknown literal", func(in *ProfileInput) { in.Specialization = "unknown" }, "specialization"},
		{"negative experience", func(in *ProfileInput) { in.ExperienceYears = -1 }, "experience_years"},
		{"too much experience", func(in *ProfileInput) { in.ExperienceYears = 81 }, "experience_years"},
		{"bad platform", func(in *ProfileInput) { in.Platforms = []string{"instagram", "myspace"} }, "social_media_platforms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemory()
			in := potter()
			tt.mutate(&in)

			_, err := s.Create(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrValidation))

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Zero(t, s.Len())
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewMemory().Get("nobody_1")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUpdate(t *testing.T) {
	s := NewMemory()
	p, err := s.Create(potter())
	require.NoError(t, err)

	years := 20
	platforms := []string{"pinterest"}
	updated, err := s.Update(p.ID, ProfileUpdate{ExperienceYears: &years, Platforms: &platforms})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.ExperienceYears)
	assert.Equal(t, []models.Platform{models.PlatformPinterest}, updated.Platforms)
	assert.Equal(t, "Asha Kumari", updated.Name)

	bad := "glitter"
	_, err = s.Update(p.ID, ProfileUpdate{Specialization: &bad})
	assert.True(t, errors.Is(err, models.ErrValidation))

	empty := " "
	_, err = s.Update(p.ID, ProfileUpdate{Name: &empty})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = s.Update("ghost_9", ProfileUpdate{ExperienceYears: &years})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDelete_DoesNotReuseSequence(t *testing.T) {
	s := NewMemory()
	first, err := s.Create(potter())
	require.NoError(t, err)
	require.NoError(t, s.Delete(first.ID))
	assert.True(t, errors.Is(s.Delete(first.ID), models.ErrNotFound))

	second, err := s.Create(potter())
	require.NoError(t, err)
	assert.Equal(t, "asha_kumari_2", second.ID)
}

func TestReturnedProfilesAreCopies(t *testing.T) {
	s := NewMemory()
	p, err := s.Create(potter())
	require.NoError(t, err)

	p.Name = "mutated"
	p.Platforms[0] = models.PlatformTikTok

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", got.Name)
	assert.Equal(t, models.PlatformInstagram, got.Platforms[0])
}

func TestListAndFind(t *testing.T) {
	s := NewMemory()
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { tick = tick.Add(time.Minute); return tick }

	_, err := s.Create(potter())
	require.NoError(t, err)

	weaver := potter()
	weaver.Name = "Ravi Das"
	weaver.Location = "Varanasi"
	weaver.Specialization = "textiles"
	weaver.ExperienceYears = 1
	_, err = s.Create(weaver)
	require.NoError(t, err)

	all := s.List()
	require.Len(t, all, 2)
	assert.Equal(t, "asha_kumari_1", all[0].ID)
	assert.Equal(t, "ravi_das_2", all[1].ID)

	assert.Len(t, s.FindByCraft(models.CraftTextiles), 1)
	assert.Empty(t, s.FindByCraft(models.CraftBamboo))
	assert.Len(t, s.FindByLocation("varanasi"), 1)
	assert.Len(t, s.FindByLocation("PRADESH"), 1)

	stats := s.CraftStatistics()
	assert.Equal(t, 1, stats[models.CraftPottery])
	assert.Equal(t, 1, stats[models.CraftTextiles])

	dist := s.ExperienceDistribution()
	assert.Equal(t, 1, dist[BucketBeginner])
	assert.Equal(t, 1, dist[BucketExperienced])
	assert.Equal(t, 0, dist[BucketExpert])
}

func TestOpen_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	s, err := Open(path)
	require.NoError(t, err)
	a, err := s.Create(potter())
	require.NoError(t, err)
	b, err := s.Create(potter())
	require.NoError(t, err)
	require.NoError(t, s.Delete(a.ID))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())

	got, err := reopened.Get(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "blue glazed terracotta", got.SignatureStyle)

	c, err := reopened.Create(potter())
	require.NoError(t, err)
	assert.Equal(t, "asha_kumari_3", c.ID)
}

func TestOpen_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	s := NewMemory()
	p, err := s.Create(potter())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))

	var doc map[string]models.ArtisanProfile
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Asha Kumari", doc[p.ID].Name)
}

func TestConcurrentCreates(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(potter())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}

func TestCreate_IDIsPathSafe(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Meera/Devi Crafts", "meera_devi_crafts_1"},
		{"  Ravi   Kumar  ", "ravi_kumar_1"},
		{"Who? Me & Co.", "who_me_co_1"},
		{"Studio #42", "studio_42_1"},
		{"???", "artisan_1"},
		{"मीरा", "artisan_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemory()
			in := potter()
			in.Name = tt.name

			p, err := s.Create(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.ID)
			assert.Equal(t, strings.TrimSpace(tt.name), p.Name)

			got, err := s.Get(p.ID)
			require.NoError(t, err)
			assert.Equal(t, p.ID, got.ID)
		})
	}
}
