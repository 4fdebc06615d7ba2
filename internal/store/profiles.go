package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/metrics"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

// ProfileStore is the keyed collection of artisan profiles. It is safe for
// concurrent use. When path is non-empty every mutation is flushed to disk.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.ArtisanProfile
	seq      int
	path     string
	now      func() time.Time
	log      zerolog.Logger
}

// NewMemory returns a store that never touches the filesystem.
func NewMemory() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]*models.ArtisanProfile),
		now:      time.Now,
		log:      logging.With("store"),
	}
}

// Open loads profiles from path if it exists and persists to it afterwards.
func Open(path string) (*ProfileStore, error) {
	s := NewMemory()
	s.path = path
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Info().Str("path", path).Msg("no profiles file found, starting fresh")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	var stored map[string]*models.ArtisanProfile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}

	for id, p := range stored {
		if p == nil {
			continue
		}
		if !p.Specialization.Valid() {
			s.log.Warn().Str("id", id).Str("specialization", string(p.Specialization)).Msg("skipping profile with unknown specialization")
			continue
		}
		p.ID = id
		s.profiles[id] = p
		if n := sequenceOf(id); n > s.seq {
			s.seq = n
		}
	}
	metrics.ProfilesStored.Set(float64(len(s.profiles)))
	s.log.Info().Int("count", len(s.profiles)).Str("path", path).Msg("loaded profiles")

	return s, nil
}

// Create validates the input, assigns an identifier and stores the profile.
func (s *ProfileStore) Create(in ProfileInput) (*models.ArtisanProfile, error) {
	if len(in.Platforms) == 0 {
		in.Platforms = DefaultPlatforms
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	now := s.now().UTC()
	p := &models.ArtisanProfile{
		ID:              makeID(in.Name, s.seq),
		Name:            strings.TrimSpace(in.Name),
		Location:        strings.TrimSpace(in.Location),
		Specialization:  models.ParseCraftType(in.Specialization),
		ExperienceYears: in.ExperienceYears,
		SignatureStyle:  strings.TrimSpace(in.SignatureStyle),
		TargetAudience:  strings.TrimSpace(in.TargetAudience),
		Platforms:       parsePlatforms(in.Platforms),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.profiles[p.ID] = p

	if err := s.flushLocked(); err != nil {
		delete(s.profiles, p.ID)
		return nil, err
	}
	metrics.ProfilesStored.Set(float64(len(s.profiles)))
	s.log.Info().Str("id", p.ID).Str("specialization", string(p.Specialization)).Msg("created profile")

	return p.Clone(), nil
}

func (s *ProfileStore) Get(id string) (*models.ArtisanProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", id, models.ErrNotFound)
	}
	return p.Clone(), nil
}

// Update applies the non-nil fields of in to the stored profile.
func (s *ProfileStore) Update(id string, in ProfileUpdate) (*models.ArtisanProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", id, models.ErrNotFound)
	}

	prev := current.Clone()
	in.apply(current)
	current.UpdatedAt = s.now().UTC()

	if err := s.flushLocked(); err != nil {
		s.profiles[id] = prev
		return nil, err
	}
	s.log.Info().Str("id", id).Msg("updated profile")

	return current.Clone(), nil
}

func (s *ProfileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile %q: %w", id, models.ErrNotFound)
	}
	delete(s.profiles, id)

	if err := s.flushLocked(); err != nil {
		s.profiles[id] = p
		return err
	}
	metrics.ProfilesStored.Set(float64(len(s.profiles)))
	s.log.Info().Str("id", id).Msg("deleted profile")

	return nil
}

// List returns every profile ordered by creation time, then id.
func (s *ProfileStore) List() []*models.ArtisanProfile {
	return s.filter(func(*models.ArtisanProfile) bool { return true })
}

func (s *ProfileStore) FindByCraft(craft models.CraftType) []*models.ArtisanProfile {
	return s.filter(func(p *models.ArtisanProfile) bool { return p.Specialization == craft })
}

// FindByLocation matches a case-insensitive substring of the location.
func (s *ProfileStore) FindByLocation(location string) []*models.ArtisanProfile {
	needle := strings.ToLower(strings.TrimSpace(location))
	return s.filter(func(p *models.ArtisanProfile) bool {
		return strings.Contains(strings.ToLower(p.Location), needle)
	})
}

func (s *ProfileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

func (s *ProfileStore) filter(keep func(*models.ArtisanProfile) bool) []*models.ArtisanProfile {
	s.mu.RLock()
	out := make([]*models.ArtisanProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *models.ArtisanProfile) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Export writes the whole collection as the same JSON document used on disk.
func (s *ProfileStore) Export(w io.Writer) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.profiles, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// flushLocked writes the collection atomically. Caller holds s.mu.
func (s *ProfileStore) flushLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// makeID builds "<slug>_<seq>". The slug keeps only [a-z0-9] runs joined by
// single underscores so the id is always a single URL path segment.
func makeID(name string, seq int) string {
	return fmt.Sprintf("%s_%d", slugify(name), seq)
}

func slugify(name string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			gap = false
			continue
		}
		gap = true
	}
	if b.Len() == 0 {
		return "artisan"
	}
	return b.String()
}

// sequenceOf extracts the numeric suffix of an identifier, or 0.
func sequenceOf(id string) int {
	i := strings.LastIndexByte(id, '_')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}
