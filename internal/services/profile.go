package services

import (
	"context"
	"fmt"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/repositories/profiles"
)

// ProfileService saves and reads user profiles. A profile is created on
// its first save and only ever mutated by its own user; saving is a full
// overwrite, not a merge.
type ProfileService interface {
	Save(ctx context.Context, p models.Profile) error
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

type profileService struct {
	profiles profiles.Repository
	log      logging.Logger
}

func NewProfileService(repo profiles.Repository, log logging.Logger) ProfileService {
	return &profileService{profiles: repo, log: log}
}

func (s *profileService) Save(ctx context.Context, p models.Profile) error {
	if p.ID == "" {
		s.log.Debug(ctx, "profile save skipped, empty user id")
		return nil
	}
	p.Skills = dedupe(p.Skills)
	if err := s.profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.Get(ctx, userID)
}

// dedupe enforces set semantics on skills while preserving first-seen
// order.
func dedupe(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if _, ok := seen[sk]; ok {
			continue
		}
		seen[sk] = struct{}{}
		out = append(out, sk)
	}
	return out
}
