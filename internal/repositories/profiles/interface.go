// Package profiles stores user profiles, one storage key per user id.
package profiles

import (
	"context"

	"github.com/elevatify/elevatify/internal/models"
)

// Repository describes access to user profiles.
type Repository interface {
	// Get returns the profile for userID, or nil when none has been saved
	// yet (or the stored record is malformed).
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// Save overwrites the user's profile, creating it on first save.
	Save(ctx context.Context, p models.Profile) error
}
