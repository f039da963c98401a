// Package projects stores the shared project collection. All projects
// live under a single storage key and are rewritten whole on mutation,
// matching the collection granularity of the original system.
package projects

import (
	"context"

	"github.com/elevatify/elevatify/internal/models"
)

// Repository describes access to the project collection. Keys are
// constructed internally; callers never see them.
type Repository interface {
	// All returns every project in stored order. Missing or malformed
	// storage reads as an empty collection.
	All(ctx context.Context) ([]models.Project, error)

	// Get returns one project by id, or nil when absent.
	Get(ctx context.Context, id string) (*models.Project, error)

	// Mutate runs a read-modify-write over the whole collection. fn may
	// return common.ErrNoChange to resolve as a silent no-op; it can run
	// more than once on version conflicts and must be pure.
	Mutate(ctx context.Context, fn func([]models.Project) ([]models.Project, error)) error
}
