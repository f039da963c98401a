package projects

import (
	"context"
	"encoding/json"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/store"
)

const (
	namespace     = "projects"
	collectionKey = "all"
)

// KVRepository implements Repository over the shared entity store.
type KVRepository struct {
	store *store.Store
	log   logging.Logger
}

func NewKVRepository(st *store.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: st, log: log}
}

func (r *KVRepository) All(ctx context.Context) ([]models.Project, error) {
	v, err := r.store.Get(ctx, namespace, collectionKey)
	if err != nil {
		return nil, err
	}
	return r.decode(ctx, v.Value), nil
}

func (r *KVRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *KVRepository) Mutate(ctx context.Context, fn func([]models.Project) ([]models.Project, error)) error {
	return r.store.Update(ctx, namespace, collectionKey, func(current []byte) ([]byte, error) {
		next, err := fn(r.decode(ctx, current))
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// decode fails soft: a malformed collection reads as empty rather than
// surfacing corruption to callers.
func (r *KVRepository) decode(ctx context.Context, raw []byte) []models.Project {
	if len(raw) == 0 {
		return nil
	}
	var all []models.Project
	if err := json.Unmarshal(raw, &all); err != nil {
		r.log.Warn(ctx, "malformed project collection, treating as empty", "error", err)
		return nil
	}
	return all
}
