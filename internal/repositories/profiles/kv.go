package profiles

import (
	"context"
	"encoding/json"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/store"
)

const namespace = "profiles"

// KVRepository implements Repository over the shared entity store.
type KVRepository struct {
	store *store.Store
	log   logging.Logger
}

func NewKVRepository(st *store.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: st, log: log}
}

func (r *KVRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	v, err := r.store.Get(ctx, namespace, userID)
	if err != nil {
		return nil, err
	}
	if len(v.Value) == 0 {
		return nil, nil
	}
	var p models.Profile
	if err := json.Unmarshal(v.Value, &p); err != nil {
		r.log.Warn(ctx, "malformed profile, treating as absent", "user_id", userID, "error", err)
		return nil, nil
	}
	return &p, nil
}

func (r *KVRepository) Save(ctx context.Context, p models.Profile) error {
	return r.store.Update(ctx, namespace, p.ID, func([]byte) ([]byte, error) {
		return json.Marshal(p)
	})
}
