package friends

import (
	"context"
	"encoding/json"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/store"
)

const (
	nsFriends  = "friends"
	nsSent     = "friendRequestsSent"
	nsReceived = "friendRequestsReceived"
)

// KVRepository implements Repository over the shared entity store.
type KVRepository struct {
	store *store.Store
	log   logging.Logger
}

func NewKVRepository(st *store.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: st, log: log}
}

func (r *KVRepository) Friends(ctx context.Context, userID string) ([]string, error) {
	return r.list(ctx, nsFriends, userID)
}

func (r *KVRepository) Sent(ctx context.Context, userID string) ([]string, error) {
	return r.list(ctx, nsSent, userID)
}

func (r *KVRepository) Received(ctx context.Context, userID string) ([]string, error) {
	return r.list(ctx, nsReceived, userID)
}

func (r *KVRepository) MutateFriends(ctx context.Context, userID string, fn func([]string) ([]string, error)) error {
	return r.mutate(ctx, nsFriends, userID, fn)
}

func (r *KVRepository) MutateSent(ctx context.Context, userID string, fn func([]string) ([]string, error)) error {
	return r.mutate(ctx, nsSent, userID, fn)
}

func (r *KVRepository) MutateReceived(ctx context.Context, userID string, fn func([]string) ([]string, error)) error {
	return r.mutate(ctx, nsReceived, userID, fn)
}

func (r *KVRepository) list(ctx context.Context, namespace, userID string) ([]string, error) {
	v, err := r.store.Get(ctx, namespace, userID)
	if err != nil {
		return nil, err
	}
	return r.decode(ctx, namespace, v.Value), nil
}

func (r *KVRepository) mutate(ctx context.Context, namespace, userID string, fn func([]string) ([]string, error)) error {
	return r.store.Update(ctx, namespace, userID, func(current []byte) ([]byte, error) {
		next, err := fn(r.decode(ctx, namespace, current))
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// decode fails soft: malformed id lists read as empty.
func (r *KVRepository) decode(ctx context.Context, namespace string, raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		r.log.Warn(ctx, "malformed id list, treating as empty", "namespace", namespace, "error", err)
		return nil
	}
	return ids
}
