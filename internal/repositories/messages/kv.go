package messages

import (
	"context"
	"encoding/json"

	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/models"
	"github.com/elevatify/elevatify/internal/store"
)

const (
	nsDirect = "directMessages"
	nsGroup  = "groupMessages"
)

// KVRepository implements Repository over the shared entity store.
type KVRepository struct {
	store *store.Store
	log   logging.Logger
}

func NewKVRepository(st *store.Store, log logging.Logger) *KVRepository {
	return &KVRepository{store: st, log: log}
}

// pairKey is the sender-oriented key of a direct log: messages from a to
// b live under "a:b", messages from b to a under "b:a".
func pairKey(sender, peer string) string {
	return sender + ":" + peer
}

func (r *KVRepository) AppendDirect(ctx context.Context, m models.Message) error {
	return r.append(ctx, nsDirect, pairKey(m.From, m.To), m)
}

func (r *KVRepository) PairLogs(ctx context.Context, a, b string) ([]models.Message, []models.Message, error) {
	sentByA, err := r.list(ctx, nsDirect, pairKey(a, b))
	if err != nil {
		return nil, nil, err
	}
	sentByB, err := r.list(ctx, nsDirect, pairKey(b, a))
	if err != nil {
		return nil, nil, err
	}
	return sentByA, sentByB, nil
}

func (r *KVRepository) AppendGroup(ctx context.Context, groupID string, m models.Message) error {
	return r.append(ctx, nsGroup, groupID, m)
}

func (r *KVRepository) GroupLog(ctx context.Context, groupID string) ([]models.Message, error) {
	return r.list(ctx, nsGroup, groupID)
}

func (r *KVRepository) append(ctx context.Context, namespace, key string, m models.Message) error {
	return r.store.Update(ctx, namespace, key, func(current []byte) ([]byte, error) {
		return json.Marshal(append(r.decode(ctx, namespace, current), m))
	})
}

func (r *KVRepository) list(ctx context.Context, namespace, key string) ([]models.Message, error) {
	v, err := r.store.Get(ctx, namespace, key)
	if err != nil {
		return nil, err
	}
	return r.decode(ctx, namespace, v.Value), nil
}

// decode fails soft: a malformed log reads as empty.
func (r *KVRepository) decode(ctx context.Context, namespace string, raw []byte) []models.Message {
	if len(raw) == 0 {
		return nil
	}
	var log []models.Message
	if err := json.Unmarshal(raw, &log); err != nil {
		r.log.Warn(ctx, "malformed message log, treating as empty", "namespace", namespace, "error", err)
		return nil
	}
	return log
}
