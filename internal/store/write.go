package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/elevatify/elevatify/internal/common"
	"github.com/elevatify/elevatify/internal/dbx"
	"github.com/elevatify/elevatify/internal/notify"
)

// Put writes value under namespace/key if and only if the stored version
// still equals expect (0 = the key must not exist yet). On success the
// commit is recorded in the changelog for other contexts and a local
// change event is published on this handle's bus. A stale expect fails
// with common.ErrVersionConflict.
func (s *Store) Put(ctx context.Context, namespace, key string, value []byte, expect int64) error {
	if s.closed.Load() {
		return common.ErrStoreClosed
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := currentVersion(ctx, tx, namespace, key)
		if err != nil {
			return err
		}
		if current != expect {
			return common.ErrVersionConflict
		}

		if current == 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO kv (namespace, key, value, version) VALUES (?, ?, ?, 1)`,
				namespace, key, value)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE kv SET value = ?, version = version + 1 WHERE namespace = ? AND key = ?`,
				value, namespace, key)
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO changelog (namespace, key, value, origin) VALUES (?, ?, ?, ?)`,
			namespace, key, value, s.origin)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return common.ErrVersionConflict
		}
		return fmt.Errorf("writing %s/%s: %w", namespace, key, err)
	}

	s.bus.Publish(notify.Event{Namespace: namespace, Key: key, Value: value, Kind: notify.KindLocal})
	return nil
}

// Delete removes namespace/key under the same compare-and-swap rules as
// Put. Deleting a key that does not exist (expect 0) is a silent no-op.
// The changelog records the delete with a nil value.
func (s *Store) Delete(ctx context.Context, namespace, key string, expect int64) error {
	if s.closed.Load() {
		return common.ErrStoreClosed
	}

	deleted := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := currentVersion(ctx, tx, namespace, key)
		if err != nil {
			return err
		}
		if current != expect {
			return common.ErrVersionConflict
		}
		if current == 0 {
			return nil // nothing stored, nothing to delete
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM kv WHERE namespace = ? AND key = ?`, namespace, key); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO changelog (namespace, key, value, origin) VALUES (?, ?, NULL, ?)`,
			namespace, key, s.origin); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return common.ErrVersionConflict
		}
		return fmt.Errorf("deleting %s/%s: %w", namespace, key, err)
	}

	if deleted {
		s.bus.Publish(notify.Event{Namespace: namespace, Key: key, Value: nil, Kind: notify.KindLocal})
	}
	return nil
}

// Update runs a read-modify-write on one collection: read the current
// value, apply fn, write the result back with the observed version. If a
// concurrent context committed in between, the write fails the version
// check and the whole cycle retries with backoff, up to the configured
// attempt budget. fn must be pure: it can run more than once.
//
// fn returning common.ErrNoChange makes the update a successful no-op
// (nothing written, no event published). This is how mutations with
// violated preconditions resolve silently.
func (s *Store) Update(ctx context.Context, namespace, key string, fn func(current []byte) ([]byte, error)) error {
	backoff := retry.WithMaxRetries(s.retryAttempts, retry.NewExponential(2*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		cur, err := s.Get(ctx, namespace, key)
		if err != nil {
			return err
		}

		next, err := fn(cur.Value)
		if err != nil {
			if errors.Is(err, common.ErrNoChange) {
				return nil
			}
			return err
		}

		if err := s.Put(ctx, namespace, key, next, cur.Version); err != nil {
			if errors.Is(err, common.ErrVersionConflict) {
				s.log.Debug(ctx, "version conflict, retrying", "namespace", namespace, "key", key)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

func currentVersion(ctx context.Context, tx dbx.DBTX, namespace, key string) (int64, error) {
	var version int64
	err := tx.QueryRowContext(ctx,
		`SELECT version FROM kv WHERE namespace = ? AND key = ?`,
		namespace, key).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}
