package store

import (
	"context"
	"time"

	"github.com/elevatify/elevatify/internal/notify"
)

// watch polls for commits made by other contexts. `PRAGMA data_version`
// moves only when a connection other than ours commits, which makes it a
// faithful stand-in for the original cross-context signal: it never fires
// for this handle's own writes.
func (s *Store) watch(ctx context.Context) {
	defer close(s.done)

	last, err := s.dataVersion(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading initial data version", "error", err)
	}

	ticker := time.NewTicker(s.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v, err := s.dataVersion(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Warn(ctx, "polling data version", "error", err)
				continue
			}
			if v == last {
				continue
			}
			last = v
			s.drain(ctx)
		}
	}
}

// drain reads changelog rows past the checkpoint and publishes the ones
// committed by other contexts as external events, carrying the changed
// key and its new value (nil for deletes). Rows this handle wrote are
// skipped: their events were already published locally at commit time.
func (s *Store) drain(ctx context.Context) {
	for _, c := range s.collectExternal(ctx) {
		s.bus.Publish(notify.Event{
			Namespace: c.namespace,
			Key:       c.key,
			Value:     c.value,
			Kind:      notify.KindExternal,
		})
	}
}

type change struct {
	namespace string
	key       string
	value     []byte
}

// collectExternal advances the checkpoint under the lock and returns the
// other-origin changes found. Publishing happens outside the lock so a
// subscriber may call back into the store.
func (s *Store) collectExternal(ctx context.Context) []change {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, namespace, key, value, origin FROM changelog WHERE seq > ? ORDER BY seq`,
		s.checkpoint)
	if err != nil {
		s.log.Warn(ctx, "reading changelog", "error", err)
		return nil
	}
	defer rows.Close()

	var external []change

	for rows.Next() {
		var (
			seq       int64
			namespace string
			key       string
			value     []byte
			origin    string
		)
		if err := rows.Scan(&seq, &namespace, &key, &value, &origin); err != nil {
			s.log.Warn(ctx, "scanning changelog row", "error", err)
			return external
		}
		s.checkpoint = seq
		if origin != s.origin {
			external = append(external, change{namespace: namespace, key: key, value: value})
		}
	}
	if err := rows.Err(); err != nil {
		s.log.Warn(ctx, "iterating changelog", "error", err)
	}
	return external
}

// Resume catches a context up after it was inactive: missed external
// commits are drained first, then a refresh pulse asks subscribers to
// recompute their projections unconditionally.
func (s *Store) Resume(ctx context.Context) {
	if s.closed.Load() {
		return
	}
	s.drain(ctx)
	s.bus.Publish(notify.Event{Kind: notify.KindRefresh})
}

func (s *Store) dataVersion(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v)
	return v, err
}
