package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatify/elevatify/internal/common"
	"github.com/elevatify/elevatify/internal/config"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/notify"
)

func testConfig(path string) *config.Config {
	return &config.Config{
		DatabasePath:  path,
		WatchInterval: 10 * time.Millisecond,
		RetryAttempts: 5,
	}
}

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open(context.Background(), testConfig(path), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state.db")
}

func TestGet_MissingKeyReturnsZeroValue(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))

	v, err := st.Get(context.Background(), "projects", "all")
	require.NoError(t, err)
	assert.Nil(t, v.Value)
	assert.Equal(t, int64(0), v.Version)
}

func TestPut_InsertAndUpdateVersions(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "profiles", "u1", []byte(`{"id":"u1"}`), 0))

	v, err := st.Get(ctx, "profiles", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"u1"}`), v.Value)
	assert.Equal(t, int64(1), v.Version)

	require.NoError(t, st.Put(ctx, "profiles", "u1", []byte(`{"id":"u1","bio":"hi"}`), 1))

	v, err = st.Get(ctx, "profiles", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Version)
}

func TestPut_StaleVersionFailsWithConflict(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "friends", "u1", []byte(`["u2"]`), 0))

	err := st.Put(ctx, "friends", "u1", []byte(`["u3"]`), 0)
	require.ErrorIs(t, err, common.ErrVersionConflict)

	// Losing write must not be applied.
	v, err := st.Get(ctx, "friends", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["u2"]`), v.Value)
}

func TestPut_PublishesLocalEvent(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))

	var events []notify.Event
	sub := st.Bus().Subscribe(func(e notify.Event) { events = append(events, e) })
	defer sub.Unsubscribe()

	require.NoError(t, st.Put(context.Background(), "projects", "all", []byte(`[]`), 0))

	require.Len(t, events, 1)
	assert.Equal(t, "projects", events[0].Namespace)
	assert.Equal(t, "all", events[0].Key)
	assert.Equal(t, []byte(`[]`), events[0].Value)
	assert.Equal(t, notify.KindLocal, events[0].Kind)
}

func TestDelete_RemovesValue(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "profiles", "u1", []byte(`{}`), 0))
	require.NoError(t, st.Delete(ctx, "profiles", "u1", 1))

	v, err := st.Get(ctx, "profiles", "u1")
	require.NoError(t, err)
	assert.Nil(t, v.Value)
	assert.Equal(t, int64(0), v.Version)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))

	var events int
	sub := st.Bus().Subscribe(func(notify.Event) { events++ })
	defer sub.Unsubscribe()

	require.NoError(t, st.Delete(context.Background(), "profiles", "ghost", 0))
	assert.Zero(t, events, "no-op delete must not publish")
}

func TestDelete_StaleVersionFailsWithConflict(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "profiles", "u1", []byte(`{}`), 0))
	err := st.Delete(ctx, "profiles", "u1", 7)
	require.ErrorIs(t, err, common.ErrVersionConflict)
}

func TestUpdate_AppliesCallback(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	err := st.Update(ctx, "friends", "u1", func(current []byte) ([]byte, error) {
		assert.Nil(t, current, "first update sees the empty value")
		return []byte(`["u2"]`), nil
	})
	require.NoError(t, err)

	v, err := st.Get(ctx, "friends", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["u2"]`), v.Value)
	assert.Equal(t, int64(1), v.Version)
}

func TestUpdate_NoChangeSkipsWriteAndEvent(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "friends", "u1", []byte(`["u2"]`), 0))

	var events int
	sub := st.Bus().Subscribe(func(notify.Event) { events++ })
	defer sub.Unsubscribe()

	err := st.Update(ctx, "friends", "u1", func([]byte) ([]byte, error) {
		return nil, common.ErrNoChange
	})
	require.NoError(t, err)
	assert.Zero(t, events)

	v, err := st.Get(ctx, "friends", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Version, "no-op update must not bump the version")
}

func TestUpdate_RetriesAfterConcurrentWrite(t *testing.T) {
	path := tempDBPath(t)
	a := newTestStore(t, path)
	b := newTestStore(t, path)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, "projects", "all", []byte(`["x"]`), 0))

	calls := 0
	err := a.Update(ctx, "projects", "all", func(current []byte) ([]byte, error) {
		calls++
		if calls == 1 {
			// Another context commits between our read and our write.
			require.NoError(t, b.Put(ctx, "projects", "all", []byte(`["x","y"]`), 1))
		}
		var items []string
		require.NoError(t, json.Unmarshal(current, &items))
		return json.Marshal(append(items, "z"))
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2, "conflicting update must rerun the callback")

	v, err := a.Get(ctx, "projects", "all")
	require.NoError(t, err)
	assert.JSONEq(t, `["x","y","z"]`, string(v.Value), "neither write may be lost")
}

func TestUpdate_CallbackErrorPropagates(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))

	err := st.Update(context.Background(), "projects", "all", func([]byte) ([]byte, error) {
		return nil, assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
}

func TestStore_ClosedRejectsOperations(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	require.NoError(t, st.Close())

	_, err := st.Get(context.Background(), "projects", "all")
	require.ErrorIs(t, err, common.ErrStoreClosed)
	require.ErrorIs(t, st.Put(context.Background(), "projects", "all", nil, 0), common.ErrStoreClosed)
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	st := newTestStore(t, tempDBPath(t))
	require.NoError(t, st.Close())
	require.NoError(t, st.Close())
}

func TestOpen_ExistingDataSurvivesReopen(t *testing.T) {
	path := tempDBPath(t)
	ctx := context.Background()

	first := newTestStore(t, path)
	require.NoError(t, first.Put(ctx, "profiles", "u1", []byte(`{"id":"u1"}`), 0))
	require.NoError(t, first.Close())

	second := newTestStore(t, path)
	v, err := second.Get(ctx, "profiles", "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"u1"}`), v.Value)
}
