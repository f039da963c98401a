package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/elevatify/elevatify/internal/config"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/repositories/friends"
	"github.com/elevatify/elevatify/internal/repositories/messages"
	"github.com/elevatify/elevatify/internal/repositories/profiles"
	"github.com/elevatify/elevatify/internal/repositories/projects"
	"github.com/elevatify/elevatify/internal/store"
)

type testEnv struct {
	store    *store.Store
	projects projects.Repository
	friends  friends.Repository
	messages messages.Repository
	profiles profiles.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(context.Background(), &config.Config{
		DatabasePath:  filepath.Join(t.TempDir(), "state.db"),
		WatchInterval: time.Hour,
		RetryAttempts: 5,
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := logging.NewNop()
	return &testEnv{
		store:    st,
		projects: projects.NewKVRepository(st, log),
		friends:  friends.NewKVRepository(st, log),
		messages: messages.NewKVRepository(st, log),
		profiles: profiles.NewKVRepository(st, log),
	}
}
