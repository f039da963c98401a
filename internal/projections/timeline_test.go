package projections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatify/elevatify/internal/models"
)

func texts(ms []models.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func TestDirectTimeline_MergesBothDirections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.messages.SendDirect(ctx, "u1", "u2", "hi"))
	require.NoError(t, env.messages.SendDirect(ctx, "u2", "u1", "hey"))
	require.NoError(t, env.messages.SendDirect(ctx, "u1", "u2", "how's it going"))

	got, err := env.views.DirectTimeline(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "hey", "how's it going"}, texts(got))
}

func TestDirectTimeline_SameEitherWayRound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.messages.SendDirect(ctx, "u1", "u2", "hi"))
	require.NoError(t, env.messages.SendDirect(ctx, "u2", "u1", "hey"))

	fromU1, err := env.views.DirectTimeline(ctx, "u1", "u2")
	require.NoError(t, err)
	fromU2, err := env.views.DirectTimeline(ctx, "u2", "u1")
	require.NoError(t, err)
	assert.Equal(t, texts(fromU1), texts(fromU2))
}

func TestDirectTimeline_DoesNotLeakOtherPairs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.messages.SendDirect(ctx, "u1", "u2", "for u2"))
	require.NoError(t, env.messages.SendDirect(ctx, "u1", "u3", "for u3"))

	got, err := env.views.DirectTimeline(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"for u2"}, texts(got))
}

func TestDirectTimeline_EmptyWhenNothingSent(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.views.DirectTimeline(context.Background(), "u1", "u2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupTimeline_AppendOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.messages.SendGroup(ctx, "g1", "u1", "first"))
	require.NoError(t, env.messages.SendGroup(ctx, "g1", "u2", "second"))

	got, err := env.views.GroupTimeline(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, texts(got))
}

func TestMergeTimeline_StableOnEqualTimestamps(t *testing.T) {
	a := []models.Message{
		{From: "u1", Text: "a1", Timestamp: 10},
		{From: "u1", Text: "a2", Timestamp: 20},
	}
	b := []models.Message{
		{From: "u2", Text: "b1", Timestamp: 10},
		{From: "u2", Text: "b2", Timestamp: 15},
	}

	got := MergeTimeline(a, b)
	assert.Equal(t, []string{"a1", "b1", "b2", "a2"}, texts(got), "ties keep the first log ahead")
}
