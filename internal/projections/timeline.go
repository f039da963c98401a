package projections

import (
	"context"
	"fmt"
	"sort"

	"github.com/elevatify/elevatify/internal/models"
)

// DirectTimeline returns the full conversation between a and b, both
// directions merged and ordered by timestamp ascending.
func (v *Projections) DirectTimeline(ctx context.Context, a, b string) ([]models.Message, error) {
	sentByA, sentByB, err := v.messages.PairLogs(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("reading direct timeline: %w", err)
	}
	return MergeTimeline(sentByA, sentByB), nil
}

// GroupTimeline returns the group's log in append order.
func (v *Projections) GroupTimeline(ctx context.Context, groupID string) ([]models.Message, error) {
	log, err := v.messages.GroupLog(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("reading group timeline: %w", err)
	}
	return log, nil
}

// MergeTimeline interleaves two message logs by timestamp ascending.
// The sort is stable, so messages with equal timestamps keep their log
// order with the first log's entries ahead.
func MergeTimeline(a, b []models.Message) []models.Message {
	out := make([]models.Message, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
