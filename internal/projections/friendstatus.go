package projections

import (
	"context"
	"fmt"

	"github.com/elevatify/elevatify/internal/models"
)

// FriendStatus derives the relationship between self and other from
// self's three lists. Friendship wins over a stale pending entry;
// pending-sent is checked before pending-received, mirroring the
// service layer's write order.
func (v *Projections) FriendStatus(ctx context.Context, self, other string) (models.FriendStatus, error) {
	confirmed, err := v.friends.Friends(ctx, self)
	if err != nil {
		return "", fmt.Errorf("deriving friend status: %w", err)
	}
	if containsID(confirmed, other) {
		return models.FriendStatusFriends, nil
	}
	sent, err := v.friends.Sent(ctx, self)
	if err != nil {
		return "", fmt.Errorf("deriving friend status: %w", err)
	}
	if containsID(sent, other) {
		return models.FriendStatusPendingSent, nil
	}
	received, err := v.friends.Received(ctx, self)
	if err != nil {
		return "", fmt.Errorf("deriving friend status: %w", err)
	}
	if containsID(received, other) {
		return models.FriendStatusPendingReceived, nil
	}
	return models.FriendStatusNone, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
