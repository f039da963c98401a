// Package messages stores chat logs. Direct conversations keep one log
// per originating user of the pair — a message is appended under its
// sender's key, and reading a conversation merges both orientations.
// Group conversations keep a single log per group id.
package messages

import (
	"context"

	"github.com/elevatify/elevatify/internal/models"
)

// Repository describes access to the message logs. Messages are
// immutable once appended; there is no update or delete.
type Repository interface {
	// AppendDirect appends m to the direct log keyed by its sender.
	AppendDirect(ctx context.Context, m models.Message) error

	// PairLogs returns the two direct logs of the (a, b) pair: first the
	// messages a sent to b, then the messages b sent to a. Either can be
	// empty.
	PairLogs(ctx context.Context, a, b string) ([]models.Message, []models.Message, error)

	// AppendGroup appends m to the group's single log.
	AppendGroup(ctx context.Context, groupID string, m models.Message) error

	// GroupLog returns the group's log in append order.
	GroupLog(ctx context.Context, groupID string) ([]models.Message, error)
}
