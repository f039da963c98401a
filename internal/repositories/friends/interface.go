// Package friends stores the per-user friendship lists: confirmed
// friends plus the sent and received halves of pending requests. Each
// list lives under its own key per user id; the service layer keeps the
// sent/received halves of a request in lock-step.
package friends

import "context"

// Repository describes access to the three per-user id lists.
type Repository interface {
	// Friends returns the user's confirmed friend ids.
	Friends(ctx context.Context, userID string) ([]string, error)

	// Sent returns the ids this user has outstanding requests to.
	Sent(ctx context.Context, userID string) ([]string, error)

	// Received returns the ids with outstanding requests to this user.
	Received(ctx context.Context, userID string) ([]string, error)

	// MutateFriends, MutateSent and MutateReceived run a read-modify-write
	// on one user's list. fn may return common.ErrNoChange to resolve as a
	// silent no-op; it can run more than once and must be pure.
	MutateFriends(ctx context.Context, userID string, fn func([]string) ([]string, error)) error
	MutateSent(ctx context.Context, userID string, fn func([]string) ([]string, error)) error
	MutateReceived(ctx context.Context, userID string, fn func([]string) ([]string, error)) error
}
