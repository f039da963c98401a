package services

import (
	"context"
	"fmt"

	"github.com/elevatify/elevatify/internal/common"
	"github.com/elevatify/elevatify/internal/logging"
	"github.com/elevatify/elevatify/internal/repositories/friends"
)

// FriendService mutates the friendship lists. A pending request is the
// pair (to ∈ sent[from], from ∈ received[to]); the two halves are kept in
// lock-step by every operation. An accepted friendship is symmetric and
// terminal — there is no unfriend.
type FriendService interface {
	// SendRequest records a pending request from -> to.
	SendRequest(ctx context.Context, from, to string) error

	// AcceptRequest lets `to` accept the pending request from `from`,
	// removing the pending pair and adding both friendship edges.
	AcceptRequest(ctx context.Context, from, to string) error

	// RejectRequest lets `to` drop the pending request from `from`,
	// leaving no residue: a fresh request afterwards starts clean.
	RejectRequest(ctx context.Context, from, to string) error
}

type friendService struct {
	friends friends.Repository
	log     logging.Logger
}

func NewFriendService(repo friends.Repository, log logging.Logger) FriendService {
	return &friendService{friends: repo, log: log}
}

func (s *friendService) SendRequest(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		s.log.Debug(ctx, "friend request skipped", "from", from, "to", to)
		return nil
	}

	already, err := s.friends.Friends(ctx, from)
	if err != nil {
		return fmt.Errorf("sending friend request: %w", err)
	}
	if containsID(already, to) {
		s.log.Debug(ctx, "already friends, request skipped", "from", from, "to", to)
		return nil
	}

	// Both halves are appended idempotently, so a retry (or a previously
	// half-applied request) converges on the complete pending pair.
	if err := s.friends.MutateSent(ctx, from, addIfAbsent(to)); err != nil {
		return fmt.Errorf("recording sent request: %w", err)
	}
	if err := s.friends.MutateReceived(ctx, to, addIfAbsent(from)); err != nil {
		return fmt.Errorf("recording received request: %w", err)
	}

	s.log.Info(ctx, "friend request sent", "from", from, "to", to)
	return nil
}

func (s *friendService) AcceptRequest(ctx context.Context, from, to string) error {
	pending, err := s.pending(ctx, from, to)
	if err != nil {
		return fmt.Errorf("accepting friend request: %w", err)
	}
	if !pending {
		s.log.Debug(ctx, "no pending request to accept", "from", from, "to", to)
		return nil
	}

	// Friendship edges first: if anything fails partway, the pending pair
	// is still present and a retry completes the accept. Symmetry holds
	// once the operation returns.
	if err := s.friends.MutateFriends(ctx, to, addIfAbsent(from)); err != nil {
		return fmt.Errorf("adding friend edge: %w", err)
	}
	if err := s.friends.MutateFriends(ctx, from, addIfAbsent(to)); err != nil {
		return fmt.Errorf("adding friend edge: %w", err)
	}
	if err := s.clearPending(ctx, from, to); err != nil {
		return fmt.Errorf("clearing pending request: %w", err)
	}

	s.log.Info(ctx, "friend request accepted", "from", from, "to", to)
	return nil
}

func (s *friendService) RejectRequest(ctx context.Context, from, to string) error {
	pending, err := s.pending(ctx, from, to)
	if err != nil {
		return fmt.Errorf("rejecting friend request: %w", err)
	}
	if !pending {
		s.log.Debug(ctx, "no pending request to reject", "from", from, "to", to)
		return nil
	}

	if err := s.clearPending(ctx, from, to); err != nil {
		return fmt.Errorf("clearing pending request: %w", err)
	}

	s.log.Info(ctx, "friend request rejected", "from", from, "to", to)
	return nil
}

// pending reports whether the request from -> to is outstanding from the
// receiver's side, the authoritative half for accept/reject.
func (s *friendService) pending(ctx context.Context, from, to string) (bool, error) {
	received, err := s.friends.Received(ctx, to)
	if err != nil {
		return false, err
	}
	return containsID(received, from), nil
}

// clearPending removes both halves of the pending pair, keeping the
// sent/received lists in lock-step.
func (s *friendService) clearPending(ctx context.Context, from, to string) error {
	if err := s.friends.MutateReceived(ctx, to, dropID(from)); err != nil {
		return err
	}
	return s.friends.MutateSent(ctx, from, dropID(to))
}

func addIfAbsent(id string) func([]string) ([]string, error) {
	return func(ids []string) ([]string, error) {
		if containsID(ids, id) {
			return nil, common.ErrNoChange
		}
		return append(ids, id), nil
	}
}

func dropID(id string) func([]string) ([]string, error) {
	return func(ids []string) ([]string, error) {
		if !containsID(ids, id) {
			return nil, common.ErrNoChange
		}
		return removeID(ids, id), nil
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
