package models

// FriendStatus is the derived relationship between an ordered pair of
// users, from the perspective of the first one. Friendship is terminal:
// there is no unfriend transition.
type FriendStatus string

const (
	FriendStatusNone            FriendStatus = "none"
	FriendStatusPendingSent     FriendStatus = "pending-sent"
	FriendStatusPendingReceived FriendStatus = "pending-received"
	FriendStatusFriends         FriendStatus = "friends"
)
