package models

// Message is one immutable chat message. To is a user id for direct
// messages or a group id for group messages. Timestamp is assigned at
// creation, strictly increasing per sending context, and is the sole
// ordering key.
type Message struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
