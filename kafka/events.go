package kafka

import "time"

// FavoriteChangedEvent is emitted when a user likes or unlikes a target
type FavoriteChangedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	TargetType    string    `json:"target_type"`
	TargetID      uint      `json:"target_id"`
	UserID        uint      `json:"user_id"`
	FavoriteCount int64     `json:"favorite_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// CommentCreatedEvent is emitted when a comment is posted
type CommentCreatedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CommentID  uint      `json:"comment_id"`
	TargetType string    `json:"target_type"`
	TargetID   uint      `json:"target_id"`
	OwnerID    uint      `json:"owner_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
	EventTypeCommentCreated  = "comment.created"
)

// Kafka topics
const (
	TopicFavoriteChanged = "favorite-changed"
	TopicCommentCreated  = "comment-created"
)
