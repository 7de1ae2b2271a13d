package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a single blog entry.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventType string

const (
	EventCreated EventType = "post.created"
	EventUpdated EventType = "post.updated"
	EventDeleted EventType = "post.deleted"
)

// PostEvent records a successful mutation of a post.
type PostEvent struct {
	ID     uuid.UUID `json:"id"`
	Type   EventType `json:"type"`
	PostID int64     `json:"post_id"`
	Title  string    `json:"title"`
	At     time.Time `json:"at"`
}

// NewPostEvent creates an event for the given post with a fresh id.
func NewPostEvent(typ EventType, post Post) PostEvent {
	return PostEvent{
		ID:     uuid.New(),
		Type:   typ,
		PostID: post.ID,
		Title:  post.Title,
		At:     time.Now(),
	}
}
