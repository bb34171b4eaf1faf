package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event published after a committed change
type EventType string

const (
	EventMemberSignedUp     EventType = "member.signed_up"
	EventPortfolioCreated   EventType = "portfolio.created"
	EventPortfolioDeleted   EventType = "portfolio.deleted"
	EventPortfolioLiked     EventType = "portfolio.liked"
	EventPortfolioUnliked   EventType = "portfolio.unliked"
	EventPortfolioSkillsSet EventType = "portfolio.skills_updated"
	EventProjectUpdated     EventType = "project.updated"
)

// Event is the envelope written to the event stream
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Key        string         `json:"key"` // login id of the acting member
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// NewEvent stamps a new event with a fresh id
func NewEvent(eventType EventType, key string, payload map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
