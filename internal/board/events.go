package board

import (
	"context"
	"time"
)

// Board lifecycle event types published to Kafka
const (
	EventBoardFinalized = "board.finalized"
	EventBoardShared    = "board.shared"
)

// BoardEvent is the payload emitted when a board is finalized or
// shared. The notification consumer turns these into in-app entries
// and emails.
type BoardEvent struct {
	Type        string    `json:"type"`
	BoardID     uint      `json:"board_id"`
	AgentID     uint      `json:"agent_id"`
	TargetID    uint      `json:"target_id"`
	BoardFor    string    `json:"board_for"`
	PropertyIDs []uint    `json:"property_ids"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher pushes board lifecycle events onto the event bus.
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, evt BoardEvent) error
}
