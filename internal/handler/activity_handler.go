package handler

import (
	"context"
	"time"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/pkg/events"
	pktNats "ai-writing-be/pkg/nats"
)

const (
	activitySubject = "events.>"
	activityDurable = "writing-activity"
)

type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

type ActivityPayload struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// ActivityHandler relays domain events from the bus to every connected
// editor, including those attached to other instances.
type ActivityHandler struct {
	subscriber *pktNats.Subscriber
	hub        Broadcaster
	logger     logger.ILogger
}

func NewActivityHandler(sub *pktNats.Subscriber, hub Broadcaster, log logger.ILogger) *ActivityHandler {
	return &ActivityHandler{
		subscriber: sub,
		hub:        hub,
		logger:     log,
	}
}

// Start subscribes to the event stream. It is a no-op without a subscriber.
func (h *ActivityHandler) Start() error {
	if h.subscriber == nil {
		return nil
	}
	return h.subscriber.Subscribe(activitySubject, activityDurable, h.Handle)
}

func (h *ActivityHandler) Handle(ctx context.Context, event events.Event) error {
	h.logger.Debug("ActivityHandler", "Relaying domain event", map[string]interface{}{
		"type": event.EventType(),
	})

	h.hub.Broadcast(constant.EventActivity, ActivityPayload{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	return nil
}
