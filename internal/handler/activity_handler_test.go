package handler

import (
	"context"
	"testing"
	"time"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedBroadcast struct {
	eventType string
	payload   interface{}
}

type captureHub struct {
	sent []capturedBroadcast
}

func (c *captureHub) Broadcast(eventType string, payload interface{}) {
	c.sent = append(c.sent, capturedBroadcast{eventType, payload})
}

func TestActivityHandlerRelaysEvents(t *testing.T) {
	hub := &captureHub{}
	h := NewActivityHandler(nil, hub, logger.NewNopLogger())

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	evt := events.New(constant.DomainEventDocumentCreated, map[string]interface{}{"document_id": "abc"}, at)

	require.NoError(t, h.Handle(context.Background(), evt))
	require.Len(t, hub.sent, 1)
	assert.Equal(t, constant.EventActivity, hub.sent[0].eventType)
	assert.Equal(t, ActivityPayload{
		Type:       constant.DomainEventDocumentCreated,
		Data:       map[string]interface{}{"document_id": "abc"},
		OccurredAt: at,
	}, hub.sent[0].payload)
}

func TestActivityHandlerStartWithoutSubscriber(t *testing.T) {
	h := NewActivityHandler(nil, &captureHub{}, logger.NewNopLogger())
	assert.NoError(t, h.Start())
}
