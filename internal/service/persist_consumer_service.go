package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SaveNotifier is told about every document the consumer wrote.
type SaveNotifier interface {
	Broadcast(eventType string, payload interface{})
}

type IPersistConsumerService interface {
	Consume(ctx context.Context) error
}

type persistConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	store     IDocumentStore
	notifier  SaveNotifier
}

func NewPersistConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	store IDocumentStore,
	notifier SaveNotifier,
) IPersistConsumerService {
	return &persistConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		store:     store,
		notifier:  notifier,
	}
}

func (cs *persistConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

type savedPayload struct {
	DocumentId   uuid.UUID `json:"document_id"`
	Title        string    `json:"title"`
	LastModified time.Time `json:"last_modified"`
}

func (cs *persistConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PersistDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal persist message: %v", err)
		msg.Ack()
		return
	}

	doc := payload.ToEntity()
	saved, err := cs.store.Save(ctx, doc)
	if err != nil {
		// Not retried: the next debounced write supersedes it.
		log.Printf("[ERROR] Failed to persist document %s: %v", doc.Id, err)
		msg.Ack()
		return
	}
	if !saved {
		log.Printf("[INFO] Skipped stale or deleted document %s", doc.Id)
		msg.Ack()
		return
	}

	if cs.notifier != nil {
		cs.notifier.Broadcast(constant.EventSaved, savedPayload{
			DocumentId:   doc.Id,
			Title:        doc.Title,
			LastModified: doc.LastModified,
		})
	}
	msg.Ack()
}
