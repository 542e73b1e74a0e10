package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shopchat-be/pkg/events"
	pktNats "shopchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process message-created bus and forwards each
// event to NATS JetStream, where the notification collaborator picks it up.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, natsPub *pktNats.Publisher) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload MessageCreatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal MESSAGE_CREATED payload: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.natsPub == nil {
		// NATS is optional in development; drop rather than block the bus
		msg.Ack()
		return
	}

	event := events.BaseEvent{
		Type: "MESSAGE_CREATED",
		Data: map[string]interface{}{
			"message_id":      payload.MessageId,
			"conversation_id": payload.ConversationId,
			"sender_id":       payload.SenderId,
			"created_at":      payload.CreatedAt,
		},
		OccurredAt: time.Now(),
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cs.natsPub.Publish(pubCtx, event); err != nil {
		log.Printf("[ERROR] Failed to forward MESSAGE_CREATED to NATS: %v", err)
		msg.Nack()
		return
	}

	msg.Ack()
}
