package service

import (
	"context"
	"encoding/json"
	"time"

	"shopchat-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts message-created events on the in-process bus. The
// consumer service forwards them to the platform event broker so the persist
// path never blocks on broker I/O.
type IPublisherService interface {
	PublishMessageCreated(ctx context.Context, msg *entity.Message) error
}

type MessageCreatedPayload struct {
	MessageId      string    `json:"message_id"`
	ConversationId string    `json:"conversation_id"`
	SenderId       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) PublishMessageCreated(ctx context.Context, msg *entity.Message) error {
	payload := MessageCreatedPayload{
		MessageId:      msg.Id.String(),
		ConversationId: msg.ConversationId.String(),
		SenderId:       msg.SenderId.String(),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), data))
}
