package service

import (
	"context"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IChatService interface {
	// CreateConversation is idempotent per unordered user pair.
	CreateConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error)

	// ListConversations returns one page of the caller's conversations with
	// counterpart profile and last-message summary. TotalCount covers the
	// full matching set.
	ListConversations(ctx context.Context, userId uuid.UUID, page dto.PageRequest) (*dto.ConversationListResponse, error)

	// ListUserConversations loads every conversation of the user with its
	// full message log, for gateway subscription and replay.
	ListUserConversations(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error)

	// SendMessage persists a message and returns the broadcast-ready event.
	// senderId is ALWAYS the session's verified identity, never a
	// client-supplied field, and must be a participant of the conversation.
	SendMessage(ctx context.Context, senderId uuid.UUID, payload *dto.SendMessagePayload) (*dto.MessageEvent, error)

	// MarkConversationRead flips the read flag on counterpart messages.
	MarkConversationRead(ctx context.Context, conversationId, readerId uuid.UUID) error

	// PresentMessage shapes a stored message into its wire event, resolving
	// sender display fields by role.
	PresentMessage(msg *entity.Message) dto.MessageEvent
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	profiles   *memory.ProfileCache
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	profiles *memory.ProfileCache,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		profiles:   profiles,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *chatService) CreateConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.ConversationResponse, error) {
	userA, err := uuid.Parse(req.UserA)
	if err != nil {
		return nil, serverutils.NewValidationError("user_a must be a valid UUID")
	}
	userB, err := uuid.Parse(req.UserB)
	if err != nil {
		return nil, serverutils.NewValidationError("user_b must be a valid UUID")
	}
	if userA == userB {
		return nil, serverutils.NewValidationError("cannot create a conversation with yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Both sides must be real accounts
	users, err := uow.UserRepository().FindByIds(ctx, []uuid.UUID{userA, userB})
	if err != nil {
		return nil, err
	}
	if len(users) != 2 {
		return nil, serverutils.NewNotFound("one or both participants do not exist")
	}

	conv, err := uow.ConversationRepository().CreateIfNotExists(ctx, userA, userB)
	if err != nil {
		s.logger.Error("ChatService", "Conversation creation failed", map[string]interface{}{
			"user_a": userA, "user_b": userB, "error": err.Error(),
		})
		return nil, serverutils.NewInternalError("could not create conversation")
	}

	return &dto.ConversationResponse{
		Id:        conv.Id,
		UserAId:   conv.UserAId,
		UserBId:   conv.UserBId,
		CreatedAt: conv.CreatedAt,
	}, nil
}

func (s *chatService) ListConversations(ctx context.Context, userId uuid.UUID, page dto.PageRequest) (*dto.ConversationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations := uow.ConversationRepository()

	// Translate the structured sort/filter shapes into predicates
	sorts := make([]specification.SortSpec, len(page.Sorts))
	for i, f := range page.Sorts {
		sorts[i] = specification.SortSpec{Property: f.Property, Direction: f.Direction}
	}
	filters := make([]specification.FilterSpec, len(page.Filters))
	for i, f := range page.Filters {
		filters[i] = specification.FilterSpec{Property: f.Property, Rule: f.Rule, Value: f.Value}
	}
	querySpecs := specification.FromConversationQuery(sorts, filters)

	baseSpecs := append([]specification.Specification{specification.ByParticipant{UserID: userId}}, querySpecs...)

	totalCount, err := conversations.Count(ctx, baseSpecs...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(baseSpecs, specification.Pagination{Limit: page.Limit(), Offset: page.Offset()})
	items, err := conversations.FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(items))
	for i, c := range items {
		ids[i] = c.Id
	}
	lastMessages, err := uow.MessageRepository().LastPerConversation(ctx, ids)
	if err != nil {
		return nil, err
	}

	listItems := make([]dto.ConversationListItem, 0, len(items))
	for _, c := range items {
		item := dto.ConversationListItem{
			ConversationId: c.Id,
			Counterpart:    presentCounterpart(c.CounterpartUser(userId)),
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
		}
		if last, ok := lastMessages[c.Id]; ok {
			summary := dto.LastMessageSummary{
				Id:        last.Id,
				SenderId:  last.SenderId,
				Content:   last.Content,
				IsRead:    last.IsRead,
				CreatedAt: last.CreatedAt,
			}
			if len(last.ImageURLs) > 0 {
				summary.ImageUrl = last.ImageURLs[0]
			}
			item.LastMessage = &summary
		}
		listItems = append(listItems, item)
	}

	return &dto.ConversationListResponse{
		Items:      listItems,
		TotalCount: totalCount,
		Page:       page.Page,
		Size:       page.Limit(),
	}, nil
}

func (s *chatService) ListUserConversations(ctx context.Context, userId uuid.UUID) ([]*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindAllForUserEager(ctx, userId)
	if err != nil {
		return nil, err
	}

	// Warm the profile cache so replay presentation stays off the DB
	for _, c := range conversations {
		s.profiles.Save(c.UserA)
		s.profiles.Save(c.UserB)
	}

	return conversations, nil
}

func (s *chatService) SendMessage(ctx context.Context, senderId uuid.UUID, payload *dto.SendMessagePayload) (*dto.MessageEvent, error) {
	roomId, err := uuid.Parse(payload.ChatRoomId)
	if err != nil {
		return nil, serverutils.NewValidationError("chatRoomId must be a valid UUID")
	}
	if payload.Content == "" {
		return nil, serverutils.NewValidationError("content must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, serverutils.NewNotFound("conversation not found")
	}

	// The authorization boundary: only a participant may append
	if !conv.HasParticipant(senderId) {
		return nil, serverutils.NewAuthorizationError("sender is not a participant of this conversation")
	}

	msg := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conv.Id,
		SenderId:       senderId,
		Content:        payload.Content,
	}
	if payload.ImageUrl != "" {
		msg.ImageURLs = []string{payload.ImageUrl}
	}

	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		s.logger.Error("ChatService", "Message append failed", map[string]interface{}{
			"conversation_id": conv.Id, "sender_id": senderId, "error": err.Error(),
		})
		return nil, serverutils.NewInternalError("could not persist message")
	}

	if err := uow.ConversationRepository().Touch(ctx, conv.Id); err != nil {
		s.logger.Warn("ChatService", "Conversation touch failed", map[string]interface{}{
			"conversation_id": conv.Id, "error": err.Error(),
		})
	}

	msg.Sender = s.resolveProfile(ctx, uow, senderId)

	// Platform event for the external notification collaborator. Best effort:
	// a broker outage must not fail an already-committed append.
	if s.publisher != nil {
		if err := s.publisher.PublishMessageCreated(ctx, msg); err != nil {
			s.logger.Warn("ChatService", "MESSAGE_CREATED publish failed", map[string]interface{}{
				"message_id": msg.Id, "error": err.Error(),
			})
		}
	}

	event := s.PresentMessage(msg)
	return &event, nil
}

func (s *chatService) MarkConversationRead(ctx context.Context, conversationId, readerId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return err
	}
	if conv == nil {
		return serverutils.NewNotFound("conversation not found")
	}
	if !conv.HasParticipant(readerId) {
		return serverutils.NewAuthorizationError("reader is not a participant of this conversation")
	}

	return uow.MessageRepository().MarkConversationRead(ctx, conversationId, readerId)
}

func (s *chatService) PresentMessage(msg *entity.Message) dto.MessageEvent {
	presentation := PresentSender(msg.Sender)

	event := dto.MessageEvent{
		Id:           msg.Id,
		ChatRoomId:   msg.ConversationId,
		SenderId:     msg.SenderId,
		SenderName:   presentation.Name,
		SenderAvatar: presentation.Avatar,
		Content:      msg.Content,
		IsRead:       msg.IsRead,
		CreatedAt:    msg.CreatedAt,
	}
	if len(msg.ImageURLs) > 0 {
		event.ImageUrl = msg.ImageURLs[0]
	}
	return event
}

func (s *chatService) resolveProfile(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) *entity.User {
	if cached, ok := s.profiles.Get(userId); ok {
		return cached
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		s.logger.Warn("ChatService", "Sender profile resolution failed", map[string]interface{}{
			"user_id": userId,
		})
		return nil
	}

	s.profiles.Save(user)
	return user
}
