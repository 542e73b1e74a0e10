package controller

import (
	"encoding/json"
	"strings"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateConversation(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	tokens      serverutils.TokenAuthenticator
}

func NewChatController(chatService service.IChatService, tokens serverutils.TokenAuthenticator) IChatController {
	return &chatController{
		chatService: chatService,
		tokens:      tokens,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Use(serverutils.JwtMiddleware(c.tokens))
	h.Post("", c.CreateConversation)
	h.Get("", c.ListConversations)
	h.Patch(":id/read", c.MarkRead)
}

func (c *chatController) CreateConversation(ctx *fiber.Ctx) error {
	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateConversation(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *chatController) ListConversations(ctx *fiber.Ctx) error {
	identity, err := serverutils.IdentityFromCtx(ctx)
	if err != nil {
		return err
	}

	page := dto.PageRequest{
		Page: ctx.QueryInt("page", 1),
		Size: ctx.QueryInt("size", 20),
	}
	parseSorts(ctx.Query("sorts"), &page)
	parseFilters(ctx.Query("filters"), &page)

	res, err := c.chatService.ListConversations(ctx.Context(), identity.Id, page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	identity, err := serverutils.IdentityFromCtx(ctx)
	if err != nil {
		return err
	}

	conversationId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewValidationError("invalid conversation id")
	}

	if err := c.chatService.MarkConversationRead(ctx.Context(), conversationId, identity.Id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark conversation read", nil))
}

// parseSorts accepts either a JSON array of sort fields or the compact
// "property:direction,property:direction" form. Unknown properties are
// dropped later by the query-translation whitelist.
func parseSorts(raw string, page *dto.PageRequest) {
	if raw == "" {
		return
	}
	if strings.HasPrefix(raw, "[") {
		var sorts []dto.SortField
		if json.Unmarshal([]byte(raw), &sorts) == nil {
			page.Sorts = sorts
		}
		return
	}
	for _, part := range strings.Split(raw, ",") {
		prop, dir, _ := strings.Cut(part, ":")
		if prop == "" {
			continue
		}
		page.Sorts = append(page.Sorts, dto.SortField{Property: prop, Direction: strings.ToUpper(dir)})
	}
}

func parseFilters(raw string, page *dto.PageRequest) {
	if raw == "" {
		return
	}
	var filters []dto.FilterField
	if json.Unmarshal([]byte(raw), &filters) == nil {
		page.Filters = filters
	}
}
