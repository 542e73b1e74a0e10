package websocket

import (
	"context"
	"errors"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatGateway manages persistent connections: handshake authentication,
// auto-subscription to the user's conversation rooms, history replay, and
// live send/broadcast.
type ChatGateway struct {
	hub    *Hub
	chat   service.IChatService
	tokens service.ITokenService
	logger logger.ILogger
}

func NewChatGateway(hub *Hub, chat service.IChatService, tokens service.ITokenService, log logger.ILogger) *ChatGateway {
	return &ChatGateway{
		hub:    hub,
		chat:   chat,
		tokens: tokens,
		logger: log,
	}
}

func (g *ChatGateway) RegisterRoutes(app *fiber.App) {
	app.Get("/ws", g.ServeWs)
}

// ServeWs upgrades the connection. The bearer token is captured from the
// handshake before the hijack; authentication itself happens on the socket so
// failures surface as exception events, not HTTP errors.
func (g *ChatGateway) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Priority 1: Authorization header. Priority 2: query param, for browser
	// clients that cannot set headers on the WebSocket constructor.
	token := ""
	authHeader := c.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}
	if token == "" {
		token = c.Query("token")
	}

	return websocket.New(func(conn *websocket.Conn) {
		g.handleSession(conn, token)
	})(c)
}

// handleSession drives one connection through the state machine:
// Connecting -> Authenticating -> Authenticated&Subscribed -> Disconnected.
func (g *ChatGateway) handleSession(conn Conn, token string) {
	// A failing connection must never take the gateway down
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("ChatGateway", "Panic in session handler", map[string]interface{}{"panic": r})
			g.reject(conn, serverutils.NewInternalError("internal server error"))
		}
	}()

	if token == "" {
		g.reject(conn, serverutils.NewUnauthenticated("missing token"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Revocation lookup first, then signature/claims verification
	identity, err := g.tokens.Authenticate(ctx, token)
	if err != nil {
		g.reject(conn, err)
		return
	}

	conversations, err := g.chat.ListUserConversations(ctx, identity.Id)
	if err != nil {
		g.logger.Error("ChatGateway", "Conversation load failed", map[string]interface{}{
			"user_id": identity.Id, "error": err.Error(),
		})
		g.reject(conn, serverutils.NewInternalError("could not load conversations"))
		return
	}

	client := NewClient(g.hub, conn, identity, g.chat, g.logger)

	for _, conv := range conversations {
		g.hub.Subscribe(client, conv.Id)
	}

	// Replay history before the pumps start: replay frames leave in causal
	// order while any concurrent live broadcast queues in the send buffer,
	// and every later append is strictly newer than what we replay here.
	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			event := g.chat.PresentMessage(msg)
			frame, err := marshalEnvelope(dto.EventMessage, event)
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				g.hub.Unregister(client)
				conn.Close()
				return
			}
		}
	}

	client.ready.Store(true)
	g.logger.Info("ChatGateway", "Session established", map[string]interface{}{
		"user_id": identity.Id, "conversations": len(conversations),
	})

	go client.writePump()
	client.readPump()
}

// reject emits a structured exception event and forcibly closes the
// connection. Terminal: authentication failures are never retried.
func (g *ChatGateway) reject(conn Conn, err error) {
	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		appErr = serverutils.NewInternalError("internal server error")
	}

	frame, marshalErr := marshalEnvelope(dto.EventException, dto.ExceptionEvent{
		StatusCode: appErr.StatusCode,
		Message:    appErr.Message,
	})
	if marshalErr == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.TextMessage, frame)
	}
	conn.Close()
}
