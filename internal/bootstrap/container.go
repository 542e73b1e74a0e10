package bootstrap

import (
	"context"
	"log"

	"shopchat-be/internal/config"
	"shopchat-be/internal/controller"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/internal/service"
	"shopchat-be/internal/websocket"
	"shopchat-be/pkg/revocation"

	pktNats "shopchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatGateway  *websocket.ChatGateway
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)
	wsHub := websocket.NewHub(rdb, chatLogger)
	go wsHub.Run()

	// 3. Services
	revocationStore := revocation.NewRedisStore(rdb)
	profileCache := memory.NewProfileCache()

	publisherService := service.NewPublisherService(cfg.App.MessageCreatedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.MessageCreatedTopic, natsPub)

	tokenService := service.NewTokenService(revocationStore, sysLogger)
	chatService := service.NewChatService(uowFactory, profileCache, publisherService, sysLogger)

	chatGateway := websocket.NewChatGateway(wsHub, chatService, tokenService, chatLogger)

	// 4. Controllers
	return &Container{
		ChatController:  controller.NewChatController(chatService, tokenService),
		ConsumerService: consumerService,
		ChatGateway:     chatGateway,
		WebSocketHub:    wsHub,
	}
}
