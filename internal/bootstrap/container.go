package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ai-writing-be/internal/analysis"
	"ai-writing-be/internal/config"
	"ai-writing-be/internal/controller"
	"ai-writing-be/internal/generator"
	"ai-writing-be/internal/handler"
	"ai-writing-be/internal/history"
	"ai-writing-be/internal/model"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/repository/memory"
	"ai-writing-be/internal/repository/unitofwork"
	"ai-writing-be/internal/service"
	"ai-writing-be/internal/session"
	"ai-writing-be/internal/websocket"
	"ai-writing-be/pkg/database"
	"ai-writing-be/pkg/llm"
	"ai-writing-be/pkg/llm/factory"
	pktNats "ai-writing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const DriverMemory = "memory"

type Container struct {
	// Controllers
	WorkspaceController  controller.IWorkspaceController
	SessionController    controller.ISessionController
	SuggestionController controller.ISuggestionController
	ChatController       controller.IChatController
	SnapshotController   controller.ISnapshotController
	ExpertController     controller.IExpertController

	// Background services (run by main.go)
	PersistConsumer service.IPersistConsumerService
	ActivityHandler *handler.ActivityHandler

	// WebSockets
	SessionWsHandler *handler.SessionWsHandler
	WebSocketHub     *websocket.Hub

	Session   *session.Session
	JwtSecret string

	closers []func()
}

// NewRepositoryFactory opens the configured storage. Sqlite databases are
// migrated on open so a fresh checkout runs without cmd/migrate.
func NewRepositoryFactory(cfg config.DatabaseConfig, verbose bool) (unitofwork.RepositoryFactory, error) {
	if cfg.Driver == DriverMemory {
		log.Println("[INFO] Using in-memory storage; documents are lost on exit")
		return unitofwork.NewMemoryRepositoryFactory(memory.NewStore()), nil
	}

	db, err := database.NewGormDB(cfg.Driver, cfg.Connection, verbose)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if cfg.Driver == database.DriverSqlite {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("migrate sqlite database: %w", err)
		}
	}
	log.Printf("[INFO] Using %s storage", cfg.Driver)
	return unitofwork.NewRepositoryFactory(db), nil
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{JwtSecret: cfg.App.JwtSecret}

	// 1. Storage
	uowFactory, err := NewRepositoryFactory(cfg.Database, cfg.App.Environment != "production")
	if err != nil {
		return nil, err
	}

	// 2. Event bus for debounced saves
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publisherService := service.NewPublisherService(cfg.Session.PersistTopic, pubSub)
	documentStore := service.NewDocumentStore(uowFactory, publisherService, sysLogger)

	// 3. Domain events (optional)
	var eventPublisher session.EventPublisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Cross-instance fan-out (optional)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	go c.WebSocketHub.Run()

	// 5. AI
	providerCfg := factory.ProviderConfig{
		Type:      cfg.Ai.LLMProvider,
		ModelName: cfg.Ai.QualityModel,
		BaseURL:   cfg.Ai.OllamaBaseURL,
		APIKey:    cfg.Keys.GoogleGemini,
	}
	if cfg.Ai.LLMProvider == "huggingface" {
		providerCfg.BaseURL = cfg.Ai.HuggingFaceURL
		providerCfg.APIKey = cfg.Keys.HuggingFace
	}
	llmProvider, err := factory.NewLLMProvider(ctx, providerCfg)
	if err != nil {
		if llm.KindOf(err) != llm.KindUnavailable {
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
		log.Printf("[WARN] AI features unavailable: %v", err)
		llmProvider = llm.NewUnavailableProvider(err)
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (fast=%s, quality=%s)", cfg.Ai.LLMProvider, cfg.Ai.FastModel, cfg.Ai.QualityModel)
	}

	gen := generator.NewLLMGenerator(llmProvider, generator.Config{
		FastModel:      cfg.Ai.FastModel,
		QualityModel:   cfg.Ai.QualityModel,
		MaxRetries:     cfg.Ai.MaxRetries,
		RetryBaseDelay: cfg.Ai.RetryBaseDelay,
	}, sysLogger)

	// 6. Session
	c.Session = session.New(session.Config{
		Analysis: analysis.Config{
			Debounce:     cfg.Session.AnalysisDebounce,
			MinLength:    cfg.Session.AnalysisMinLength,
			AnchorLength: cfg.Session.AnalysisAnchorLength,
		},
		PersistDebounce: cfg.Session.PersistDebounce,
		Proactive:       cfg.Session.ProactiveByDefault,
	},
		gen,
		documentStore,
		history.NewManager(uowFactory, cfg.Session.SnapshotCap, sysLogger),
		c.WebSocketHub,
		eventPublisher,
		sysLogger,
	)
	if err := c.Session.Start(ctx); err != nil {
		c.Close(ctx)
		return nil, fmt.Errorf("start session: %w", err)
	}

	c.PersistConsumer = service.NewPersistConsumerService(pubSub, cfg.Session.PersistTopic, documentStore, c.WebSocketHub)
	c.ActivityHandler = handler.NewActivityHandler(natsSub, c.WebSocketHub, wsLogger)
	c.SessionWsHandler = handler.NewSessionWsHandler(c.WebSocketHub, cfg.App.JwtSecret, wsLogger)

	c.WorkspaceController = controller.NewWorkspaceController(c.Session)
	c.SessionController = controller.NewSessionController(c.Session)
	c.SuggestionController = controller.NewSuggestionController(c.Session)
	c.ChatController = controller.NewChatController(c.Session)
	c.SnapshotController = controller.NewSnapshotController(c.Session)
	c.ExpertController = controller.NewExpertController(c.Session)

	return c, nil
}

// Close saves the working copy, then releases connections in reverse order.
func (c *Container) Close(ctx context.Context) {
	if c.Session != nil {
		if err := c.Session.Close(ctx); err != nil {
			log.Printf("[WARN] Failed to close session: %v", err)
		}
	}
	if c.WebSocketHub != nil {
		c.WebSocketHub.Stop()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
