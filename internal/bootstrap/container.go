package bootstrap

import (
	"context"
	"fmt"

	"collabnote-be/internal/config"
	"collabnote-be/internal/controller"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/permission"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/pkg/serverutils"
	"collabnote-be/internal/repository/counter"
	"collabnote-be/internal/repository/memory"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/internal/service"

	pktNats "collabnote-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController    controller.INoteController
	HistoryController controller.IHistoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	viewLogger := logger.NewIsolatedLogger(cfg.App.ViewLogFilePath)

	guestAccess, err := permission.ParseGuestAccess(cfg.Notes.GuestAccess)
	if err != nil {
		return nil, err
	}
	defaultVisibility, err := parseVisibility(cfg.Notes.DefaultEveryoneAccess, cfg.Notes.DefaultLoggedInAccess)
	if err != nil {
		return nil, err
	}

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, pubSub.Close)

	// NATS is optional; without it lifecycle events are dropped.
	var eventSink service.EventSink
	if cfg.Events.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(context.Background(), cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventSink = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	// Redis
	opt, err := redis.ParseURL(cfg.Cache.RedisURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.Cache.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, view counts are unavailable", map[string]interface{}{"error": err.Error()})
	}
	c.closers = append(c.closers, rdb.Close)

	// 3. Services
	viewCounter := counter.NewRedisViewCounter(rdb)
	viewDedupe := memory.NewViewDedupeRepository(cfg.Cache.ViewDedupeWindow)

	publisherService := service.NewPublisherService(cfg.Events.ViewTopicName, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Events.ViewTopicName,
		viewDedupe,
		viewCounter,
		viewLogger,
	)

	store := service.NewRevisionStore()
	registry := service.NewNoteRegistry(store)
	historyService := service.NewHistoryService(uowFactory, registry)

	noteService := service.NewNoteService(
		uowFactory,
		registry,
		store,
		historyService,
		permission.NewEvaluator(permission.Policy{GuestAccess: guestAccess}),
		viewCounter,
		publisherService,
		service.NewNoteEventPublisher(eventSink, sysLogger),
		sysLogger,
		service.NoteOptions{
			ForbiddenAliases:  cfg.Notes.ForbiddenAliases,
			MaxDocumentLength: cfg.Notes.MaxDocumentLength,
			DefaultVisibility: defaultVisibility,
		},
	)

	// 4. Controllers
	c.NoteController = controller.NewNoteController(noteService, serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret, true))
	c.HistoryController = controller.NewHistoryController(historyService, serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret, false))

	return c, nil
}

// Close releases the buses and connections in reverse order of creation.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Syncing stdout fails on some terminals, so the result is ignored.
	_ = c.Logger.Sync()
	return firstErr
}

func parseVisibility(everyone, loggedIn string) (entity.SpecialVisibility, error) {
	e, err := parseAccessLevel(everyone)
	if err != nil {
		return entity.SpecialVisibility{}, fmt.Errorf("DEFAULT_EVERYONE_ACCESS: %w", err)
	}
	l, err := parseAccessLevel(loggedIn)
	if err != nil {
		return entity.SpecialVisibility{}, fmt.Errorf("DEFAULT_LOGGED_IN_ACCESS: %w", err)
	}
	return entity.SpecialVisibility{Everyone: e, LoggedIn: l}, nil
}

func parseAccessLevel(s string) (entity.AccessLevel, error) {
	switch level := entity.AccessLevel(s); level {
	case entity.AccessNone, entity.AccessRead, entity.AccessWrite:
		return level, nil
	default:
		return "", fmt.Errorf("unknown access level %q", s)
	}
}
