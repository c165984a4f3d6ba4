package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/permission"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/counter"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/unitofwork"
	"collabnote-be/internal/testutil"
	"collabnote-be/pkg/events"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

var (
	alice = entity.Actor{UserId: "alice"}
	bob   = entity.Actor{UserId: "bob"}
	carol = entity.Actor{UserId: "carol", Groups: []string{"devs"}}
	guest = entity.Actor{ClientIP: "203.0.113.7"}
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []dto.PublishNoteViewedMessage
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	var msg dto.PublishNoteViewedMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Messages() []dto.PublishNoteViewedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]dto.PublishNoteViewedMessage(nil), p.messages...)
}

type recordingSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *recordingSink) Publish(ctx context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]string, len(s.events))
	for i, e := range s.events {
		types[i] = e.EventType()
	}
	return types
}

type fixture struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	registry   INoteRegistry
	store      IRevisionStore
	history    IHistoryService
	counter    contract.ViewCounter
	redis      *miniredis.Miniredis
	views      *recordingPublisher
	sink       *recordingSink
	logs       *observer.ObservedLogs
	svc        INoteService
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	guestAccess permission.GuestAccess
	visibility  entity.SpecialVisibility
	history     IHistoryService
	viewCounter contract.ViewCounter
}

func withGuestAccess(g permission.GuestAccess) fixtureOption {
	return func(c *fixtureConfig) { c.guestAccess = g }
}

func withDefaultVisibility(v entity.SpecialVisibility) fixtureOption {
	return func(c *fixtureConfig) { c.visibility = v }
}

func withHistory(h IHistoryService) fixtureOption {
	return func(c *fixtureConfig) { c.history = h }
}

func withViewCounter(vc contract.ViewCounter) fixtureOption {
	return func(c *fixtureConfig) { c.viewCounter = vc }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{
		guestAccess: permission.GuestAccessWrite,
		visibility:  entity.SpecialVisibility{Everyone: entity.AccessNone, LoggedIn: entity.AccessNone},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := testutil.NewSQLiteDB(t)
	uowFactory := unitofwork.NewRepositoryFactory(db)
	store := NewRevisionStore()
	registry := NewNoteRegistry(store)

	history := cfg.history
	if history == nil {
		history = NewHistoryService(uowFactory, registry)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	viewCounter := counter.NewRedisViewCounter(rdb)
	svcCounter := viewCounter
	if cfg.viewCounter != nil {
		svcCounter = cfg.viewCounter
	}

	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	views := &recordingPublisher{}
	sink := &recordingSink{}

	svc := NewNoteService(
		uowFactory,
		registry,
		store,
		history,
		permission.NewEvaluator(permission.Policy{GuestAccess: cfg.guestAccess}),
		svcCounter,
		views,
		NewNoteEventPublisher(sink, log),
		log,
		NoteOptions{
			ForbiddenAliases:  []string{"new", "me", "history", "api"},
			MaxDocumentLength: 1000,
			DefaultVisibility: cfg.visibility,
		},
	)

	return &fixture{
		db:         db,
		uowFactory: uowFactory,
		registry:   registry,
		store:      store,
		history:    history,
		counter:    viewCounter,
		redis:      mr,
		views:      views,
		sink:       sink,
		logs:       logs,
		svc:        svc,
	}
}

func (f *fixture) revisionCount(t *testing.T, note *dto.NoteDto) int64 {
	t.Helper()
	uow := f.uowFactory.NewUnitOfWork(context.Background())
	list, err := f.store.ListAll(context.Background(), uow, note.Id)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	return int64(len(list))
}
