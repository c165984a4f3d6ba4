package service

import (
	"context"
	"encoding/json"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService turns NoteViewed messages into view counts.
type consumerService struct {
	subscriber  message.Subscriber
	topicName   string
	dedupe      *memory.ViewDedupeRepository
	viewCounter contract.ViewCounter
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	dedupe *memory.ViewDedupeRepository,
	viewCounter contract.ViewCounter,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		topicName:   topicName,
		dedupe:      dedupe,
		viewCounter: viewCounter,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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

// processMessage always acks. View counts are best effort and a redelivery
// loop against an unreachable Redis would only add load.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishNoteViewedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Warn("VIEW_COUNTER", "Dropping malformed view message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if !cs.dedupe.FirstView(payload.NoteId, payload.ViewerKey) {
		return
	}

	count, err := cs.viewCounter.Increment(ctx, payload.NoteId)
	if err != nil {
		cs.logger.Error("VIEW_COUNTER", "Failed to increment view count", map[string]interface{}{
			"note_id": payload.NoteId.String(),
			"error":   err.Error(),
		})
		return
	}

	cs.logger.Debug("VIEW_COUNTER", "View counted", map[string]interface{}{
		"note_id": payload.NoteId.String(),
		"views":   count,
	})
}
