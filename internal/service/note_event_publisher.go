package service

import (
	"context"

	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/pkg/events"
)

// EventSink is the transport behind note lifecycle events, typically the NATS publisher.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// INoteEventPublisher announces note lifecycle changes. Publishing never fails the caller.
type INoteEventPublisher interface {
	PublishNoteCreated(ctx context.Context, note *entity.Note, actor entity.Actor)
	PublishNoteUpdated(ctx context.Context, note *entity.Note, actor entity.Actor)
	PublishNoteDeleted(ctx context.Context, note *entity.Note, actor entity.Actor)
	PublishPermissionsUpdated(ctx context.Context, note *entity.Note, actor entity.Actor)
}

type noteEventPublisher struct {
	sink   EventSink
	logger logger.ILogger
}

// NewNoteEventPublisher accepts a nil sink, in which case events are dropped.
func NewNoteEventPublisher(sink EventSink, logger logger.ILogger) INoteEventPublisher {
	return &noteEventPublisher{
		sink:   sink,
		logger: logger,
	}
}

func (p *noteEventPublisher) PublishNoteCreated(ctx context.Context, note *entity.Note, actor entity.Actor) {
	p.publish(ctx, events.NoteCreated, note, actor, map[string]interface{}{
		"revision_id": note.CurrentRevisionId,
	})
}

func (p *noteEventPublisher) PublishNoteUpdated(ctx context.Context, note *entity.Note, actor entity.Actor) {
	p.publish(ctx, events.NoteUpdated, note, actor, map[string]interface{}{
		"revision_id": note.CurrentRevisionId,
	})
}

func (p *noteEventPublisher) PublishNoteDeleted(ctx context.Context, note *entity.Note, actor entity.Actor) {
	p.publish(ctx, events.NoteDeleted, note, actor, nil)
}

func (p *noteEventPublisher) PublishPermissionsUpdated(ctx context.Context, note *entity.Note, actor entity.Actor) {
	p.publish(ctx, events.NotePermissionsUpdated, note, actor, map[string]interface{}{
		"everyone_access":  string(note.Visibility.Everyone),
		"logged_in_access": string(note.Visibility.LoggedIn),
		"entries":          len(note.Permissions),
	})
}

func (p *noteEventPublisher) publish(ctx context.Context, eventType string, note *entity.Note, actor entity.Actor, extra map[string]interface{}) {
	if p.sink == nil {
		return
	}

	evt := events.NewNoteEvent(eventType, note.Id.String(), note.Identifier(), actor.UserId, extra)
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("NOTE_EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}
}
