package service

import (
	"context"
	"encoding/json"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/permission"
	"collabnote-be/internal/pkg/apperror"
	"collabnote-be/internal/pkg/logger"
	"collabnote-be/internal/repository/contract"
	"collabnote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const noteServiceModule = "note_service"

// viewCounterTimeout bounds every counter call made on a request path.
var viewCounterTimeout = 300 * time.Millisecond

type INoteService interface {
	CreateNote(ctx context.Context, actor entity.Actor, content string) (*dto.NoteDto, error)
	CreateNamedNote(ctx context.Context, actor entity.Actor, alias string, content string) (*dto.NoteDto, error)
	GetNote(ctx context.Context, actor entity.Actor, idOrAlias string) (*dto.NoteDto, error)
	GetNoteContent(ctx context.Context, actor entity.Actor, idOrAlias string) (string, error)
	GetNoteMetadata(ctx context.Context, actor entity.Actor, idOrAlias string) (*dto.NoteMetadataDto, error)
	UpdateNote(ctx context.Context, actor entity.Actor, idOrAlias string, content string) (*dto.NoteDto, error)
	DeleteNote(ctx context.Context, actor entity.Actor, idOrAlias string) error
	UpdatePermissions(ctx context.Context, actor entity.Actor, idOrAlias string, req *dto.UpdatePermissionsRequest) (*dto.PermissionsDto, error)
	ListRevisions(ctx context.Context, actor entity.Actor, idOrAlias string) ([]*dto.RevisionMetadataDto, error)
	GetRevision(ctx context.Context, actor entity.Actor, idOrAlias string, revisionId int64) (*dto.RevisionDto, error)
}

type NoteOptions struct {
	ForbiddenAliases  []string
	MaxDocumentLength int
	DefaultVisibility entity.SpecialVisibility
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	registry         INoteRegistry
	store            IRevisionStore
	history          IHistoryService
	evaluator        *permission.Evaluator
	viewCounter      contract.ViewCounter
	publisherService IPublisherService
	eventPublisher   INoteEventPublisher
	logger           logger.ILogger
	validator        *noteValidator
	opts             NoteOptions
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	registry INoteRegistry,
	store IRevisionStore,
	history IHistoryService,
	evaluator *permission.Evaluator,
	viewCounter contract.ViewCounter,
	publisherService IPublisherService,
	eventPublisher INoteEventPublisher,
	logger logger.ILogger,
	opts NoteOptions,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		registry:         registry,
		store:            store,
		history:          history,
		evaluator:        evaluator,
		viewCounter:      viewCounter,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
		validator:        newNoteValidator(opts.ForbiddenAliases, opts.MaxDocumentLength),
		opts:             opts,
	}
}

func (c *noteService) CreateNote(ctx context.Context, actor entity.Actor, content string) (*dto.NoteDto, error) {
	return c.create(ctx, actor, nil, content)
}

func (c *noteService) CreateNamedNote(ctx context.Context, actor entity.Actor, alias string, content string) (*dto.NoteDto, error) {
	if err := c.validator.Alias(alias); err != nil {
		return nil, err
	}
	return c.create(ctx, actor, &alias, content)
}

func (c *noteService) create(ctx context.Context, actor entity.Actor, alias *string, content string) (*dto.NoteDto, error) {
	if err := c.validator.Content(content); err != nil {
		return nil, err
	}
	if !c.evaluator.MayCreate(actor) {
		return nil, apperror.Denied("create", "")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, revision, err := c.registry.Create(ctx, uow, alias, actor.UserRef(), c.opts.DefaultVisibility, content)
	if err != nil {
		return nil, err
	}

	c.logger.Info(noteServiceModule, "Note created", map[string]interface{}{
		"note_id":  note.Id.String(),
		"alias":    note.Alias,
		"owner_id": note.OwnerId,
	})
	c.eventPublisher.PublishNoteCreated(ctx, note, actor)

	return c.toNoteDto(ctx, uow, note, revision)
}

func (c *noteService) GetNote(ctx context.Context, actor entity.Actor, idOrAlias string) (*dto.NoteDto, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.readable(ctx, uow, actor, idOrAlias)
	if err != nil {
		return nil, err
	}
	revision, err := c.store.Get(ctx, uow, note.Id, note.CurrentRevisionId)
	if err != nil {
		return nil, err
	}

	c.recordVisit(ctx, actor, note)
	c.publishView(ctx, actor, note)

	return c.toNoteDto(ctx, uow, note, revision)
}

func (c *noteService) GetNoteContent(ctx context.Context, actor entity.Actor, idOrAlias string) (string, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.readable(ctx, uow, actor, idOrAlias)
	if err != nil {
		return "", err
	}
	revision, err := c.store.Get(ctx, uow, note.Id, note.CurrentRevisionId)
	if err != nil {
		return "", err
	}

	c.recordVisit(ctx, actor, note)
	c.publishView(ctx, actor, note)

	return revision.Content, nil
}

func (c *noteService) GetNoteMetadata(ctx context.Context, actor entity.Actor, idOrAlias string) (*dto.NoteMetadataDto, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.readable(ctx, uow, actor, idOrAlias)
	if err != nil {
		return nil, err
	}
	revision, err := c.store.Get(ctx, uow, note.Id, note.CurrentRevisionId)
	if err != nil {
		return nil, err
	}

	c.recordVisit(ctx, actor, note)

	return c.toMetadataDto(ctx, uow, note, revision)
}

func (c *noteService) UpdateNote(ctx context.Context, actor entity.Actor, idOrAlias string, content string) (*dto.NoteDto, error) {
	if err := c.validator.Content(content); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.registry.Resolve(ctx, uow, idOrAlias)
	if err != nil {
		return nil, err
	}
	if !c.evaluator.MayWrite(actor, note) {
		return nil, apperror.Denied("edit", idOrAlias)
	}

	note, revision, err := c.registry.UpdateContent(ctx, uow, note.Id, actor.UserRef(), content)
	if err != nil {
		return nil, err
	}

	if !actor.IsGuest() {
		if err := c.history.RecordEdit(ctx, actor.UserId, note.Id); err != nil {
			c.logHistoryFailure(note, actor, err)
		}
	}
	c.eventPublisher.PublishNoteUpdated(ctx, note, actor)

	return c.toNoteDto(ctx, uow, note, revision)
}

func (c *noteService) DeleteNote(ctx context.Context, actor entity.Actor, idOrAlias string) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.registry.Resolve(ctx, uow, idOrAlias)
	if err != nil {
		return err
	}
	if !c.evaluator.IsOwner(actor, note) {
		return apperror.Denied("delete", idOrAlias)
	}

	if err := c.registry.Delete(ctx, uow, note.Id); err != nil {
		return err
	}

	resetCtx, cancel := context.WithTimeout(ctx, viewCounterTimeout)
	defer cancel()
	if err := c.viewCounter.Reset(resetCtx, note.Id); err != nil {
		c.logger.Warn(noteServiceModule, "Failed to reset view count", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}

	c.logger.Info(noteServiceModule, "Note deleted", map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": actor.UserId,
	})
	c.eventPublisher.PublishNoteDeleted(ctx, note, actor)

	return nil
}

func (c *noteService) UpdatePermissions(ctx context.Context, actor entity.Actor, idOrAlias string, req *dto.UpdatePermissionsRequest) (*dto.PermissionsDto, error) {
	access, visibility, err := c.validator.AccessList(req)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := c.registry.Resolve(ctx, uow, idOrAlias)
	if err != nil {
		return nil, err
	}
	if !c.evaluator.IsOwner(actor, note) {
		return nil, apperror.Denied("change permissions of", idOrAlias)
	}

	note, err = c.registry.UpdatePermissions(ctx, uow, note.Id, access, visibility)
	if err != nil {
		return nil, err
	}

	c.eventPublisher.PublishPermissionsUpdated(ctx, note, actor)

	res := toPermissionsDto(note)
	return &res, nil
}

func (c *noteService) ListRevisions(ctx context.Context, actor entity.Actor, idOrAlias string) ([]*dto.RevisionMetadataDto, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.readable(ctx, uow, actor, idOrAlias)
	if err != nil {
		return nil, err
	}

	revisions, err := c.store.ListAll(ctx, uow, note.Id)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RevisionMetadataDto, len(revisions))
	for i, rev := range revisions {
		res[i] = &dto.RevisionMetadataDto{
			Id:        rev.Id,
			CreatedAt: rev.CreatedAt,
			Length:    rev.Length,
			AuthorId:  rev.AuthorId,
			Title:     rev.Title,
		}
	}
	return res, nil
}

func (c *noteService) GetRevision(ctx context.Context, actor entity.Actor, idOrAlias string, revisionId int64) (*dto.RevisionDto, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.readable(ctx, uow, actor, idOrAlias)
	if err != nil {
		return nil, err
	}

	rev, err := c.store.Get(ctx, uow, note.Id, revisionId)
	if err != nil {
		return nil, err
	}

	return &dto.RevisionDto{
		Id:        rev.Id,
		Content:   rev.Content,
		CreatedAt: rev.CreatedAt,
	}, nil
}

// readable resolves the note and checks read access in one step, so every
// read path authorizes before it touches revisions or history.
func (c *noteService) readable(ctx context.Context, uow unitofwork.UnitOfWork, actor entity.Actor, idOrAlias string) (*entity.Note, error) {
	note, err := c.registry.Resolve(ctx, uow, idOrAlias)
	if err != nil {
		return nil, err
	}
	if !c.evaluator.MayRead(actor, note) {
		return nil, apperror.Denied("read", idOrAlias)
	}
	return note, nil
}

func (c *noteService) recordVisit(ctx context.Context, actor entity.Actor, note *entity.Note) {
	if actor.IsGuest() {
		return
	}
	if err := c.history.RecordVisit(ctx, actor.UserId, note.Id); err != nil {
		c.logHistoryFailure(note, actor, err)
	}
}

func (c *noteService) logHistoryFailure(note *entity.Note, actor entity.Actor, err error) {
	c.logger.Warn(noteServiceModule, "Failed to record history entry", map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": actor.UserId,
		"error":   err.Error(),
	})
}

func (c *noteService) publishView(ctx context.Context, actor entity.Actor, note *entity.Note) {
	msgJson, err := json.Marshal(dto.PublishNoteViewedMessage{
		NoteId:    note.Id,
		ViewerKey: viewerKey(actor),
	})
	if err == nil {
		err = c.publisherService.Publish(ctx, msgJson)
	}
	if err != nil {
		c.logger.Warn(noteServiceModule, "Failed to publish note view", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}
}

// viewerKey identifies a viewer for view deduplication. Guests are keyed by address.
func viewerKey(actor entity.Actor) string {
	if !actor.IsGuest() {
		return "user:" + actor.UserId
	}
	if actor.ClientIP != "" {
		return "ip:" + actor.ClientIP
	}
	return ""
}

func (c *noteService) viewCount(ctx context.Context, noteId uuid.UUID) int64 {
	ctx, cancel := context.WithTimeout(ctx, viewCounterTimeout)
	defer cancel()

	count, err := c.viewCounter.Count(ctx, noteId)
	if err != nil {
		c.logger.Warn(noteServiceModule, "Failed to read view count", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
		return 0
	}
	return count
}
