package service

import (
	"context"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/repository/unitofwork"
)

func (c *noteService) toNoteDto(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, revision *entity.Revision) (*dto.NoteDto, error) {
	metadata, err := c.toMetadataDto(ctx, uow, note, revision)
	if err != nil {
		return nil, err
	}

	return &dto.NoteDto{
		Id:          note.Id,
		Alias:       note.Alias,
		Content:     revision.Content,
		Metadata:    *metadata,
		Permissions: metadata.Permissions,
	}, nil
}

func (c *noteService) toMetadataDto(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note, revision *entity.Revision) (*dto.NoteMetadataDto, error) {
	editedBy, err := uow.RevisionRepository().FindAuthorIds(ctx, note.Id)
	if err != nil {
		return nil, err
	}
	if editedBy == nil {
		editedBy = []string{}
	}

	tags := revision.Tags
	if tags == nil {
		tags = []string{}
	}

	return &dto.NoteMetadataDto{
		Id:                note.Id,
		Alias:             note.Alias,
		Title:             revision.Title,
		Description:       revision.Description,
		Tags:              tags,
		CreateTime:        note.CreatedAt,
		UpdateTime:        revision.CreatedAt,
		CurrentRevisionId: note.CurrentRevisionId,
		ViewCount:         c.viewCount(ctx, note.Id),
		EditedBy:          editedBy,
		Permissions:       toPermissionsDto(note),
	}, nil
}

// toPermissionsDto projects special visibility back into the reserved groups.
func toPermissionsDto(note *entity.Note) dto.PermissionsDto {
	res := dto.PermissionsDto{
		Owner:          note.OwnerId,
		SharedToUsers:  []dto.UserPermissionDto{},
		SharedToGroups: []dto.GroupPermissionDto{},
	}

	if note.Visibility.Everyone.CanRead() {
		res.SharedToGroups = append(res.SharedToGroups, dto.GroupPermissionDto{
			Group:   entity.GroupEveryone,
			CanEdit: note.Visibility.Everyone.CanEdit(),
		})
	}
	if note.Visibility.LoggedIn.CanRead() {
		res.SharedToGroups = append(res.SharedToGroups, dto.GroupPermissionDto{
			Group:   entity.GroupLoggedIn,
			CanEdit: note.Visibility.LoggedIn.CanEdit(),
		})
	}

	for _, p := range note.Permissions {
		switch p.GranteeKind {
		case entity.GranteeUser:
			res.SharedToUsers = append(res.SharedToUsers, dto.UserPermissionDto{User: p.Grantee, CanEdit: p.CanEdit})
		case entity.GranteeGroup:
			res.SharedToGroups = append(res.SharedToGroups, dto.GroupPermissionDto{Group: p.Grantee, CanEdit: p.CanEdit})
		}
	}

	return res
}
