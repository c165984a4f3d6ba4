package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var currentRevisionId int64
	if n.CurrentRevisionId != nil {
		currentRevisionId = *n.CurrentRevisionId
	}

	return &entity.Note{
		Id:      n.Id,
		Alias:   n.Alias,
		OwnerId: n.OwnerId,
		Visibility: entity.SpecialVisibility{
			Everyone: accessLevel(n.EveryoneAccess),
			LoggedIn: accessLevel(n.LoggedInAccess),
		},
		CurrentRevisionId: currentRevisionId,
		Permissions:       m.toPermissionEntities(n.Permissions),
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
}

// ToModel leaves Permissions empty; the access list is persisted through its own repository.
func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var currentRevisionId *int64
	if n.CurrentRevisionId != 0 {
		id := n.CurrentRevisionId
		currentRevisionId = &id
	}

	return &model.Note{
		Id:                n.Id,
		Alias:             n.Alias,
		OwnerId:           n.OwnerId,
		EveryoneAccess:    string(accessLevel(string(n.Visibility.Everyone))),
		LoggedInAccess:    string(accessLevel(string(n.Visibility.LoggedIn))),
		CurrentRevisionId: currentRevisionId,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToPermissionModels(perms []entity.NotePermission) []*model.NotePermission {
	models := make([]*model.NotePermission, len(perms))
	for i, p := range perms {
		models[i] = &model.NotePermission{
			NoteId:      p.NoteId,
			GranteeKind: string(p.GranteeKind),
			Grantee:     p.Grantee,
			CanEdit:     p.CanEdit,
		}
	}
	return models
}

func (m *NoteMapper) toPermissionEntities(perms []model.NotePermission) []entity.NotePermission {
	entities := make([]entity.NotePermission, 0, len(perms))
	for _, p := range perms {
		entities = append(entities, entity.NotePermission{
			NoteId:      p.NoteId,
			GranteeKind: entity.GranteeKind(p.GranteeKind),
			Grantee:     p.Grantee,
			CanEdit:     p.CanEdit,
		})
	}
	return entities
}

func accessLevel(s string) entity.AccessLevel {
	switch entity.AccessLevel(s) {
	case entity.AccessRead, entity.AccessWrite:
		return entity.AccessLevel(s)
	default:
		return entity.AccessNone
	}
}
