package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"

	"gorm.io/datatypes"
)

type RevisionMapper struct{}

func NewRevisionMapper() *RevisionMapper {
	return &RevisionMapper{}
}

func (m *RevisionMapper) ToEntity(r *model.Revision) *entity.Revision {
	if r == nil {
		return nil
	}

	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entity.Revision{
		Id:          r.Id,
		NoteId:      r.NoteId,
		Content:     r.Content,
		AuthorId:    r.AuthorId,
		Title:       r.Title,
		Description: r.Description,
		Tags:        tags,
		Length:      r.Length,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *RevisionMapper) ToModel(r *entity.Revision) *model.Revision {
	if r == nil {
		return nil
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Revision{
		Id:          r.Id,
		NoteId:      r.NoteId,
		Content:     r.Content,
		AuthorId:    r.AuthorId,
		Title:       r.Title,
		Description: r.Description,
		Tags:        datatypes.JSONSlice[string](tags),
		Length:      r.Length,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *RevisionMapper) ToEntities(revisions []*model.Revision) []*entity.Revision {
	entities := make([]*entity.Revision, len(revisions))
	for i, r := range revisions {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
