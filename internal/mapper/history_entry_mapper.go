package mapper

import (
	"collabnote-be/internal/entity"
	"collabnote-be/internal/model"
)

type HistoryEntryMapper struct{}

func NewHistoryEntryMapper() *HistoryEntryMapper {
	return &HistoryEntryMapper{}
}

func (m *HistoryEntryMapper) ToEntity(h *model.HistoryEntry) *entity.HistoryEntry {
	if h == nil {
		return nil
	}
	return &entity.HistoryEntry{
		UserId:      h.UserId,
		NoteId:      h.NoteId,
		Pinned:      h.Pinned,
		LastVisited: h.LastVisited,
		LastEdited:  h.LastEdited,
	}
}

func (m *HistoryEntryMapper) ToModel(h *entity.HistoryEntry) *model.HistoryEntry {
	if h == nil {
		return nil
	}
	return &model.HistoryEntry{
		UserId:      h.UserId,
		NoteId:      h.NoteId,
		Pinned:      h.Pinned,
		LastVisited: h.LastVisited,
		LastEdited:  h.LastEdited,
	}
}

func (m *HistoryEntryMapper) ToEntities(entries []*model.HistoryEntry) []*entity.HistoryEntry {
	entities := make([]*entity.HistoryEntry, len(entries))
	for i, h := range entries {
		entities[i] = m.ToEntity(h)
	}
	return entities
}
