package model

// All lists every persisted model, parents before children.
func All() []interface{} {
	return []interface{}{
		&Note{},
		&NotePermission{},
		&Revision{},
		&HistoryEntry{},
	}
}
