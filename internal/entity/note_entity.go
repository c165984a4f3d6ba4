package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccessLevel is the grant carried by a special visibility flag.
type AccessLevel string

const (
	AccessNone  AccessLevel = "none"
	AccessRead  AccessLevel = "read"
	AccessWrite AccessLevel = "write"
)

func (l AccessLevel) CanRead() bool {
	return l == AccessRead || l == AccessWrite
}

func (l AccessLevel) CanEdit() bool {
	return l == AccessWrite
}

// SpecialVisibility holds the blanket grants that apply independent of the access list.
type SpecialVisibility struct {
	Everyone AccessLevel
	LoggedIn AccessLevel
}

type Note struct {
	Id                uuid.UUID
	Alias             *string
	OwnerId           *string
	Visibility        SpecialVisibility
	CurrentRevisionId int64
	Permissions       []NotePermission
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Identifier returns the alias when the note has one, the id otherwise.
func (n *Note) Identifier() string {
	if n.Alias != nil {
		return *n.Alias
	}
	return n.Id.String()
}
