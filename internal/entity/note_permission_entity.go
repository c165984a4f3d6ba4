package entity

import "github.com/google/uuid"

type GranteeKind string

const (
	GranteeUser  GranteeKind = "user"
	GranteeGroup GranteeKind = "group"
)

// Reserved group names used to express special visibility in the access list shape.
const (
	GroupEveryone = "_EVERYONE"
	GroupLoggedIn = "_LOGGED_IN"
)

type NotePermission struct {
	NoteId      uuid.UUID
	GranteeKind GranteeKind
	Grantee     string
	CanEdit     bool
}
