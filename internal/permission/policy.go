package permission

import (
	"fmt"
	"strings"
)

// GuestAccess caps what anonymous actors may do, whatever the note itself grants.
// Levels are ordered: each one includes the ones below it.
type GuestAccess int

const (
	GuestAccessDeny GuestAccess = iota
	GuestAccessRead
	GuestAccessWrite
	GuestAccessCreate
)

func (g GuestAccess) String() string {
	switch g {
	case GuestAccessRead:
		return "read"
	case GuestAccessWrite:
		return "write"
	case GuestAccessCreate:
		return "create"
	default:
		return "deny"
	}
}

func ParseGuestAccess(s string) (GuestAccess, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deny", "none":
		return GuestAccessDeny, nil
	case "read":
		return GuestAccessRead, nil
	case "write":
		return GuestAccessWrite, nil
	case "create":
		return GuestAccessCreate, nil
	default:
		return GuestAccessDeny, fmt.Errorf("unknown guest access level %q", s)
	}
}

// Policy is the deployment-wide input to every permission decision.
type Policy struct {
	GuestAccess GuestAccess
}
