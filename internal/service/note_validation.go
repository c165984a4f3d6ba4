package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/entity"
	"collabnote-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

const MaxAliasLength = 64

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

type noteValidator struct {
	forbiddenAliases  map[string]struct{}
	maxDocumentLength int
}

func newNoteValidator(forbiddenAliases []string, maxDocumentLength int) *noteValidator {
	forbidden := make(map[string]struct{}, len(forbiddenAliases))
	for _, a := range forbiddenAliases {
		forbidden[strings.ToLower(a)] = struct{}{}
	}
	return &noteValidator{
		forbiddenAliases:  forbidden,
		maxDocumentLength: maxDocumentLength,
	}
}

// Alias must be URL safe, must not be mistaken for a note id and must not
// shadow a reserved route segment.
func (v *noteValidator) Alias(alias string) error {
	if alias == "" || utf8.RuneCountInString(alias) > MaxAliasLength {
		return apperror.Validation("alias", fmt.Sprintf("must be between 1 and %d characters", MaxAliasLength))
	}
	if !aliasPattern.MatchString(alias) {
		return apperror.Validation("alias", "may only contain letters, digits and . _ ~ -")
	}
	if _, err := uuid.Parse(alias); err == nil {
		return apperror.Validation("alias", "must not be a UUID")
	}
	if _, forbidden := v.forbiddenAliases[strings.ToLower(alias)]; forbidden {
		return apperror.Validation("alias", fmt.Sprintf("%q is reserved", alias))
	}
	return nil
}

// Content must be storable in a text column: valid UTF-8 without NUL bytes.
func (v *noteValidator) Content(content string) error {
	if v.maxDocumentLength > 0 && len(content) > v.maxDocumentLength {
		return apperror.Validation("content", fmt.Sprintf("must not exceed %d bytes", v.maxDocumentLength))
	}
	if !utf8.ValidString(content) {
		return apperror.Validation("content", "must be valid UTF-8")
	}
	if strings.IndexByte(content, 0) >= 0 {
		return apperror.Validation("content", "must not contain NUL bytes")
	}
	return nil
}

// AccessList turns a permissions request into access list entries and special
// visibility. The reserved groups are folded into the visibility flags.
func (v *noteValidator) AccessList(req *dto.UpdatePermissionsRequest) ([]entity.NotePermission, entity.SpecialVisibility, error) {
	visibility := entity.SpecialVisibility{
		Everyone: entity.AccessNone,
		LoggedIn: entity.AccessNone,
	}
	perms := make([]entity.NotePermission, 0, len(req.SharedToUsers)+len(req.SharedToGroups))

	seenUsers := make(map[string]struct{}, len(req.SharedToUsers))
	for _, u := range req.SharedToUsers {
		name := strings.TrimSpace(u.User)
		if name == "" {
			return nil, visibility, apperror.Validation("shared_to_users", "entries must name a user")
		}
		if _, dup := seenUsers[name]; dup {
			return nil, visibility, apperror.Validation("shared_to_users", fmt.Sprintf("lists user %q more than once", name))
		}
		seenUsers[name] = struct{}{}
		perms = append(perms, entity.NotePermission{
			GranteeKind: entity.GranteeUser,
			Grantee:     name,
			CanEdit:     u.CanEdit,
		})
	}

	seenGroups := make(map[string]struct{}, len(req.SharedToGroups))
	for _, g := range req.SharedToGroups {
		name := strings.TrimSpace(g.Group)
		if name == "" {
			return nil, visibility, apperror.Validation("shared_to_groups", "entries must name a group")
		}
		if _, dup := seenGroups[name]; dup {
			return nil, visibility, apperror.Validation("shared_to_groups", fmt.Sprintf("lists group %q more than once", name))
		}
		seenGroups[name] = struct{}{}

		level := entity.AccessRead
		if g.CanEdit {
			level = entity.AccessWrite
		}
		switch name {
		case entity.GroupEveryone:
			visibility.Everyone = level
		case entity.GroupLoggedIn:
			visibility.LoggedIn = level
		default:
			perms = append(perms, entity.NotePermission{
				GranteeKind: entity.GranteeGroup,
				Grantee:     name,
				CanEdit:     g.CanEdit,
			})
		}
	}

	return perms, visibility, nil
}
