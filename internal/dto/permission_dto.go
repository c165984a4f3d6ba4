package dto

type PermissionsDto struct {
	Owner          *string              `json:"owner"`
	SharedToUsers  []UserPermissionDto  `json:"shared_to_users"`
	SharedToGroups []GroupPermissionDto `json:"shared_to_groups"`
}

type UserPermissionDto struct {
	User    string `json:"user" validate:"required,max=255"`
	CanEdit bool   `json:"can_edit"`
}

type GroupPermissionDto struct {
	Group   string `json:"group" validate:"required,max=255"`
	CanEdit bool   `json:"can_edit"`
}

// UpdatePermissionsRequest replaces the whole access list; entries left out are revoked.
type UpdatePermissionsRequest struct {
	SharedToUsers  []UserPermissionDto  `json:"shared_to_users" validate:"dive"`
	SharedToGroups []GroupPermissionDto `json:"shared_to_groups" validate:"dive"`
}
