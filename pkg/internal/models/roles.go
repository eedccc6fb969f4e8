package models

// Permission is a single named capability. Distinct bits combine into a
// role's mask with bitwise OR.
type Permission = uint

const (
	PermissionComment = Permission(1 << iota)
	PermissionWriteArticles
	PermissionModerateComments
)

// Administer implies nothing by itself; the administrator role carries
// every other bit as well.
const PermissionAdminister = Permission(1 << 7)

type Role struct {
	BaseModel

	Name        string     `json:"name" gorm:"uniqueIndex"`
	Permissions Permission `json:"permissions"`
	IsDefault   bool       `json:"is_default"`

	Accounts []Account `json:"accounts,omitempty"`
}

// Can reports whether the role grants every bit of perm.
func (v Role) Can(perm Permission) bool {
	return v.Permissions&perm == perm
}

func (v *Role) AddPermissions(perms ...Permission) {
	for _, perm := range perms {
		v.Permissions |= perm
	}
}

func (v *Role) RemovePermissions(perms ...Permission) {
	for _, perm := range perms {
		v.Permissions &^= perm
	}
}

func (v *Role) ResetPermissions() {
	v.Permissions = 0
}
