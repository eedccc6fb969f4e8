package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/zhangmm/zblog/pkg/internal/render"
)

type Account struct {
	BaseModel

	Name         string `json:"name" gorm:"uniqueIndex"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`

	Nick     string `json:"nick"`
	Location string `json:"location"`

	// Description is the raw "about me" markdown; DescriptionHTML is always
	// recomputed from it via SetDescription, never written directly.
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`

	AvatarHash  string     `json:"avatar_hash"`
	Confirmed   bool       `json:"confirmed"`
	MemberSince time.Time  `json:"member_since" gorm:"autoCreateTime"`
	LastSeenAt  *time.Time `json:"last_seen_at"`

	RoleID uint `json:"role_id"`
	Role   Role `json:"role"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

// SetDescription assigns the about-me text and recomputes the sanitized
// HTML rendition.
func (v *Account) SetDescription(source string) {
	v.Description = source
	v.DescriptionHTML = render.Markdown(source)
}

// SetEmail assigns the email and refreshes the avatar hash derived from it.
func (v *Account) SetEmail(email string) {
	v.Email = email
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	v.AvatarHash = hex.EncodeToString(sum[:])
}

// Can reports whether the account's role grants perm. A nil account is the
// anonymous actor and holds no permissions at all.
func (v *Account) Can(perm Permission) bool {
	if v == nil {
		return false
	}
	return v.Role.Can(perm)
}

func (v *Account) IsAdministrator() bool {
	return v.Can(PermissionAdminister)
}

func (v Account) GravatarUrl(size int) string {
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%s?s=%d&d=identicon&r=g", v.AvatarHash, size)
}
