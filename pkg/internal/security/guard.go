package security

import (
	"errors"

	"github.com/zhangmm/zblog/pkg/internal/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Authorize checks the acting identity against a required permission before
// a protected operation runs. A nil account is the anonymous actor with the
// empty permission set. The check is complete before any wrapped work
// starts; callers short-circuit on error and must not partially execute.
func Authorize(account *models.Account, perm models.Permission) error {
	if account == nil {
		return ErrUnauthorized
	}
	if !account.Can(perm) {
		return ErrForbidden
	}
	return nil
}
