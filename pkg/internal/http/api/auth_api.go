package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/security"
)

func tokenTTL() time.Duration {
	if ttl := viper.GetDuration("security.token_ttl"); ttl > 0 {
		return ttl
	}
	return time.Hour
}

// getToken exchanges password credentials for a signed API token. A request
// that authenticated with a token cannot mint another one, otherwise a
// stolen token would never expire.
func getToken(c *fiber.Ctx) error {
	user := exts.AccountFromContext(c)
	if user == nil || c.Locals("auth_method") != exts.AuthMethodPassword {
		return fiber.NewError(fiber.StatusUnauthorized, "password authentication required")
	}

	ttl := tokenTTL()
	token, err := security.IssueToken(user.ID, ttl)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"expiration": int64(ttl.Seconds()),
	})
}
