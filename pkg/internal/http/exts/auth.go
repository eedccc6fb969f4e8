package exts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	localCache "github.com/zhangmm/zblog/pkg/internal/cache"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/security"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

const (
	AuthMethodNone     = "none"
	AuthMethodPassword = "password"
	AuthMethodToken    = "token"
)

// AuthMiddleware resolves the HTTP Basic header into an acting identity.
// Callers send either (email, password) or (token, empty-password); requests
// without credentials go through as the anonymous actor with no permissions.
// The resolved identity lands in c.Locals("user"), the method used in
// c.Locals("auth_method").
func AuthMiddleware(c *fiber.Ctx) error {
	c.Locals("auth_method", AuthMethodNone)

	principal, secret, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok || len(principal) == 0 {
		return c.Next()
	}

	var account models.Account
	var err error
	if len(secret) == 0 {
		account, err = authenticateTokenCached(principal)
		c.Locals("auth_method", AuthMethodToken)
	} else {
		account, err = services.Authenticate(principal, secret)
		c.Locals("auth_method", AuthMethodPassword)
	}
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Authentication Required"`)
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	c.Locals("user", account)
	services.PingAccount(account)

	return c.Next()
}

func parseBasicAuth(header string) (string, string, bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	principal, secret, found := strings.Cut(string(raw), ":")
	if !found {
		return "", "", false
	}
	return principal, secret, true
}

// Token verification is pure, but the account row behind it is not; cache
// the resolved identity briefly to keep the API from hitting the accounts
// table on every request.
func authenticateTokenCached(token string) (models.Account, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	key := fmt.Sprintf("auth-token#%s", token)
	if hit, err := marshal.Get(ctx, key, new(models.Account)); err == nil {
		return *hit.(*models.Account), nil
	}

	account, err := services.AuthenticateToken(token)
	if err != nil {
		return account, err
	}

	_ = marshal.Set(ctx, key, account,
		store.WithExpiration(3*time.Minute),
		store.WithTags([]string{"auth-token", fmt.Sprintf("account#%d", account.ID)}),
	)

	return account, nil
}

// AccountFromContext returns the acting identity, nil for the anonymous
// actor.
func AccountFromContext(c *fiber.Ctx) *models.Account {
	if account, ok := c.Locals("user").(models.Account); ok {
		return &account
	}
	return nil
}

// RequirePermission guards a protected route: the permission check completes
// before the handler runs, and a failed check short-circuits with 401 or 403
// without touching any state.
func RequirePermission(perm models.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := security.Authorize(AccountFromContext(c), perm); err != nil {
			if errors.Is(err, security.ErrUnauthorized) {
				return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
			}
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
