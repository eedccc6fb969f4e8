package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	pkg "github.com/zhangmm/zblog/pkg/internal"
	"github.com/zhangmm/zblog/pkg/internal/http/admin"
	"github.com/zhangmm/zblog/pkg/internal/http/api"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/security"
	"gorm.io/gorm"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "ZBlog",
		AppName:               "ZBlog v" + pkg.AppVersion,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             2 * 1024 * 1024,
		ErrorHandler:          errorHandler,
	})

	app.Use(exts.AuthMiddleware)

	api.MapAPIs(app, "/api")
	admin.MapControllers(app, "/api/admin")

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("server.bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting http server.")
	}
}

// Fiber exposes the underlying app for the test harness.
func (v *App) Fiber() *fiber.App {
	return v.app
}

// Every recoverable failure surfaces as the same JSON envelope:
// {"error": <short code>, "message": <detail>} with the matching status.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, security.ErrUnauthorized), errors.Is(err, security.ErrInvalidToken):
		code = fiber.StatusUnauthorized
	case errors.Is(err, security.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, gorm.ErrRecordNotFound):
		code = fiber.StatusNotFound
	}

	if code == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Authentication Required"`)
	}

	envelope := fiber.Map{"error": shortCode(code)}
	if detail := err.Error(); len(detail) > 0 && detail != shortCode(code) {
		envelope["message"] = detail
	}

	return c.Status(code).JSON(envelope)
}

func shortCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not found"
	default:
		return "internal server error"
	}
}
