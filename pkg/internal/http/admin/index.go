package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/models"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL).Name("Admin API").
		Use(exts.RequirePermission(models.PermissionAdminister))
	{
		admin.Get("/accounts", listAccount)
		admin.Put("/accounts/:userId/role", setAccountRole)
		admin.Post("/accounts/:userId/confirm", confirmAccount)
	}
}
