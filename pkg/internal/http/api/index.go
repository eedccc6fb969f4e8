package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/models"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		api.Get("/token", getToken)

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Get("/:postId", getPost)
			posts.Post("/", exts.RequirePermission(models.PermissionWriteArticles), createPost)
			posts.Put("/:postId", exts.RequirePermission(models.PermissionWriteArticles), editPost)
			posts.Delete("/:postId", exts.RequirePermission(models.PermissionWriteArticles), deletePost)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/:userId", getUser)
			users.Get("/:userId/posts", listUserPost)
			users.Post("/", createUser)
			users.Post("/confirm", confirmUser)
		}
	}
}
