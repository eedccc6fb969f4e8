package api

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/services"
	"gorm.io/gorm"
)

func postsPerPage() int {
	if take := viper.GetInt("blog.posts_per_page"); take > 0 {
		return take
	}
	return 10
}

func postUrl(c *fiber.Ctx, id uint) string {
	return fmt.Sprintf("%s/api/posts/%d", c.BaseURL(), id)
}

func postToJSON(c *fiber.Ctx, item models.Post) fiber.Map {
	return fiber.Map{
		"url":       postUrl(c, item.ID),
		"title":     item.Title,
		"slug":      item.Slug,
		"body":      item.Body,
		"body_html": item.BodyHTML,
		"language":  item.Language,
		"timestamp": item.PublishedAt,
		"tags": lo.Map(item.Tags, func(tag models.Tag, _ int) string {
			return tag.Alias
		}),
		"author": userUrl(c, item.AuthorID),
	}
}

// postPage renders the shared paginated envelope:
// {posts, prev, next, count}.
func postPage(c *fiber.Ctx, tx *gorm.DB) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	take := postsPerPage()

	count, err := services.CountPost(tx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	items, err := services.ListPost(tx, take, (page-1)*take)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var prev, next any
	if page > 1 {
		prev = pageUrl(c, page-1)
	}
	if int64(page*take) < count {
		next = pageUrl(c, page+1)
	}

	return c.JSON(fiber.Map{
		"posts": lo.Map(items, func(item models.Post, _ int) fiber.Map {
			return postToJSON(c, item)
		}),
		"prev":  prev,
		"next":  next,
		"count": count,
	})
}

func pageUrl(c *fiber.Ctx, page int) string {
	return fmt.Sprintf("%s%s?page=%d", c.BaseURL(), c.Path(), page)
}

func listPost(c *fiber.Ctx) error {
	tx := database.C.Model(&models.Post{})

	if len(c.Query("tag")) > 0 {
		tx = services.FilterPostWithTag(tx, c.Query("tag"))
	}
	if len(c.Query("author")) > 0 {
		var err error
		if tx, err = services.FilterPostWithAuthor(tx, c.Query("author")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
	}

	return postPage(c, tx)
}

func getPost(c *fiber.Ctx) error {
	id := c.Params("postId")

	var item models.Post
	var err error
	if numericId, paramErr := strconv.Atoi(id); paramErr == nil {
		item, err = services.GetPost(database.C, uint(numericId))
	} else {
		item, err = services.GetPostBySlug(database.C, id)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(postToJSON(c, item))
}

func createPost(c *fiber.Ctx) error {
	user := exts.AccountFromContext(c)

	var data struct {
		Title string   `json:"title" validate:"max=1024"`
		Body  string   `json:"body" validate:"required"`
		Tags  []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(*user, data.Title, data.Body, data.Tags)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	c.Set(fiber.HeaderLocation, postUrl(c, item.ID))
	return c.Status(fiber.StatusCreated).JSON(postToJSON(c, item))
}

func editPost(c *fiber.Ctx) error {
	user := exts.AccountFromContext(c)
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// Only the author, or someone holding the moderation bit, may touch a
	// post that is not theirs.
	if item.AuthorID != user.ID && !user.Can(models.PermissionModerateComments) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	var data struct {
		Title *string  `json:"title"`
		Body  string   `json:"body" validate:"required"`
		Tags  []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	title := item.Title
	if data.Title != nil {
		title = *data.Title
	}

	item, err = services.EditPost(item, title, data.Body, data.Tags)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(postToJSON(c, item))
}

func deletePost(c *fiber.Ctx) error {
	user := exts.AccountFromContext(c)
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if item.AuthorID != user.ID && !user.IsAdministrator() {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	if err := services.DeletePost(item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
