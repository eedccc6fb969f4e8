package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/zhangmm/zblog/pkg/internal/database"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/models"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

func userUrl(c *fiber.Ctx, id uint) string {
	return fmt.Sprintf("%s/api/users/%d", c.BaseURL(), id)
}

func userToJSON(c *fiber.Ctx, account models.Account, postCount int64) fiber.Map {
	return fiber.Map{
		"url":          userUrl(c, account.ID),
		"username":     account.Name,
		"member_since": account.MemberSince,
		"last_seen":    account.LastSeenAt,
		"posts":        fmt.Sprintf("%s/api/users/%d/posts", c.BaseURL(), account.ID),
		"post_count":   postCount,
	}
}

func getUser(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	count, err := services.CountPost(database.C.Model(&models.Post{}).Where("author_id = ?", account.ID))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(userToJSON(c, account, count))
}

func listUserPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	tx := database.C.Model(&models.Post{}).Where("author_id = ?", account.ID)
	return postPage(c, tx)
}

func createUser(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,min=2,max=64"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6,max=128"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.CreateAccount(data.Name, data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := services.SendConfirmationEmail(account); err != nil {
		// Registration already committed; the user can ask for another email.
		log.Error().Err(err).Uint("account", account.ID).
			Msg("An error occurred when queueing confirmation email...")
	}

	c.Set(fiber.HeaderLocation, userUrl(c, account.ID))
	return c.Status(fiber.StatusCreated).JSON(userToJSON(c, account, 0))
}

func confirmUser(c *fiber.Ctx) error {
	var data struct {
		Token string `json:"token" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.ConfirmAccountWithToken(data.Token)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired confirmation token")
	}

	return c.JSON(fiber.Map{
		"url":       userUrl(c, account.ID),
		"confirmed": true,
	})
}
