package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zhangmm/zblog/pkg/internal/http/exts"
	"github.com/zhangmm/zblog/pkg/internal/services"
)

func listAccount(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	accounts, count, err := services.ListAccount(take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  accounts,
	})
}

func setAccountRole(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	var data struct {
		Role string `json:"role" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	role, err := services.GetRole(data.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "no such role: "+data.Role)
	}

	account, err = services.SetAccountRole(account, role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}

func confirmAccount(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	account, err := services.GetAccount(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.ConfirmAccount(account); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
