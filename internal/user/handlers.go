package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authRequired fiber.Handler) {
	r.Use(authRequired)

	r.Get("/:id", func(c *fiber.Ctx) error {
		profile, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return respondErr(err)
		}
		return c.JSON(profile)
	})

	r.Put("/:id", func(c *fiber.Ctx) error {
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		profile, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return respondErr(err)
		}
		return c.JSON(profile)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return respondErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func respondErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidWeight):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
