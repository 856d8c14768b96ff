package healthsync

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authRequired fiber.Handler) {
	r.Use(authRequired)

	r.Post("/users/:id/sync", func(c *fiber.Ctx) error {
		var req SyncRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		imported, err := svc.Import(c.Context(), c.Params("id"), req)
		if err != nil {
			return respondErr(err)
		}
		return c.Status(fiber.StatusCreated).JSON(SyncResponse{
			Message:       fmt.Sprintf("Successfully imported %d workouts", imported),
			ImportedCount: imported,
		})
	})

	r.Get("/users/:id/export", func(c *fiber.Ctx) error {
		data, err := svc.Export(c.Context(), c.Params("id"))
		if err != nil {
			return respondErr(err)
		}
		return c.JSON(data)
	})
}

func respondErr(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidFormat):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
