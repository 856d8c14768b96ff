package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			UserID       string  `json:"user_id"`
			RuckWeightKg float64 `json:"ruck_weight_kg"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		sess, err := svc.Create(c.Context(), req.UserID, req.RuckWeightKg)
		if err != nil {
			return respondErr(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		sessions, err := svc.List(c.Context(), userID)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(sessions)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		includePoints := c.Query("include_points") == "true"
		sess, err := svc.Get(c.Context(), c.Params("id"), includePoints)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(sess)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			RuckWeightKg float64 `json:"ruck_weight_kg"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		sess, err := svc.UpdateWeight(c.Context(), c.Params("id"), req.RuckWeightKg)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(sess)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return respondErr(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		target, ok := ParseStatus(req.Status)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown status")
		}
		sess, err := svc.SetStatus(c.Context(), c.Params("id"), target)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(sess)
	})

	r.Post("/:id/statistics", authMiddleware, func(c *fiber.Ctx) error {
		var req LocationPoint
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		metrics, err := svc.AddPoint(c.Context(), c.Params("id"), req)
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(metrics)
	})

	r.Get("/:id/points", func(c *fiber.Ctx) error {
		points, err := svc.Points(c.Context(), c.Params("id"))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(points)
	})

	r.Get("/:id/review", func(c *fiber.Ctx) error {
		review, err := svc.Review(c.Context(), c.Params("id"))
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(review)
	})

	r.Post("/:id/review", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Rating int    `json:"rating"`
			Notes  string `json:"notes"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		review, err := svc.UpsertReview(c.Context(), c.Params("id"), req.Rating, req.Notes)
		if err != nil {
			return respondErr(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(review)
	})
}

// respondErr maps service errors onto HTTP statuses: field validation to
// 400 with a structured error list, missing entities to 404, state-machine
// refusals to 409, everything else to 500.
func respondErr(c *fiber.Ctx, err error) error {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrs})
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrReviewNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotActive):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
