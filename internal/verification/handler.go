package verification

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes phone verification endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a verification HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Request issues a verification code for the authenticated user's phone.
// The code is not echoed back; delivery is the SMS connector's job.
func (h *Handler) Request(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	if _, err := h.service.RequestCode(c.UserContext(), userID); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "code_sent"})
}

type confirmRequest struct {
	Code string `json:"code"`
}

// Confirm validates the submitted code and marks the phone verified.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Confirm(c.UserContext(), userID, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrCodeMismatch):
			return fiber.NewError(http.StatusBadRequest, "code mismatch")
		case errors.Is(err, ErrCodeExpired):
			return fiber.NewError(http.StatusGone, "code expired")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "verified"})
}
