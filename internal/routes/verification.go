package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flite-pay/flite/internal/verification"
)

// RegisterVerificationRoutes wires phone verification endpoints.
func RegisterVerificationRoutes(r fiber.Router, h *verification.Handler) {
	group := r.Group("/verification")
	group.Post("/request", h.Request)
	group.Post("/confirm", h.Confirm)
}
