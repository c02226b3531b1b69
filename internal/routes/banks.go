package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flite-pay/flite/internal/banks"
)

// RegisterBankRoutes wires bank directory endpoints.
func RegisterBankRoutes(r fiber.Router, h *banks.Handler) {
	r.Post("/banks", h.Create)
	r.Get("/banks", h.List)
	r.Get("/banks/:bankId", h.Get)
}
