package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flite-pay/flite/internal/cards"
)

// RegisterCardRoutes wires card management endpoints.
func RegisterCardRoutes(r fiber.Router, h *cards.Handler) {
	r.Post("/cards", h.Link)
	r.Get("/cards", h.List)
	r.Delete("/cards/:cardId", h.Remove)
}
