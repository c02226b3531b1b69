package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flite-pay/flite/internal/transfers"
)

// RegisterWalletRoutes wires wallet and transfer endpoints.
func RegisterWalletRoutes(r fiber.Router, h *transfers.Handler) {
	r.Get("/wallet/balance", h.Balance)
	r.Post("/wallet/deposits", h.Deposit)
	r.Post("/wallet/withdrawals", h.Withdraw)
	r.Post("/transfers", h.P2P)
}
