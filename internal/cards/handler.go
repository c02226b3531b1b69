package cards

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes card management endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a card HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type linkRequest struct {
	Number      string `json:"number"`
	Brand       string `json:"brand"`
	Bank        string `json:"bank"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type cardResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	Brand       string    `json:"brand"`
	Bank        string    `json:"bank"`
	ExpiryMonth string    `json:"expiry_month"`
	ExpiryYear  string    `json:"expiry_year"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Link stores a card for the authenticated user.
func (h *Handler) Link(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req linkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	card, err := h.service.Link(c.UserContext(), LinkInput{
		OwnerID:     userID,
		Number:      req.Number,
		Brand:       req.Brand,
		Bank:        req.Bank,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toCardResponse(card))
}

// List returns the authenticated user's active cards.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	listed, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]cardResponse, 0, len(listed))
	for _, card := range listed {
		out = append(out, toCardResponse(card))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"cards": out})
}

// Remove soft deletes one of the authenticated user's cards.
func (h *Handler) Remove(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	err := h.service.Remove(c.UserContext(), userID, c.Params("cardId"))
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "deleted"})
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "card not found")
	case errors.Is(err, ErrNotOwner):
		return fiber.NewError(http.StatusForbidden, "not the card owner")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

func toCardResponse(card Card) cardResponse {
	return cardResponse{
		ID:          card.ID,
		Number:      card.Masked(),
		Brand:       card.Brand,
		Bank:        card.Bank,
		ExpiryMonth: card.ExpiryMonth,
		ExpiryYear:  card.ExpiryYear,
		IsActive:    card.IsActive,
		CreatedAt:   card.CreatedAt,
	}
}
