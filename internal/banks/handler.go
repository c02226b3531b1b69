package banks

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes bank directory endpoints.
type Handler struct {
	repo Repository
}

// NewHandler builds a bank directory handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Create registers a bank in the directory.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name is required")
	}
	bank, err := h.repo.Create(c.UserContext(), Bank{Name: req.Name, Code: req.Code})
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":   bank.ID,
		"name": bank.Name,
		"code": bank.Code,
	})
}

// List returns the bank directory.
func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.repo.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"banks": out})
}

// Get returns a single bank.
func (h *Handler) Get(c *fiber.Ctx) error {
	bank, err := h.repo.Get(c.UserContext(), c.Params("bankId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "bank not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(bank)
}
