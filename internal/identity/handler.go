package identity

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes user registration and profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an identity HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PIN          string `json:"pin"`
	ReferralCode string `json:"referral_code"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	ReferralCode  string    `json:"referral_code"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// Register creates a user account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Register(c.UserContext(), Credentials{
		Phone:        req.Phone,
		Email:        req.Email,
		PIN:          req.PIN,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toUserResponse(user))
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	user, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	return c.Status(http.StatusOK).JSON(toUserResponse(user))
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:            u.ID,
		Phone:         u.Phone,
		Email:         u.Email,
		ReferralCode:  u.ReferralCode,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
	}
}
