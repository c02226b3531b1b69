package transfers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/flite-pay/flite/internal/banks"
)

// Handler exposes wallet and transfer HTTP endpoints.
type Handler struct {
	wallet *Wallet
	banks  banks.Repository
}

// NewHandler builds the wallet HTTP handler. The bank repository may be nil,
// in which case bank identifiers are accepted unchecked.
func NewHandler(wallet *Wallet, bankRepo banks.Repository) *Handler {
	return &Handler{wallet: wallet, banks: bankRepo}
}

type bankTransferRequest struct {
	Amount decimal.Decimal `json:"amount"`
	BankID string          `json:"bank_id"`
}

type p2pRequest struct {
	RecipientID string          `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
}

type bankTransferResponse struct {
	ID         string          `json:"id"`
	Reference  string          `json:"reference"`
	OwnerID    string          `json:"owner_id"`
	BankID     string          `json:"bank_id"`
	Type       TransactionType `json:"transaction_type"`
	Status     Status          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

type p2pResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	SenderID    string          `json:"sender_id"`
	RecipientID string          `json:"recipient_id"`
	Status      Status          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Balance returns the authenticated user's derived balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	balance, err := h.wallet.Balance(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":   userID,
		"balance":   balance,
		"timestamp": time.Now().UTC(),
	})
}

// Deposit records a bank deposit into the authenticated user's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	userID, req, err := h.parseBankRequest(c)
	if err != nil {
		return err
	}
	deposit, err := h.wallet.ReceiveBankDeposit(c.UserContext(), userID, req.Amount, req.BankID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toBankResponse(deposit))
}

// Withdraw records a withdrawal toward an external bank. Insufficient funds
// surface as a created record with failed status, not an HTTP error.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	userID, req, err := h.parseBankRequest(c)
	if err != nil {
		return err
	}
	withdrawal, err := h.wallet.WithdrawToBank(c.UserContext(), userID, req.Amount, req.BankID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toBankResponse(withdrawal))
}

// P2P moves funds from the authenticated user to another user.
func (h *Handler) P2P(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req p2pRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.RecipientID == "" {
		return fiber.NewError(http.StatusBadRequest, "recipient_id is required")
	}
	if req.RecipientID == userID {
		return fiber.NewError(http.StatusBadRequest, "cannot transfer to yourself")
	}
	if req.Amount.IsNegative() {
		return fiber.NewError(http.StatusBadRequest, "amount must not be negative")
	}
	transfer, err := h.wallet.Transfer(c.UserContext(), userID, req.RecipientID, req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(p2pResponse{
		ID:          transfer.ID,
		Reference:   transfer.Reference,
		SenderID:    transfer.SenderID,
		RecipientID: transfer.RecipientID,
		Status:      transfer.Status,
		Amount:      transfer.Amount,
		NewBalance:  transfer.NewBalance,
		CreatedAt:   transfer.CreatedAt,
	})
}

func (h *Handler) parseBankRequest(c *fiber.Ctx) (string, bankTransferRequest, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return "", bankTransferRequest{}, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	var req bankTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return "", bankTransferRequest{}, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Amount.IsNegative() {
		return "", bankTransferRequest{}, fiber.NewError(http.StatusBadRequest, "amount must not be negative")
	}
	if req.BankID == "" {
		return "", bankTransferRequest{}, fiber.NewError(http.StatusBadRequest, "bank_id is required")
	}
	if h.banks != nil {
		if _, err := h.banks.Get(c.UserContext(), req.BankID); err != nil {
			return "", bankTransferRequest{}, fiber.NewError(http.StatusNotFound, "bank not found")
		}
	}
	return userID, req, nil
}

func toBankResponse(t BankTransfer) bankTransferResponse {
	return bankTransferResponse{
		ID:         t.ID,
		Reference:  t.Reference,
		OwnerID:    t.OwnerID,
		BankID:     t.BankID,
		Type:       t.Type,
		Status:     t.Status,
		Amount:     t.Amount,
		NewBalance: t.NewBalance,
		CreatedAt:  t.CreatedAt,
	}
}
