package cards

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotOwner indicates the caller does not own the card.
var ErrNotOwner = errors.New("cards: not the card owner")

// Service manages linked cards.
type Service struct {
	repo Repository
}

// NewService creates the card service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LinkInput carries the data needed to link a card.
type LinkInput struct {
	OwnerID     string
	Number      string
	Brand       string
	Bank        string
	ExpiryMonth string
	ExpiryYear  string
	FirstName   string
	LastName    string
}

// Link validates and stores a new card for the owner.
func (s *Service) Link(ctx context.Context, input LinkInput) (Card, error) {
	if err := validateNumber(input.Number); err != nil {
		return Card{}, err
	}
	card := Card{
		ID:          uuid.NewString(),
		OwnerID:     input.OwnerID,
		Number:      strings.ReplaceAll(input.Number, " ", ""),
		Brand:       input.Brand,
		Bank:        input.Bank,
		ExpiryMonth: input.ExpiryMonth,
		ExpiryYear:  input.ExpiryYear,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, card); err != nil {
		return Card{}, err
	}
	return card, nil
}

// List returns the owner's active cards.
func (s *Service) List(ctx context.Context, ownerID string) ([]Card, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Remove soft deletes a card after checking ownership.
func (s *Service) Remove(ctx context.Context, ownerID, cardID string) error {
	card, err := s.repo.Get(ctx, cardID)
	if err != nil {
		return err
	}
	if card.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.repo.SoftDelete(ctx, cardID)
}

func validateNumber(number string) error {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 12 || len(digits) > 19 {
		return errors.New("card number must be between 12 and 19 digits")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return errors.New("card number must be numeric")
		}
	}
	return nil
}
