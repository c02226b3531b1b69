package cards

import "time"

// Card is a bank card linked to a user's wallet. Deletion is soft: the row
// stays for audit with is_active cleared and is_deleted set.
type Card struct {
	ID          string
	OwnerID     string
	Number      string
	Brand       string
	Bank        string
	ExpiryMonth string
	ExpiryYear  string
	FirstName   string
	LastName    string
	IsActive    bool
	IsDeleted   bool
	CreatedAt   time.Time
}

// Masked returns the card number with all but the last four digits hidden.
func (c Card) Masked() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	masked := make([]byte, len(c.Number))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], c.Number[len(c.Number)-4:])
	return string(masked)
}
