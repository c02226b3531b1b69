package identity

import "time"

// User represents a registered wallet owner.
type User struct {
	ID            string
	Phone         string
	Email         string
	PINHash       []byte
	ReferralCode  string
	PhoneVerified bool
	CreatedAt     time.Time
}

// Credentials carry a login or registration request.
type Credentials struct {
	Phone        string
	Email        string
	PIN          string
	ReferralCode string
}

// Referral records that one user signed up with another user's code.
type Referral struct {
	ID         string
	OwnerID    string
	ReferredID string
	CreatedAt  time.Time
}
