package identity

import (
	"context"
	"testing"

	"github.com/flite-pay/flite/internal/reference"
)

func TestRegisterIssuesReferralCode(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, Credentials{Phone: "+2348020000001", Email: "a@flite.co", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(user.ReferralCode) != reference.CodeLength {
		t.Fatalf("expected %d-char referral code, got %q", reference.CodeLength, user.ReferralCode)
	}

	second, err := svc.Register(ctx, Credentials{Phone: "+2348020000002", PIN: "5678"})
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if second.ReferralCode == user.ReferralCode {
		t.Fatal("referral codes must be unique")
	}
}

func TestRegisterWithReferralCode(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	referrer, err := svc.Register(ctx, Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register referrer: %v", err)
	}

	if _, err := svc.Register(ctx, Credentials{Phone: "+2348020000002", PIN: "1234", ReferralCode: referrer.ReferralCode}); err != nil {
		t.Fatalf("register with referral: %v", err)
	}

	if _, err := svc.Register(ctx, Credentials{Phone: "+2348020000003", PIN: "1234", ReferralCode: "deadbeef"}); err == nil {
		t.Fatal("expected invalid referral code error")
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	authed, err := svc.Authenticate(ctx, Credentials{Phone: user.Phone, PIN: "1234"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Phone: user.Phone, PIN: "9999"}); err == nil {
		t.Fatal("expected invalid PIN error")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Phone: "+2348020000001", PIN: "1234"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, Credentials{Phone: "+2348020000001", PIN: "1234"}); err == nil {
		t.Fatal("expected duplicate phone error")
	}
}
