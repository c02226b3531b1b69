package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/flite-pay/flite/internal/identity"
)

func setupService(t *testing.T) (*Service, *identity.Service, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	svc := NewService(cache, repo, 10*time.Minute)

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return svc, ids, mr, cleanup
}

func TestRequestAndConfirmCode(t *testing.T) {
	svc, ids, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	user, err := ids.Register(ctx, identity.Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	code, err := svc.RequestCode(ctx, user.ID)
	if err != nil {
		t.Fatalf("request code: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	if err := svc.Confirm(ctx, user.ID, code); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	verified, err := ids.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !verified.PhoneVerified {
		t.Fatal("expected phone to be verified")
	}

	// Codes are single use.
	if err := svc.Confirm(ctx, user.ID, code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expired on reuse, got %v", err)
	}
}

func TestConfirmWrongCode(t *testing.T) {
	svc, ids, _, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	user, err := ids.Register(ctx, identity.Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.RequestCode(ctx, user.ID); err != nil {
		t.Fatalf("request code: %v", err)
	}
	if err := svc.Confirm(ctx, user.ID, "000000x"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestConfirmAfterExpiry(t *testing.T) {
	svc, ids, mr, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	user, err := ids.Register(ctx, identity.Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	code, err := svc.RequestCode(ctx, user.ID)
	if err != nil {
		t.Fatalf("request code: %v", err)
	}

	mr.FastForward(11 * time.Minute)

	if err := svc.Confirm(ctx, user.ID, code); !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}
