package auth

import (
	"context"
	"testing"
	"time"

	"github.com/flite-pay/flite/internal/config"
	"github.com/flite-pay/flite/internal/identity"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "test-secret",
		RefreshSecret:   "test-refresh",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func TestLoginAndRefresh(t *testing.T) {
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	svc := NewService(testConfig(), repo)

	ctx := context.Background()
	user, err := ids.Register(ctx, identity.Credentials{Phone: "+2348020000001", PIN: "1234"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Login(user)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := ParseAndVerifyHS256(pair.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}

	access, expiresIn, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" || expiresIn <= 0 {
		t.Fatalf("unexpected refresh result: %q %d", access, expiresIn)
	}
}

func TestRefreshRejectsTamperedToken(t *testing.T) {
	repo := identity.NewMemoryRepository()
	svc := NewService(testConfig(), repo)

	if _, _, err := svc.Refresh(context.Background(), "not.a.token"); err == nil {
		t.Fatal("expected invalid token error")
	}

	signed, err := SignHS256(map[string]any{"sub": "u1"}, []byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), signed); err == nil {
		t.Fatal("expected signature mismatch")
	}
}
