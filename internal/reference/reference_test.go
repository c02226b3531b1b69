package reference

import (
	"context"
	"errors"
	"testing"
)

func TestGenerateReturnsFixedLengthCode(t *testing.T) {
	code, err := Generate(context.Background(), func(_ context.Context, _ string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected %d characters, got %q", CodeLength, code)
	}
	for _, r := range code {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("expected lowercase hex, got %q", code)
		}
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	calls := 0
	code, err := Generate(context.Background(), func(_ context.Context, _ string) (bool, error) {
		calls++
		// Force exactly one collision before yielding a free code.
		return calls == 1, nil
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 existence checks, got %d", calls)
	}
	if code == "" {
		t.Fatal("expected a code after retry")
	}
}

func TestGenerateExhaustsAttempts(t *testing.T) {
	if _, err := Generate(context.Background(), func(_ context.Context, _ string) (bool, error) {
		return true, nil
	}); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestGeneratePropagatesStoreError(t *testing.T) {
	boom := errors.New("store down")
	if _, err := Generate(context.Background(), func(_ context.Context, _ string) (bool, error) {
		return false, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestGenerateDistinctCodesInSequence(t *testing.T) {
	seen := map[string]bool{}
	exists := func(_ context.Context, code string) (bool, error) {
		return seen[code], nil
	}
	for i := 0; i < 100; i++ {
		code, err := Generate(context.Background(), exists)
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}
