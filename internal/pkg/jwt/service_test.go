package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "dina@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("unexpected user id")
	}
	if claims.Email != "dina@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestHMACService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	access, err := svc.GenerateAccessToken(uuid.New(), "dina@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RejectsExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateAccessToken(uuid.New(), "dina@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_RejectsTamperedSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("another-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "dina@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
