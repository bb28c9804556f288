package csrf

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef-test"

func TestIssueThenVerify(t *testing.T) {
	tokens, err := New(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	token, err := tokens.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if err := tokens.Verify(token); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
}

func TestVerifyRejects(t *testing.T) {
	tokens, err := New(testSecret, time.Minute)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	other, err := New("a-completely-different-secret", time.Minute)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	foreign, err := other.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	expired, err := tokens.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"other secret": foreign,
		"alg none":     none,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if err := tokens.Verify(token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}

	t.Run("expired", func(t *testing.T) {
		tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { tokens.now = time.Now }()
		if err := tokens.Verify(expired); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestNewRejectsShortSecret(t *testing.T) {
	if _, err := New("short", time.Minute); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret, got %v", err)
	}
}
