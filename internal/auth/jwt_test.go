package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "qna")

	tok, err := m.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	uid, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "user-42" {
		t.Fatalf("subject = %q, want user-42", uid)
	}
}

func TestNewManager_DefaultTTL(t *testing.T) {
	if got := NewManager("s", 0, "").TTL(); got != 24*time.Hour {
		t.Fatalf("default TTL = %v, want 24h", got)
	}
	if got := NewManager("s", time.Minute, "").TTL(); got != time.Minute {
		t.Fatalf("TTL = %v, want 1m", got)
	}
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour, "qna")

	// Garbage.
	if _, err := m.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage: %v", err)
	}

	// Signed with a different secret.
	other := NewManager("other-secret", time.Hour, "qna")
	tok, err := other.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}

	// Expired.
	past := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	signed, err := past.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: %v", err)
	}

	// Missing subject.
	empty := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err = empty.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("no subject: %v", err)
	}

	// Wrong algorithm ("none" is never acceptable).
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"})
	signed, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg none: %v", err)
	}
}
