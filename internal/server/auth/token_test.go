package auth

import (
	"errors"
	"testing"
	"time"

	"linkarchive/internal/common"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	spec := ClaimSpec{
		Issuer:   "archive",
		Audience: "archive",
		Subject:  "42",
		Version:  3,
	}

	tok, err := IssueToken(spec, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := ValidateToken(tok, secret, "archive")
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "42")
	}
	if claims.Version != 3 {
		t.Fatalf("version mismatch: got %d want %d", claims.Version, 3)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != "archive" {
		t.Fatalf("audience mismatch: got %v", claims.Audience)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", claims.ExpiresAt)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(ClaimSpec{Issuer: "archive", Audience: "archive", Subject: "1"}, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = ValidateToken(tok, secret, "archive")
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(ClaimSpec{Issuer: "archive", Audience: "archive", Subject: "1"}, []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = ValidateToken(tok, []byte("wrong"), "archive")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_IssuerMismatch(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(ClaimSpec{Issuer: "somewhere-else", Audience: "archive", Subject: "1"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = ValidateToken(tok, secret, "archive")
	if !errors.Is(err, common.ErrIssuerMismatch) {
		t.Fatalf("expected ErrIssuerMismatch, got %v", err)
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken(ClaimSpec{Issuer: "archive", Audience: "archive", Subject: "1"}, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Flip one byte in the middle of the token.
	raw := []byte(tok)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	if _, err := ValidateToken(string(raw), secret, "archive"); err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.token", []byte("k"), "archive")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueToken_VeryLongTTLStaysInFuture(t *testing.T) {
	t.Parallel()

	// The maximum time.Duration (~292 years) still fits the timestamp
	// range, so it must issue cleanly rather than wrap into the past.
	secret := []byte("secret")
	tok, err := IssueToken(ClaimSpec{Issuer: "archive", Audience: "archive", Subject: "1"}, secret, time.Duration(1<<63-1))
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	claims, err := ValidateToken(tok, secret, "archive")
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry wrapped into the past: %v", claims.ExpiresAt)
	}
}
