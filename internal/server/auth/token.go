package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"linkarchive/internal/common"
)

// Claims is the assertion carried inside a session token: the standard
// issuer/audience/subject/validity set plus the user's token version at
// issue time.
type Claims struct {
	Version uint32 `json:"version"`
	jwt.RegisteredClaims
}

// ClaimSpec is the caller-supplied part of a claim; issue time and expiry
// are stamped by IssueToken.
type ClaimSpec struct {
	Issuer   string
	Audience string
	Subject  string
	Version  uint32
}

// IssueToken signs spec with an HS256 HMAC over secret and the validity
// window [now, now+ttl]. A ttl that pushes the expiry past the representable
// time range fails with common.ErrDurationOverflow instead of wrapping.
func IssueToken(spec ClaimSpec, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	exp := now.Add(ttl)
	if ttl > 0 && exp.Before(now) {
		return "", common.ErrDurationOverflow
	}

	claims := Claims{
		Version: spec.Version,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    spec.Issuer,
			Audience:  jwt.ClaimStrings{spec.Audience},
			Subject:   spec.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken checks the signature against secret, the expiry against the
// clock, and the issuer against issuer, in that order of sentinel precision:
// common.ErrTokenExpired, common.ErrIssuerMismatch, or common.ErrInvalidToken
// for everything else. On success it returns the embedded claims.
func ValidateToken(token string, secret []byte, issuer string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, common.ErrIssuerMismatch
		default:
			return nil, common.ErrInvalidToken
		}
	}

	return claims, nil
}
