// Package common defines shared sentinel errors and error kinds used across
// the service layers. Callers should use errors.Is for sentinels and
// errors.As for the typed kinds.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors. Every credential, token, or identity failure is
	// collapsed into ErrFailedLogin before it reaches a client.
	ErrFailedLogin = errors.New("failed login")

	// Authorization error: the caller is known but does not own the target.
	ErrUnauthorized = errors.New("unauthorized")

	// Token lifecycle errors. These never leave the server as-is; callers map
	// them to ErrFailedLogin.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrIssuerMismatch = errors.New("issuer mismatch")

	// ErrDurationOverflow reports a token lifetime that does not fit the
	// representable timestamp range.
	ErrDurationOverflow = errors.New("token duration too big")

	// ErrBadCredentialHash reports a stored password hash that cannot be
	// decoded. Hashes written by this service never trigger it.
	ErrBadCredentialHash = errors.New("malformed credential hash")
)

// InvalidURLError reports a line of a link import that is not a valid URL.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: %s", e.URL)
}

// DuplicateURLError reports an insert of a URL the user already stores.
// Bulk imports treat it as a no-op so one duplicate does not abort the rest.
type DuplicateURLError struct {
	URL string
}

func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("duplicate url: %s", e.URL)
}

// DuplicateNameError reports an insert of an already taken username.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name: %s", e.Name)
}
