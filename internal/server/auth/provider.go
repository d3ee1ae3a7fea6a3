package auth

import (
	"context"
	"time"

	"linkarchive/internal/server/models"
)

// Default session lifetimes per provider.
const (
	DefaultEmbeddedTTL  = 30 * 24 * time.Hour
	DefaultDelegatedTTL = 7 * 24 * time.Hour
)

// Provider is the pluggable identity authority. Login exchanges credentials
// for a session token; Validate turns a presented token back into the user
// it names. Which implementation runs is a deployment choice made once at
// startup, never a branch in the handlers.
//
// Implementations collapse every authentication failure, bad credentials,
// malformed or expired tokens, unresolvable subjects, vanished users, into
// common.ErrFailedLogin so a client can never tell them apart. Causes are
// still logged server-side.
type Provider interface {
	Login(ctx context.Context, username, password string) (string, error)
	Validate(ctx context.Context, token string) (*models.User, error)
}
