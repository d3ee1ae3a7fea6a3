package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"linkarchive/internal/common"
	"linkarchive/internal/logging"
	"linkarchive/internal/server/models"
	"linkarchive/internal/server/repositories/users"
)

// EmbeddedProvider signs and validates session tokens locally with a
// symmetric secret. The configured server name serves as both issuer and
// audience; the token subject is the user id.
type EmbeddedProvider struct {
	secret     []byte
	serverName string
	ttl        time.Duration
	users      users.Repository
	logger     logging.Logger
}

func NewEmbeddedProvider(secret []byte, serverName string, ttl time.Duration, users users.Repository, logger logging.Logger) *EmbeddedProvider {
	if ttl <= 0 {
		ttl = DefaultEmbeddedTTL
	}
	return &EmbeddedProvider{
		secret:     secret,
		serverName: serverName,
		ttl:        ttl,
		users:      users,
		logger:     logger,
	}
}

func (p *EmbeddedProvider) Login(ctx context.Context, username, password string) (string, error) {
	user, err := p.users.GetByName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			p.logger.Debug(ctx, "login rejected: unknown user", "username", username)
			return "", common.ErrFailedLogin
		}
		return "", err
	}

	ok, err := VerifyPassword(ctx, user.Password, []byte(password))
	if err != nil {
		return "", err
	}
	if !ok {
		p.logger.Debug(ctx, "login rejected: wrong password", "username", username)
		return "", common.ErrFailedLogin
	}

	spec := ClaimSpec{
		Issuer:   p.serverName,
		Audience: p.serverName,
		Subject:  strconv.FormatUint(uint64(user.ID), 10),
		Version:  user.TokenVersion,
	}

	return IssueToken(spec, p.secret, p.ttl)
}

func (p *EmbeddedProvider) Validate(ctx context.Context, token string) (*models.User, error) {
	claims, err := ValidateToken(token, p.secret, p.serverName)
	if err != nil {
		p.logger.Debug(ctx, "token rejected", "cause", err)
		return nil, common.ErrFailedLogin
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		p.logger.Debug(ctx, "token rejected: non-numeric subject", "subject", claims.Subject)
		return nil, common.ErrFailedLogin
	}

	user, err := p.users.GetByID(ctx, uint32(id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// A valid token for a vanished user looks exactly like a bad
			// token to the client.
			p.logger.Debug(ctx, "token rejected: user gone", "user_id", id)
			return nil, common.ErrFailedLogin
		}
		return nil, err
	}

	return user, nil
}
