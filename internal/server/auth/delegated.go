package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linkarchive/internal/common"
	"linkarchive/internal/logging"
	"linkarchive/internal/server/models"
	"linkarchive/internal/server/repositories/users"
)

// DelegatedProvider forwards credential checks and token validation to an
// external authentication service over HTTP. The local user store is only a
// cache of identities the authority has vouched for: the first time a name
// is seen, a credential-less local row is created for it.
type DelegatedProvider struct {
	client  *http.Client
	baseURL string
	ttl     time.Duration
	users   users.Repository
	logger  logging.Logger
}

func NewDelegatedProvider(baseURL string, ttl time.Duration, users users.Repository, logger logging.Logger) *DelegatedProvider {
	if ttl <= 0 {
		ttl = DefaultDelegatedTTL
	}
	return &DelegatedProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		ttl:     ttl,
		users:   users,
		logger:  logger,
	}
}

type delegatedLoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

type delegatedLoginResponse struct {
	Token string `json:"token"`
}

type delegatedValidateRequest struct {
	Token string `json:"token"`
}

type delegatedValidateResponse struct {
	Username string `json:"username"`
}

func (p *DelegatedProvider) Login(ctx context.Context, username, password string) (string, error) {
	req := delegatedLoginRequest{
		Username:   username,
		Password:   password,
		TTLSeconds: int64(p.ttl.Seconds()),
	}

	var res delegatedLoginResponse
	if err := p.post(ctx, "/login", req, &res); err != nil {
		// Network trouble and rejected credentials look the same to the
		// client; the distinction stays in the log.
		p.logger.Warn(ctx, "delegated login failed", "username", username, "cause", err)
		return "", common.ErrFailedLogin
	}

	return res.Token, nil
}

func (p *DelegatedProvider) Validate(ctx context.Context, token string) (*models.User, error) {
	var res delegatedValidateResponse
	if err := p.post(ctx, "/validate", delegatedValidateRequest{Token: token}, &res); err != nil {
		p.logger.Debug(ctx, "delegated token rejected", "cause", err)
		return nil, common.ErrFailedLogin
	}
	if res.Username == "" {
		return nil, common.ErrFailedLogin
	}

	return p.users.UpsertByName(ctx, res.Username)
}

func (p *DelegatedProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("auth service status " + resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
