package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/common/uuid"
	"github.com/hexhaus/chainladders/internal/models"
)

// Define errors
var (
	ErrNilConfig        = errors.New("config cannot be nil")
	ErrMissingClientID  = errors.New("client ID cannot be empty")
	ErrMissingRedirect  = errors.New("redirect URI cannot be empty")
	ErrMissingProxyURL  = errors.New("proxy URL cannot be empty")
	ErrNilUUIDGenerator = errors.New("UUID generator cannot be nil")
	ErrExchangeFailed   = errors.New("failed to exchange code for token")
)

// Service runs the client half of the OAuth exchange: it builds the
// authorization URL, trades the issued code for a token through the
// server-side proxy, and resolves the token into a Discord identity.
// Every step honors context cancellation, so an abandoned login
// terminates instead of hanging the caller.
type Service struct {
	clientID     string
	redirectURI  string
	proxyURL     string
	authorizeURL string
	httpClient   *http.Client
	fetcher      UserFetcher
	uuid         uuid.UUID
	logger       *zap.Logger
}

// New creates a new identity exchange service
func New(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}

	if cfg.RedirectURI == "" {
		return nil, ErrMissingRedirect
	}

	if cfg.ProxyURL == "" {
		return nil, ErrMissingProxyURL
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	authorizeURL := cfg.AuthorizeURL
	if authorizeURL == "" {
		authorizeURL = defaultAuthorizeURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = apiFetcher{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		clientID:     cfg.ClientID,
		redirectURI:  cfg.RedirectURI,
		proxyURL:     cfg.ProxyURL,
		authorizeURL: authorizeURL,
		httpClient:   httpClient,
		fetcher:      fetcher,
		uuid:         cfg.UUID,
		logger:       logger,
	}, nil
}

// AuthURL builds the authorization URL with a fresh anti-forgery state
// token and returns both
func (s *Service) AuthURL() (string, string) {
	state := s.uuid.NewUUID()

	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", defaultScope)
	params.Set("state", state)

	return s.authorizeURL + "?" + params.Encode(), state
}

// ExchangeCode trades an authorization code for an access token via the
// server-side proxy
func (s *Service) ExchangeCode(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return "", fmt.Errorf("failed to encode exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.proxyURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); decodeErr != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("failed to decode exchange response: %w", decodeErr)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error", payload.Error))
		if payload.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrExchangeFailed, payload.Error)
		}
		return "", fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode)
	}

	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrExchangeFailed)
	}

	return payload.AccessToken, nil
}

// FetchUser resolves an access token into the current Discord user
func (s *Service) FetchUser(ctx context.Context, accessToken string) (*models.DiscordUser, error) {
	return s.fetcher.FetchUser(ctx, accessToken)
}

// Login runs the full exchange for an authorization code. Any failure
// resolves to an error terminal state; callers apply their own fallback
// rather than block.
func (s *Service) Login(ctx context.Context, code string) (*models.DiscordUser, error) {
	token, err := s.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.fetcher.FetchUser(ctx, token)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AvatarURL derives the avatar image URL for a Discord user. Accounts
// without a custom avatar get one of Discord's stock images, selected
// by discriminator.
func AvatarURL(user *models.DiscordUser, size int) string {
	if user.Avatar == "" {
		n, err := strconv.Atoi(user.Discriminator)
		if err != nil {
			n = 0
		}
		return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBase, n%defaultAvatarCount)
	}

	return fmt.Sprintf("%s/avatars/%s/%s.png?size=%d", cdnBase, user.ID, user.Avatar, size)
}

// GuestUser synthesizes a local demo identity, used as the fallback when
// the OAuth flow fails
func GuestUser(now time.Time) *models.DiscordUser {
	return &models.DiscordUser{
		ID:            fmt.Sprintf("demo-%d", now.UnixMilli()),
		Username:      "DemoPlayer",
		Discriminator: "0001",
		Avatar:        "",
		Email:         "demo@example.com",
	}
}
