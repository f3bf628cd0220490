package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/services/discord"
)

const (
	// defaultTokenURL is Discord's OAuth token endpoint
	defaultTokenURL = "https://discord.com/api/oauth2/token"

	// callbackPath is where Discord redirects the user after consent
	callbackPath = "/auth/discord/callback"
)

// Define errors
var (
	ErrNilConfig       = errors.New("config cannot be nil")
	ErrMissingClientID = errors.New("client ID cannot be empty")
	ErrMissingSecret   = errors.New("client secret cannot be empty")
	ErrNilRelay        = errors.New("relay cannot be nil")
)

// closePage is served to the popup once its result has been relayed, so
// it can close itself instead of leaving a dangling window.
const closePage = `<!DOCTYPE html>
<html>
<head><title>Login complete</title></head>
<body>
<p>You can close this window.</p>
<script>window.close();</script>
</body>
</html>`

// Config holds configuration for the HTTP API
type Config struct {
	// ClientID is the public OAuth application id
	ClientID string

	// ClientSecret authenticates the token exchange with Discord. It is
	// only ever sent server-to-server; no route echoes it back.
	ClientSecret string

	// TokenURL overrides the token endpoint, for tests
	TokenURL string

	// Relay hands callback results to waiting logins
	Relay *discord.Relay

	// HTTPClient used for the upstream exchange. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Optional logger
	Logger *zap.Logger
}

// Handler serves the OAuth proxy routes: the token exchange that keeps
// the client secret off the client, and the redirect target that relays
// authorization results back to the waiting login.
type Handler struct {
	clientID     string
	clientSecret string
	tokenURL     string
	relay        *discord.Relay
	httpClient   *http.Client
	logger       *zap.Logger
}

// New creates a new HTTP API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}

	if cfg.ClientSecret == "" {
		return nil, ErrMissingSecret
	}

	if cfg.Relay == nil {
		return nil, ErrNilRelay
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     tokenURL,
		relay:        cfg.Relay,
		httpClient:   httpClient,
		logger:       logger,
	}, nil
}

// Register wires the handler's routes into a gin engine
func (h *Handler) Register(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	r.Use(cors)

	r.POST("/api/discord/exchange-token", h.exchangeToken)
	r.OPTIONS("/api/discord/exchange-token", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET(callbackPath, h.callback)
}

func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Next()
}

// exchangeToken trades an authorization code for an access token with
// Discord. The client secret never leaves this hop.
func (h *Handler) exchangeToken(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code is required"})
		return
	}

	form := url.Values{}
	form.Set("client_id", h.clientID)
	form.Set("client_secret", h.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", req.Code)
	form.Set("redirect_uri", redirectURI(c.Request.Host))

	upstream, err := http.NewRequestWithContext(c.Request.Context(),
		http.MethodPost, h.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		h.logger.Error("failed to build token request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	upstream.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.httpClient.Do(upstream)
	if err != nil {
		h.logger.Error("token exchange request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer resp.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil && resp.StatusCode == http.StatusOK {
		h.logger.Error("failed to decode token response", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || payload.AccessToken == "" {
		h.logger.Warn("discord rejected token exchange", zap.Int("status", resp.StatusCode))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange code for token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": payload.AccessToken})
}

// callback is the OAuth redirect target. It relays the outcome to the
// login that opened the authorization URL and tells the window to close.
func (h *Handler) callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	authErr := c.Query("error")

	origin := requestOrigin(c.Request.Host)

	var result discord.Result
	switch {
	case authErr != "":
		result = discord.Result{Origin: origin, Type: discord.ResultTypeError, Err: authErr}
	case code == "":
		result = discord.Result{Origin: origin, Type: discord.ResultTypeError, Err: "No code received"}
	default:
		result = discord.Result{Origin: origin, Type: discord.ResultTypeSuccess, Code: code}
	}

	if h.relay.Deliver(state, result) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(closePage))
		return
	}

	// Nothing was waiting for this result; send the user home.
	c.Redirect(http.StatusFound, "/")
}

func requestOrigin(host string) string {
	scheme := "https"
	if strings.Contains(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		scheme = "http"
	}
	return scheme + "://" + host
}

func redirectURI(host string) string {
	return requestOrigin(host) + callbackPath
}
