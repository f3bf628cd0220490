package discord

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/common/uuid"
)

const (
	// defaultAuthorizeURL is Discord's OAuth authorization endpoint
	defaultAuthorizeURL = "https://discord.com/api/oauth2/authorize"

	// defaultScope asks for the identity and email of the account
	defaultScope = "identify email"

	// cdnBase serves avatar assets
	cdnBase = "https://cdn.discordapp.com"

	// defaultAvatarCount is the number of stock avatars Discord rotates
	// through for accounts without a custom one
	defaultAvatarCount = 5
)

// Config holds configuration for the Discord identity exchange
type Config struct {
	// ClientID is the public OAuth application id
	ClientID string

	// RedirectURI is where Discord sends the user back with the code
	RedirectURI string

	// ProxyURL is the server-side token exchange endpoint. The client
	// credential lives behind it and never reaches this process.
	ProxyURL string

	// AuthorizeURL overrides the authorization endpoint, for tests
	AuthorizeURL string

	// HTTPClient used for the proxy call. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Fetcher resolves an access token into the current user. Defaults
	// to the Discord API.
	Fetcher UserFetcher

	// UUID generates anti-forgery state tokens
	UUID uuid.UUID

	// Optional logger
	Logger *zap.Logger
}
