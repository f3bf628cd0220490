package discord_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	uuidmock "github.com/hexhaus/chainladders/internal/common/uuid/mocks"
	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/services/discord"
)

type stubFetcher struct {
	gotToken string
	user     *models.DiscordUser
	err      error
}

func (s *stubFetcher) FetchUser(_ context.Context, accessToken string) (*models.DiscordUser, error) {
	s.gotToken = accessToken
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type ServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockUUID *uuidmock.MockUUID
	fetcher  *stubFetcher
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUUID = uuidmock.NewMockUUID(s.ctrl)
	s.fetcher = &stubFetcher{
		user: &models.DiscordUser{
			ID:            "42",
			Username:      "Ann",
			Discriminator: "0001",
		},
	}
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceTestSuite) newService(proxyURL string) *discord.Service {
	svc, err := discord.New(&discord.Config{
		ClientID:    "client-123",
		RedirectURI: "http://localhost:8080/auth/discord/callback",
		ProxyURL:    proxyURL,
		Fetcher:     s.fetcher,
		UUID:        s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *ServiceTestSuite) TestNewValidation() {
	_, err := discord.New(nil)
	s.Assert().ErrorIs(err, discord.ErrNilConfig)

	_, err = discord.New(&discord.Config{RedirectURI: "x", ProxyURL: "y", UUID: s.mockUUID})
	s.Assert().ErrorIs(err, discord.ErrMissingClientID)

	_, err = discord.New(&discord.Config{ClientID: "x", ProxyURL: "y", UUID: s.mockUUID})
	s.Assert().ErrorIs(err, discord.ErrMissingRedirect)

	_, err = discord.New(&discord.Config{ClientID: "x", RedirectURI: "y", UUID: s.mockUUID})
	s.Assert().ErrorIs(err, discord.ErrMissingProxyURL)

	_, err = discord.New(&discord.Config{ClientID: "x", RedirectURI: "y", ProxyURL: "z"})
	s.Assert().ErrorIs(err, discord.ErrNilUUIDGenerator)
}

func (s *ServiceTestSuite) TestAuthURL() {
	s.mockUUID.EXPECT().NewUUID().Return("state-token-1")

	svc := s.newService("http://proxy.test/exchange")

	authURL, state := svc.AuthURL()
	s.Assert().Equal("state-token-1", state)

	parsed, err := url.Parse(authURL)
	s.Require().NoError(err)
	s.Assert().Equal("discord.com", parsed.Host)

	q := parsed.Query()
	s.Assert().Equal("client-123", q.Get("client_id"))
	s.Assert().Equal("http://localhost:8080/auth/discord/callback", q.Get("redirect_uri"))
	s.Assert().Equal("code", q.Get("response_type"))
	s.Assert().Equal("identify email", q.Get("scope"))
	s.Assert().Equal("state-token-1", q.Get("state"))
}

func (s *ServiceTestSuite) TestExchangeCodeSuccess() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Assert().Equal(http.MethodPost, r.Method)
		s.Assert().Equal("application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-abc"}`))
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	token, err := svc.ExchangeCode(context.Background(), "code-1")
	s.Require().NoError(err)
	s.Assert().Equal("tok-abc", token)
}

func (s *ServiceTestSuite) TestExchangeCodeUpstreamError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Failed to exchange code for token"}`))
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	_, err := svc.ExchangeCode(context.Background(), "bad-code")
	s.Assert().ErrorIs(err, discord.ErrExchangeFailed)
	s.Assert().Contains(err.Error(), "Failed to exchange code for token")
}

func (s *ServiceTestSuite) TestExchangeCodeEmptyToken() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	_, err := svc.ExchangeCode(context.Background(), "code-1")
	s.Assert().ErrorIs(err, discord.ErrExchangeFailed)
}

func (s *ServiceTestSuite) TestExchangeCodeContextCancelled() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExchangeCode(ctx, "code-1")
	s.Assert().Error(err)
}

func (s *ServiceTestSuite) TestLogin() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok-login"}`))
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	user, err := svc.Login(context.Background(), "code-1")
	s.Require().NoError(err)
	s.Assert().Equal("tok-login", s.fetcher.gotToken)
	s.Assert().Equal("Ann", user.Username)
}

func (s *ServiceTestSuite) TestLoginExchangeFailureSkipsFetch() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer server.Close()

	svc := s.newService(server.URL)

	_, err := svc.Login(context.Background(), "code-1")
	s.Assert().ErrorIs(err, discord.ErrExchangeFailed)
	s.Assert().Empty(s.fetcher.gotToken)
}

func TestAvatarURL(t *testing.T) {
	custom := &models.DiscordUser{ID: "42", Avatar: "abc123", Discriminator: "0001"}
	got := discord.AvatarURL(custom, 128)
	if got != "https://cdn.discordapp.com/avatars/42/abc123.png?size=128" {
		t.Fatalf("unexpected custom avatar URL: %s", got)
	}

	stock := &models.DiscordUser{ID: "42", Discriminator: "0007"}
	got = discord.AvatarURL(stock, 128)
	if got != "https://cdn.discordapp.com/embed/avatars/2.png" {
		t.Fatalf("unexpected stock avatar URL: %s", got)
	}
}

func TestGuestUser(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	user := discord.GuestUser(now)
	if user.ID != "demo-1700000000000" {
		t.Fatalf("unexpected guest id: %s", user.ID)
	}
	if user.Username != "DemoPlayer" || user.Discriminator != "0001" {
		t.Fatalf("unexpected guest identity: %+v", user)
	}
}
