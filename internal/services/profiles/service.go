package profiles

import (
	"context"
	"errors"
	"math/big"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/common/clock"
	"github.com/hexhaus/chainladders/internal/common/uuid"
	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/registry"
	"github.com/hexhaus/chainladders/internal/services/discord"
)

// Service keeps the registry in step with wallet connections, Discord
// logins and game outcomes. It tracks which profile is the active one
// for this session; identity events fold into that profile instead of
// creating parallel entries.
type Service struct {
	registry registry.Registry
	clock    clock.Clock
	uuid     uuid.UUID
	logger   *zap.Logger

	mu         sync.Mutex
	activeID   string
	lastWallet string
}

// New creates a new profile controller
func New(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUID
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		registry: cfg.Registry,
		clock:    cfg.Clock,
		uuid:     cfg.UUID,
		logger:   logger,
	}, nil
}

// ConnectWallet activates the profile for a wallet address, creating a
// placeholder identity when the wallet has not been seen before
func (s *Service) ConnectWallet(ctx context.Context, address string) (*models.Profile, error) {
	if address == "" {
		return nil, ErrNoWallet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.registry.GetProfileByWallet(ctx, &registry.GetProfileByWalletInput{
		WalletAddress: address,
	})
	if err == nil {
		out, updateErr := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
			ProfileID: existing.ID,
			Update:    &registry.ProfileUpdate{IsOnline: boolPtr(true)},
		})
		if updateErr != nil {
			return nil, updateErr
		}

		s.activeID = existing.ID
		s.lastWallet = address
		return out.Profile, nil
	}
	if !errors.Is(err, registry.ErrProfileNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	profile := &models.Profile{
		ID:            "wallet-" + address,
		WalletAddress: address,
		Username:      "Player " + shortAddress(address),
		Avatar:        identiconBase + "?seed=" + url.QueryEscape(address),
		IsOnline:      true,
		TotalEarnings: "0",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.registry.AddProfile(ctx, &registry.AddProfileInput{Profile: profile}); err != nil {
		return nil, err
	}

	s.logger.Info("created wallet profile",
		zap.String("profile_id", profile.ID),
		zap.String("wallet", address))

	s.activeID = profile.ID
	s.lastWallet = address
	return profile, nil
}

// LoginDiscord folds a Discord identity into the session. If a profile
// is already active (a wallet connected first), the identity merges into
// it in place; otherwise an earlier profile for the same Discord account
// is resumed, or a new one is created.
func (s *Service) LoginDiscord(ctx context.Context, user *models.DiscordUser) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := user.Username + "#" + user.Discriminator
	avatar := discord.AvatarURL(user, avatarSize)

	if s.activeID != "" {
		out, err := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
			ProfileID: s.activeID,
			Update: &registry.ProfileUpdate{
				DiscordID: &user.ID,
				Username:  &username,
				Avatar:    &avatar,
				IsOnline:  boolPtr(true),
			},
		})
		if err != nil {
			return nil, err
		}
		if out.Found {
			return out.Profile, nil
		}
		s.activeID = ""
	}

	existing, err := s.registry.GetProfileByDiscord(ctx, &registry.GetProfileByDiscordInput{
		DiscordID: user.ID,
	})
	if err == nil {
		update := &registry.ProfileUpdate{
			Username: &username,
			Avatar:   &avatar,
			IsOnline: boolPtr(true),
		}
		if s.lastWallet != "" && existing.WalletAddress == "" {
			wallet := s.lastWallet
			update.WalletAddress = &wallet
		}

		out, updateErr := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
			ProfileID: existing.ID,
			Update:    update,
		})
		if updateErr != nil {
			return nil, updateErr
		}

		s.activeID = existing.ID
		return out.Profile, nil
	}
	if !errors.Is(err, registry.ErrProfileNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	profile := &models.Profile{
		ID:            "discord-" + user.ID,
		WalletAddress: s.lastWallet,
		DiscordID:     user.ID,
		Username:      username,
		Avatar:        avatar,
		IsOnline:      true,
		TotalEarnings: "0",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.registry.AddProfile(ctx, &registry.AddProfileInput{Profile: profile}); err != nil {
		return nil, err
	}

	s.logger.Info("created discord profile",
		zap.String("profile_id", profile.ID),
		zap.String("discord_id", user.ID))

	s.activeID = profile.ID
	return profile, nil
}

// LoginGuest signs in a locally generated demo identity, the fallback
// when the OAuth flow fails
func (s *Service) LoginGuest(ctx context.Context) (*models.Profile, error) {
	return s.LoginDiscord(ctx, discord.GuestUser(s.clock.Now()))
}

// ObserveGame folds a game state change into the active profile. A fresh
// game gets a session token; a win settles the stats exactly once, keyed
// on that token.
func (s *Service) ObserveGame(ctx context.Context, state models.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == "" {
		return nil
	}

	profile, err := s.registry.GetProfile(ctx, &registry.GetProfileInput{ProfileID: s.activeID})
	if err != nil {
		if errors.Is(err, registry.ErrProfileNotFound) {
			return nil
		}
		return err
	}

	switch {
	case state.CurrentPosition == winningPosition && profile.CurrentGame != "":
		played := profile.GamesPlayed + 1
		won := profile.GamesWon + 1
		earnings := addEther(profile.TotalEarnings, state.PrizePool)

		_, err := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
			ProfileID: profile.ID,
			Update: &registry.ProfileUpdate{
				GamesPlayed:      &played,
				GamesWon:         &won,
				TotalEarnings:    &earnings,
				ClearCurrentGame: true,
			},
		})
		if err != nil {
			return err
		}

		s.logger.Info("recorded game win",
			zap.String("profile_id", profile.ID),
			zap.String("prize", state.PrizePool))
		return nil

	case state.GameInProgress && profile.CurrentGame == "":
		token := s.uuid.NewUUID()
		_, err := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
			ProfileID: profile.ID,
			Update:    &registry.ProfileUpdate{CurrentGame: &token},
		})
		return err
	}

	return nil
}

// SetOnline flips the presence flag on the active profile
func (s *Service) SetOnline(ctx context.Context, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == "" {
		return nil
	}

	_, err := s.registry.UpdateProfile(ctx, &registry.UpdateProfileInput{
		ProfileID: s.activeID,
		Update:    &registry.ProfileUpdate{IsOnline: &online},
	})
	return err
}

// ListOnline returns the profiles currently marked online
func (s *Service) ListOnline(ctx context.Context) ([]*models.Profile, error) {
	out, err := s.registry.ListOnline(ctx)
	if err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// ListInGame returns the profiles currently holding a game session token
func (s *Service) ListInGame(ctx context.Context) ([]*models.Profile, error) {
	out, err := s.registry.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	inGame := make([]*models.Profile, 0)
	for _, p := range out.Profiles {
		if p.CurrentGame != "" {
			inGame = append(inGame, p)
		}
	}
	return inGame, nil
}

// Active returns the profile for the current session
func (s *Service) Active(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	id := s.activeID
	s.mu.Unlock()

	if id == "" {
		return nil, registry.ErrProfileNotFound
	}

	return s.registry.GetProfile(ctx, &registry.GetProfileInput{ProfileID: id})
}

func shortAddress(address string) string {
	if len(address) <= 6 {
		return address
	}
	return address[:6]
}

// addEther sums two decimal ether amounts without losing precision
func addEther(total, prize string) string {
	sum := new(big.Rat)
	for _, part := range []string{total, prize} {
		if part == "" {
			continue
		}
		r, ok := new(big.Rat).SetString(part)
		if !ok {
			continue
		}
		sum.Add(sum, r)
	}

	out := strings.TrimRight(sum.FloatString(18), "0")
	out = strings.TrimRight(out, ".")
	if out == "" {
		out = "0"
	}
	return out
}

func boolPtr(b bool) *bool {
	return &b
}
