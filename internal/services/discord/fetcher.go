package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hexhaus/chainladders/internal/models"
)

// UserFetcher resolves an access token into the current user
type UserFetcher interface {
	FetchUser(ctx context.Context, accessToken string) (*models.DiscordUser, error)
}

// apiFetcher calls Discord's "current user" endpoint with a bearer token
type apiFetcher struct{}

func (apiFetcher) FetchUser(ctx context.Context, accessToken string) (*models.DiscordUser, error) {
	session, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	user, err := session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}

	return &models.DiscordUser{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		Avatar:        user.Avatar,
		Email:         user.Email,
	}, nil
}
