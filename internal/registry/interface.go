package registry

import (
	"context"

	"github.com/hexhaus/chainladders/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_registry.go github.com/hexhaus/chainladders/internal/registry Registry

// Subscriber receives the full profile list after every mutation.
type Subscriber func(profiles []*models.Profile)

// Registry defines the interface for the session-local profile directory
type Registry interface {
	// AddProfile stores a profile under its ID
	AddProfile(ctx context.Context, input *AddProfileInput) error

	// UpdateProfile applies a partial update to an existing profile.
	// An unknown ID is not an error; the output reports whether the
	// profile was found.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error)

	// GetProfile retrieves a profile by ID
	GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error)

	// GetProfileByWallet retrieves the profile linked to a wallet address
	GetProfileByWallet(ctx context.Context, input *GetProfileByWalletInput) (*models.Profile, error)

	// GetProfileByDiscord retrieves the profile linked to a Discord ID
	GetProfileByDiscord(ctx context.Context, input *GetProfileByDiscordInput) (*models.Profile, error)

	// ListProfiles returns all profiles
	ListProfiles(ctx context.Context) (*ListProfilesOutput, error)

	// ListOnline returns the profiles currently marked online
	ListOnline(ctx context.Context) (*ListProfilesOutput, error)

	// Subscribe registers a callback invoked with the full profile list
	// after every mutation. The returned function removes the subscription.
	Subscribe(fn Subscriber) (unsubscribe func())
}
