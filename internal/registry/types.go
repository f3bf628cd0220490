package registry

import "github.com/hexhaus/chainladders/internal/models"

// AddProfileInput contains parameters for storing a profile
type AddProfileInput struct {
	Profile *models.Profile
}

// ProfileUpdate is a partial patch for a profile. Nil fields are left
// unchanged. CurrentGame uses an explicit clear flag so the token can be
// removed without a sentinel value.
type ProfileUpdate struct {
	WalletAddress    *string
	DiscordID        *string
	Username         *string
	Avatar           *string
	IsOnline         *bool
	CurrentGame      *string
	ClearCurrentGame bool
	GamesPlayed      *int
	GamesWon         *int
	TotalEarnings    *string
}

// UpdateProfileInput contains parameters for patching a profile
type UpdateProfileInput struct {
	ProfileID string
	Update    *ProfileUpdate
}

// UpdateProfileOutput reports the result of a patch
type UpdateProfileOutput struct {
	// Found is false when no profile exists for the given ID. The
	// store never treats that as an error.
	Found bool

	// Profile is the post-update profile when found
	Profile *models.Profile
}

// GetProfileInput contains parameters for retrieving a profile by ID
type GetProfileInput struct {
	ProfileID string
}

// GetProfileByWalletInput contains parameters for the wallet lookup
type GetProfileByWalletInput struct {
	WalletAddress string
}

// GetProfileByDiscordInput contains parameters for the Discord lookup
type GetProfileByDiscordInput struct {
	DiscordID string
}

// ListProfilesOutput contains the result of a listing
type ListProfilesOutput struct {
	Profiles []*models.Profile
}
