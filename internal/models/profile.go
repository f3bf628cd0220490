package models

import (
	"time"
)

// Profile represents one player known to the local session.
type Profile struct {
	// ID is the stable identifier for the profile, derived as
	// "wallet-<address>" or "discord-<discordId>". It is never reassigned.
	ID string `json:"id"`

	// WalletAddress is the linked wallet account, if any
	WalletAddress string `json:"walletAddress,omitempty"`

	// DiscordID is the linked Discord identity, if any
	DiscordID string `json:"discordId,omitempty"`

	// Username is the display name of the player
	Username string `json:"username"`

	// Avatar is the URL of the player's avatar image
	Avatar string `json:"avatar"`

	// IsOnline indicates whether the player is active in this session
	IsOnline bool `json:"isOnline"`

	// CurrentGame is the session token of the game the player is in,
	// empty when no game is active
	CurrentGame string `json:"currentGame,omitempty"`

	// GamesPlayed is the number of games the player has finished
	GamesPlayed int `json:"gamesPlayed"`

	// GamesWon is the number of games the player has won
	GamesWon int `json:"gamesWon"`

	// TotalEarnings is the accumulated prize total as a decimal ETH string
	TotalEarnings string `json:"totalEarnings"`

	// CreatedAt is when the profile was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the profile was last updated
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a copy of the profile so callers can hand snapshots to
// subscribers without sharing mutable state.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
