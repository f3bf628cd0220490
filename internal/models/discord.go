package models

// DiscordUser is the identity returned by Discord's "current user" endpoint.
type DiscordUser struct {
	// ID is the Discord user ID
	ID string `json:"id"`

	// Username is the Discord username
	Username string `json:"username"`

	// Discriminator is the legacy four digit tag
	Discriminator string `json:"discriminator"`

	// Avatar is the avatar asset hash, empty when the user has no
	// custom avatar
	Avatar string `json:"avatar"`

	// Email is the account email when the scope allows it
	Email string `json:"email,omitempty"`
}
