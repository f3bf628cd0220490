package profiles

import (
	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/common/clock"
	"github.com/hexhaus/chainladders/internal/common/uuid"
	"github.com/hexhaus/chainladders/internal/registry"
)

const (
	// avatarSize is the pixel size requested for Discord avatars
	avatarSize = 128

	// identiconBase generates deterministic placeholder avatars for
	// wallet-only profiles
	identiconBase = "https://api.dicebear.com/7.x/identicon/svg"

	// winningPosition is the board square that ends a game
	winningPosition = 100
)

// Config holds configuration for the profile controller
type Config struct {
	Registry registry.Registry
	Clock    clock.Clock
	UUID     uuid.UUID

	// Optional logger
	Logger *zap.Logger
}
