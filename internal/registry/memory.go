package registry

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/common/clock"
	"github.com/hexhaus/chainladders/internal/models"
)

// ErrProfileNotFound is returned when a profile is not found
var ErrProfileNotFound = errors.New("profile not found")

// Config holds configuration for the in-memory registry
type Config struct {
	// Clock used to stamp profile updates
	Clock clock.Clock

	// Optional logger
	Logger *zap.Logger
}

// memoryRegistry implements the Registry interface with a process-local map.
// Profiles vanish when the process exits; there is no persistence layer.
type memoryRegistry struct {
	clock  clock.Clock
	logger *zap.Logger

	mu        sync.Mutex
	profiles  map[string]*models.Profile
	subs      map[int]Subscriber
	nextSubID int
}

// NewMemory creates a new in-memory registry
func NewMemory(cfg *Config) (*memoryRegistry, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &memoryRegistry{
		clock:    cfg.Clock,
		logger:   logger,
		profiles: make(map[string]*models.Profile),
		subs:     make(map[int]Subscriber),
	}, nil
}

// AddProfile stores a profile under its ID
func (r *memoryRegistry) AddProfile(ctx context.Context, input *AddProfileInput) error {
	if input == nil || input.Profile == nil {
		return errors.New("input and profile cannot be nil")
	}

	if input.Profile.ID == "" {
		return errors.New("profile ID cannot be empty")
	}

	r.mu.Lock()
	p := input.Profile.Clone()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.clock.Now()
	}
	p.UpdatedAt = r.clock.Now()
	r.profiles[p.ID] = p
	subs, snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(subs, snapshot)
	return nil
}

// UpdateProfile applies a partial update to an existing profile. An
// unknown ID leaves the registry untouched and reports Found=false.
func (r *memoryRegistry) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input == nil || input.ProfileID == "" {
		return nil, errors.New("input and profile ID cannot be empty")
	}

	if input.Update == nil {
		return nil, errors.New("update cannot be nil")
	}

	r.mu.Lock()
	p, ok := r.profiles[input.ProfileID]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("update for unknown profile ignored",
			zap.String("profile_id", input.ProfileID))
		return &UpdateProfileOutput{Found: false}, nil
	}

	applyUpdate(p, input.Update)
	p.UpdatedAt = r.clock.Now()
	result := p.Clone()
	subs, snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.notify(subs, snapshot)
	return &UpdateProfileOutput{Found: true, Profile: result}, nil
}

// GetProfile retrieves a profile by ID
func (r *memoryRegistry) GetProfile(ctx context.Context, input *GetProfileInput) (*models.Profile, error) {
	if input == nil || input.ProfileID == "" {
		return nil, errors.New("input and profile ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[input.ProfileID]
	if !ok {
		return nil, ErrProfileNotFound
	}

	return p.Clone(), nil
}

// GetProfileByWallet retrieves the profile linked to a wallet address
func (r *memoryRegistry) GetProfileByWallet(ctx context.Context, input *GetProfileByWalletInput) (*models.Profile, error) {
	if input == nil || input.WalletAddress == "" {
		return nil, errors.New("input and wallet address cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.WalletAddress == input.WalletAddress {
			return p.Clone(), nil
		}
	}

	return nil, ErrProfileNotFound
}

// GetProfileByDiscord retrieves the profile linked to a Discord ID
func (r *memoryRegistry) GetProfileByDiscord(ctx context.Context, input *GetProfileByDiscordInput) (*models.Profile, error) {
	if input == nil || input.DiscordID == "" {
		return nil, errors.New("input and discord ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.DiscordID == input.DiscordID {
			return p.Clone(), nil
		}
	}

	return nil, ErrProfileNotFound
}

// ListProfiles returns all profiles
func (r *memoryRegistry) ListProfiles(ctx context.Context) (*ListProfilesOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &ListProfilesOutput{Profiles: r.listLocked()}, nil
}

// ListOnline returns the profiles currently marked online
func (r *memoryRegistry) ListOnline(ctx context.Context) (*ListProfilesOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	online := make([]*models.Profile, 0)
	for _, p := range r.listLocked() {
		if p.IsOnline {
			online = append(online, p)
		}
	}

	return &ListProfilesOutput{Profiles: online}, nil
}

// Subscribe registers a callback invoked with the full profile list after
// every mutation
func (r *memoryRegistry) Subscribe(fn Subscriber) func() {
	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// listLocked returns cloned profiles in a stable order. Callers must hold mu.
func (r *memoryRegistry) listLocked() []*models.Profile {
	profiles := make([]*models.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p.Clone())
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles
}

// snapshotLocked captures the current subscribers and profile list so the
// notification can run outside the lock. Callers must hold mu.
func (r *memoryRegistry) snapshotLocked() ([]Subscriber, []*models.Profile) {
	subs := make([]Subscriber, 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	return subs, r.listLocked()
}

// notify calls each subscriber with the snapshot. A panicking subscriber
// must not prevent the others from being notified.
func (r *memoryRegistry) notify(subs []Subscriber, profiles []*models.Profile) {
	for _, fn := range subs {
		r.notifyOne(fn, profiles)
	}
}

func (r *memoryRegistry) notifyOne(fn Subscriber, profiles []*models.Profile) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("registry subscriber panicked", zap.Any("panic", rec))
		}
	}()
	fn(profiles)
}

// applyUpdate folds a patch into a profile
func applyUpdate(p *models.Profile, u *ProfileUpdate) {
	if u.WalletAddress != nil {
		p.WalletAddress = *u.WalletAddress
	}
	if u.DiscordID != nil {
		p.DiscordID = *u.DiscordID
	}
	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.IsOnline != nil {
		p.IsOnline = *u.IsOnline
	}
	if u.CurrentGame != nil {
		p.CurrentGame = *u.CurrentGame
	}
	if u.ClearCurrentGame {
		p.CurrentGame = ""
	}
	if u.GamesPlayed != nil {
		p.GamesPlayed = *u.GamesPlayed
	}
	if u.GamesWon != nil {
		p.GamesWon = *u.GamesWon
	}
	if u.TotalEarnings != nil {
		p.TotalEarnings = *u.TotalEarnings
	}
}
