package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hexhaus/chainladders/internal/chain"
	"github.com/hexhaus/chainladders/internal/common/clock"
	"github.com/hexhaus/chainladders/internal/common/uuid"
	"github.com/hexhaus/chainladders/internal/config"
	"github.com/hexhaus/chainladders/internal/handlers/httpapi"
	"github.com/hexhaus/chainladders/internal/models"
	"github.com/hexhaus/chainladders/internal/registry"
	"github.com/hexhaus/chainladders/internal/services/discord"
	gameService "github.com/hexhaus/chainladders/internal/services/game"
	"github.com/hexhaus/chainladders/internal/services/profiles"
	"github.com/hexhaus/chainladders/internal/wallet"
)

func main() {
	// Load .env if present; deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.EthPrivateKey == "" {
		log.Fatal("ETH_PRIVATE_KEY environment variable is required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.EthPrivateKey, "0x"))
	if err != nil {
		log.Fatalf("Failed to parse ETH_PRIVATE_KEY: %v", err)
	}
	account := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sepolia := wallet.SepoliaChain
	sepolia.RPCURL = cfg.EthRPCURL

	provider, err := chain.NewRPCProvider(&chain.ProviderConfig{
		Accounts: []string{account},
		Chains:   []wallet.ChainParams{sepolia},
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create RPC provider: %v", err)
	}

	manager, err := wallet.New(&wallet.Config{
		Provider: provider,
		Chain:    sepolia,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create wallet manager: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	go manager.Run(ctx)

	client, err := provider.Client(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.EthRPCURL, err)
	}

	chainID, err := hexutil.DecodeBig(wallet.SepoliaChainID)
	if err != nil {
		log.Fatalf("Failed to parse chain id: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	contract, err := chain.NewBoundGame(&chain.GameConfig{
		Client:     client,
		Address:    common.HexToAddress(cfg.ContractAddress),
		PrivateKey: key,
		ChainID:    chainID,
		Confirm:    confirmPrompt(scanner),
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to bind game contract: %v", err)
	}

	stake, err := parseStake(cfg.StakeETH)
	if err != nil {
		log.Fatalf("Failed to parse STAKE_ETH: %v", err)
	}

	adapter, err := gameService.New(&gameService.Config{
		Contract: contract,
		Account:  account,
		Stake:    stake,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create game adapter: %v", err)
	}

	appClock := &clock.DefaultClock{}

	reg, err := registry.NewMemory(&registry.Config{
		Clock:  appClock,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create profile registry: %v", err)
	}

	profileSvc, err := profiles.New(&profiles.Config{
		Registry: reg,
		Clock:    appClock,
		UUID:     uuid.New(),
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to create profile controller: %v", err)
	}

	// Game outcomes fold into the active profile as they happen.
	adapter.Subscribe(func(state models.GameState) {
		if obsErr := profileSvc.ObserveGame(context.Background(), state); obsErr != nil {
			logger.Warn("failed to record game state", zap.Error(obsErr))
		}
	})

	relay := discord.NewRelay(cfg.PublicOrigin, logger)
	discordSvc := setupDiscord(cfg, relay, logger)

	fmt.Println("Crypto Snakes & Ladders")
	fmt.Printf("Playing as %s on Sepolia, stake %s ETH\n", account, cfg.StakeETH)
	fmt.Println("Commands: connect, start, roll, reset, state, login, guest, players, quit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		switch cmd := strings.TrimSpace(scanner.Text()); cmd {
		case "":

		case "connect":
			session, connectErr := manager.Connect(ctx)
			if connectErr != nil {
				fmt.Println("Connect failed:", connectErr)
				continue
			}
			fmt.Printf("Connected %s (correct network: %v)\n", session.Account, session.IsCorrectNetwork)
			if _, profileErr := profileSvc.ConnectWallet(ctx, session.Account); profileErr != nil {
				fmt.Println("Failed to activate profile:", profileErr)
			}
			if _, refreshErr := adapter.Refresh(ctx); refreshErr != nil {
				fmt.Println("Failed to load game state:", refreshErr)
			}
			printState(adapter.State())

		case "start":
			if startErr := adapter.Start(ctx); startErr != nil {
				fmt.Println("Start failed:", startErr)
			}
			printState(adapter.State())

		case "roll":
			if _, rollErr := adapter.RollDice(ctx); rollErr != nil {
				fmt.Println("Roll failed:", rollErr)
			}
			printState(adapter.State())

		case "reset":
			if resetErr := adapter.Reset(ctx); resetErr != nil {
				fmt.Println("Reset failed:", resetErr)
			}
			printState(adapter.State())

		case "state":
			if _, refreshErr := adapter.Refresh(ctx); refreshErr != nil {
				fmt.Println("Refresh failed:", refreshErr)
			}
			printState(adapter.State())

		case "login":
			runLogin(ctx, discordSvc, relay, profileSvc)

		case "guest":
			profile, guestErr := profileSvc.LoginGuest(ctx)
			if guestErr != nil {
				fmt.Println("Guest login failed:", guestErr)
				continue
			}
			fmt.Printf("Signed in as %s\n", profile.Username)

		case "players":
			listed, listErr := reg.ListProfiles(ctx)
			if listErr != nil {
				fmt.Println("Failed to list players:", listErr)
				continue
			}
			for _, p := range listed.Profiles {
				presence := "offline"
				if p.IsOnline {
					presence = "online"
				}
				fmt.Printf("  %s  %s  played %d  won %d  earnings %s ETH\n",
					p.Username, presence, p.GamesPlayed, p.GamesWon, p.TotalEarnings)
			}

		case "quit", "exit":
			_ = profileSvc.SetOnline(ctx, false)
			fmt.Println("Bye")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// setupDiscord starts the OAuth proxy and builds the identity service.
// Without credentials the login command is disabled and only guest
// sign-in works.
func setupDiscord(cfg *config.Config, relay *discord.Relay, logger *zap.Logger) *discord.Service {
	if err := cfg.ValidateDiscord(); err != nil {
		logger.Info("discord login disabled", zap.Error(err))
		return nil
	}

	handler, err := httpapi.New(&httpapi.Config{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		Relay:        relay,
		Logger:       logger,
	})
	if err != nil {
		logger.Warn("failed to create OAuth proxy", zap.Error(err))
		return nil
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: engine}
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("OAuth proxy failed", zap.Error(serveErr))
		}
	}()

	svc, err := discord.New(&discord.Config{
		ClientID:    cfg.DiscordClientID,
		RedirectURI: cfg.PublicOrigin + "/auth/discord/callback",
		ProxyURL:    cfg.PublicOrigin + "/api/discord/exchange-token",
		UUID:        uuid.New(),
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("failed to create discord service", zap.Error(err))
		return nil
	}

	return svc
}

// runLogin walks the browser OAuth flow and falls back to a local demo
// identity when it fails
func runLogin(ctx context.Context, svc *discord.Service, relay *discord.Relay, profileSvc *profiles.Service) {
	if svc == nil {
		fmt.Println("Discord login is not configured; use the guest command")
		return
	}

	authURL, state := svc.AuthURL()
	relay.Register(state)

	fmt.Println("Open this URL in a browser to sign in:")
	fmt.Println("  " + authURL)

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var user *models.DiscordUser
	code, err := relay.Await(waitCtx, state)
	if err == nil {
		user, err = svc.Login(ctx, code)
	}

	if err != nil {
		fmt.Println("Login failed, continuing as guest:", err)
		profile, guestErr := profileSvc.LoginGuest(ctx)
		if guestErr != nil {
			fmt.Println("Guest login failed:", guestErr)
			return
		}
		fmt.Printf("Signed in as %s\n", profile.Username)
		return
	}

	profile, err := profileSvc.LoginDiscord(ctx, user)
	if err != nil {
		fmt.Println("Failed to activate profile:", err)
		return
	}
	fmt.Printf("Signed in as %s\n", profile.Username)
}

// confirmPrompt asks on stdin before every transaction, mirroring a
// wallet's confirm dialog
func confirmPrompt(scanner *bufio.Scanner) chain.ConfirmFunc {
	return func(_ context.Context, method string, value *big.Int) error {
		if value != nil && value.Sign() > 0 {
			fmt.Printf("Confirm %s sending %s wei? [y/N] ", method, value)
		} else {
			fmt.Printf("Confirm %s? [y/N] ", method)
		}

		if !scanner.Scan() {
			return gameService.ErrUserRejected
		}

		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			return gameService.ErrUserRejected
		}
		return nil
	}
}

func printState(state models.GameState) {
	fmt.Printf("  position %d, in progress %v, prize pool %s ETH\n",
		state.CurrentPosition, state.GameInProgress, state.PrizePool)
	if state.LastDiceRoll > 0 {
		fmt.Printf("  last roll: %d\n", state.LastDiceRoll)
	}
	if state.Message != "" {
		fmt.Println("  " + state.Message)
	}
}

// parseStake converts a decimal ether amount into wei
func parseStake(eth string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(eth)
	if !ok {
		return nil, fmt.Errorf("invalid stake amount: %q", eth)
	}

	wei := new(big.Rat).Mul(r, new(big.Rat).SetInt(big.NewInt(1e18)))
	if !wei.IsInt() {
		return nil, fmt.Errorf("stake has sub-wei precision: %q", eth)
	}

	return new(big.Int).Set(wei.Num()), nil
}
