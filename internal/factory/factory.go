package factory

import (
	"errors"
	"log/slog"

	"github.com/garence/whackamole/internal/dependencies/clock"
	"github.com/garence/whackamole/internal/dependencies/random"
	"github.com/garence/whackamole/internal/dependencies/timer"
	"github.com/garence/whackamole/internal/services/auth"
	"github.com/garence/whackamole/internal/services/game"
	"github.com/garence/whackamole/internal/services/leaderboard"
	"github.com/garence/whackamole/internal/storage"
	"github.com/garence/whackamole/internal/storage/memory"
	redisstorage "github.com/garence/whackamole/internal/storage/redis"
	"github.com/garence/whackamole/internal/testutil"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler timer.Scheduler

	// Services
	AuthService        *auth.Service
	GameManager        *game.Manager
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds round timing settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = testutil.NopLogger()
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.RoundDuration == 0 {
		gameCfg = game.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), timer.New(), authCfg, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched timer.Scheduler,
	authCfg auth.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, authCfg, logger)
	gameManager := game.NewManager(store, clk, rnd, sched, gameCfg, logger)
	leaderboardService := leaderboard.New(store)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		Scheduler:          sched,
		AuthService:        authService,
		GameManager:        gameManager,
		LeaderboardService: leaderboardService,
	}
}
