package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/tablekit/tablekit/internal/config"
	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/dependencies/random"
	"github.com/tablekit/tablekit/internal/services/auth"
	"github.com/tablekit/tablekit/internal/services/menu"
	"github.com/tablekit/tablekit/internal/services/order"
	"github.com/tablekit/tablekit/internal/services/settings"
	"github.com/tablekit/tablekit/internal/services/table"
	"github.com/tablekit/tablekit/internal/sse"
	"github.com/tablekit/tablekit/internal/storage"
	"github.com/tablekit/tablekit/internal/storage/memory"
	redisstorage "github.com/tablekit/tablekit/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Auth
	TokenCodec *auth.TokenCodec
	Resolver   *auth.Resolver

	// Services
	AuthService     *auth.Service
	TableService    *table.Service
	MenuService     *menu.Service
	OrderService    *order.Service
	SettingsService *settings.Service

	// Event stream
	Hub *sse.Hub
}

// New creates a new application with all dependencies wired.
// The hub's event loop is not started; callers run App.Hub.Run.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	switch cfg.Storage.Type {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageRedis:
		redisStore, err := redisstorage.New(cfg.Storage.Redis)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid storage type: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, sessionConfig{
		secret:   cfg.Session.Secret,
		tokenTTL: cfg.Session.TokenTTL,
		sse: sse.Config{
			HeartbeatInterval: cfg.SSE.HeartbeatInterval,
			SendBufferSize:    cfg.SSE.SendBufferSize,
		},
	}, logger), nil
}

type sessionConfig struct {
	secret   string
	tokenTTL time.Duration
	sse      sse.Config
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, sc sessionConfig, logger *slog.Logger) *App {
	codec := auth.NewTokenCodec(sc.secret, sc.tokenTTL, clk)
	resolver := auth.NewResolver(codec, store, logger)

	authService := auth.New(store, clk, logger)
	tableService := table.New(store, clk, rnd, logger)
	menuService := menu.New(store, clk, logger)
	orderService := order.New(store, clk, logger)
	settingsService := settings.New(store, clk, logger)
	hub := sse.NewHub(sc.sse, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		TokenCodec:      codec,
		Resolver:        resolver,
		AuthService:     authService,
		TableService:    tableService,
		MenuService:     menuService,
		OrderService:    orderService,
		SettingsService: settingsService,
		Hub:             hub,
	}
}
