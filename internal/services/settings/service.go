package settings

import (
	"context"
	"log/slog"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Service manages the restaurant-wide settings record
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new settings Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "settings")),
	}
}

// Get returns the current settings, falling back to defaults when
// nothing has been stored yet
func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	return s.storage.GetSettings(ctx)
}

// Update is the set of settings fields a manager may change. Nil
// fields are left untouched.
type Update struct {
	RestaurantName *string
	Currency       *string
	OrderingOpen   *bool
}

// Apply merges an update into the stored settings
func (s *Service) Apply(ctx context.Context, update Update) (*model.Settings, error) {
	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if update.RestaurantName != nil {
		settings.RestaurantName = *update.RestaurantName
	}
	if update.Currency != nil {
		settings.Currency = *update.Currency
	}
	if update.OrderingOpen != nil {
		settings.OrderingOpen = *update.OrderingOpen
	}
	settings.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("settings updated", slog.Bool("ordering_open", settings.OrderingOpen))
	return settings, nil
}
