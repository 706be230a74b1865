package table

import (
	"context"
	"log/slog"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/dependencies/random"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

const pinDigits = "0123456789"

// Service manages dining tables and their PINs
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new table Service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "tables")),
	}
}

// Create adds a table. An empty pin means "generate one"; a provided pin
// must be exactly four digits.
func (s *Service) Create(ctx context.Context, label, pin string) (*model.Table, error) {
	if pin == "" {
		pin = s.random.String(model.PINLength, pinDigits)
	}
	if !model.ValidPIN(pin) {
		return nil, model.ErrInvalidPIN
	}

	id, err := s.storage.NextID(ctx, storage.SeqTable)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	table := &model.Table{
		ID:         model.TableID(id),
		Label:      label,
		PIN:        pin,
		PINVersion: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table created", slog.Int64("table_id", id))
	return table, nil
}

// Get returns one table
func (s *Service) Get(ctx context.Context, id model.TableID) (*model.Table, error) {
	return s.storage.GetTable(ctx, id)
}

// List returns all tables ordered by id
func (s *Service) List(ctx context.Context) ([]*model.Table, error) {
	return s.storage.ListTables(ctx)
}

// UpdateLabel renames a table
func (s *Service) UpdateLabel(ctx context.Context, id model.TableID, label string) (*model.Table, error) {
	table, err := s.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	table.Label = label
	table.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Delete removes a table. Outstanding customer sessions for it die on
// their next request, since the version lookup now fails.
func (s *Service) Delete(ctx context.Context, id model.TableID) error {
	if err := s.storage.DeleteTable(ctx, id); err != nil {
		return err
	}
	s.logger.Info("table deleted", slog.Int64("table_id", int64(id)))
	return nil
}

// SetPIN stores a manager-chosen PIN and returns the new PIN version.
// The bump is atomic at the storage layer, so concurrent changes cannot
// hand out the same version twice.
func (s *Service) SetPIN(ctx context.Context, id model.TableID, pin string) (int64, error) {
	if !model.ValidPIN(pin) {
		return 0, model.ErrInvalidPIN
	}

	version, err := s.storage.BumpTablePIN(ctx, id, pin)
	if err != nil {
		return 0, err
	}

	s.logger.Info("table pin set",
		slog.Int64("table_id", int64(id)),
		slog.Int64("pin_version", version))
	return version, nil
}

// RandomizePIN generates a fresh four-digit PIN (zero-padded) and returns
// it with the new PIN version
func (s *Service) RandomizePIN(ctx context.Context, id model.TableID) (string, int64, error) {
	pin := s.random.String(model.PINLength, pinDigits)

	version, err := s.storage.BumpTablePIN(ctx, id, pin)
	if err != nil {
		return "", 0, err
	}

	s.logger.Info("table pin randomized",
		slog.Int64("table_id", int64(id)),
		slog.Int64("pin_version", version))
	return pin, version, nil
}
