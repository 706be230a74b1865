package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Service handles login checks for both credential tracks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// HashSecret returns the stored form of a staff password: hex SHA-256 of
// the plaintext. Unsalted and fast by compatibility with the existing
// credential store; see model.StaffSecret.
func HashSecret(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CustomerLogin checks a table PIN and returns customer claims bound to
// the table's current PIN version
func (s *Service) CustomerLogin(ctx context.Context, tableID model.TableID, pin string) (*CustomerClaims, error) {
	table, err := s.storage.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	if table.PIN != pin {
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info("customer login", slog.Int64("table_id", int64(tableID)))
	return &CustomerClaims{
		TableID:    table.ID,
		PINVersion: table.PINVersion,
	}, nil
}

// StaffLogin checks a staff password and returns staff claims.
// A missing secret row is a server configuration problem, not a bad
// credential, and is reported as such.
func (s *Service) StaffLogin(ctx context.Context, role model.Role, password string) (*StaffClaims, error) {
	if !model.ValidStaffRole(role) {
		return nil, model.ErrInvalidCredentials
	}

	secret, err := s.storage.GetStaffSecret(ctx, role)
	if err != nil {
		return nil, err
	}

	if secret.PasswordHash != HashSecret(password) {
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info("staff login", slog.String("role", string(role)))
	return &StaffClaims{Role: role}, nil
}

// SeedStaffSecrets writes secret rows for the given role passwords,
// typically from configuration at startup. Roles with empty passwords
// are skipped; their logins then fail with ErrSecretNotConfigured.
func (s *Service) SeedStaffSecrets(ctx context.Context, passwords map[model.Role]string) error {
	for role, password := range passwords {
		if password == "" || !model.ValidStaffRole(role) {
			continue
		}
		secret := &model.StaffSecret{
			Role:         role,
			PasswordHash: HashSecret(password),
			UpdatedAt:    s.clock.Now(),
		}
		if err := s.storage.SaveStaffSecret(ctx, secret); err != nil {
			return err
		}
	}
	return nil
}
