package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tablekit/tablekit/internal/dependencies/mocks"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage/memory"
	"github.com/tablekit/tablekit/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveTable(id model.TableID, pin string, pinVersion int64) {
	err := s.storage.SaveTable(s.ctx, &model.Table{
		ID:         id,
		Label:      "Patio",
		PIN:        pin,
		PINVersion: pinVersion,
		CreatedAt:  s.clock.Now(),
		UpdatedAt:  s.clock.Now(),
	})
	s.Require().NoError(err)
}

// CustomerLogin tests

func (s *ServiceSuite) TestCustomerLoginSucceeds() {
	s.saveTable(1, "1234", 3)

	claims, err := s.service.CustomerLogin(s.ctx, 1, "1234")
	s.Require().NoError(err)
	s.Equal(model.TableID(1), claims.TableID)
	s.Equal(int64(3), claims.PINVersion)
}

func (s *ServiceSuite) TestCustomerLoginWrongPIN() {
	s.saveTable(1, "1234", 1)

	_, err := s.service.CustomerLogin(s.ctx, 1, "4321")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestCustomerLoginUnknownTable() {
	_, err := s.service.CustomerLogin(s.ctx, 99, "1234")
	s.ErrorIs(err, model.ErrTableNotFound)
}

// StaffLogin tests

func (s *ServiceSuite) TestStaffLoginSucceeds() {
	err := s.service.SeedStaffSecrets(s.ctx, map[model.Role]string{
		model.RoleKitchen: "kitchen-pass",
	})
	s.Require().NoError(err)

	claims, err := s.service.StaffLogin(s.ctx, model.RoleKitchen, "kitchen-pass")
	s.Require().NoError(err)
	s.Equal(model.RoleKitchen, claims.Role)
}

func (s *ServiceSuite) TestStaffLoginWrongPassword() {
	err := s.service.SeedStaffSecrets(s.ctx, map[model.Role]string{
		model.RoleManager: "manager-pass",
	})
	s.Require().NoError(err)

	_, err = s.service.StaffLogin(s.ctx, model.RoleManager, "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestStaffLoginUnseededRole() {
	_, err := s.service.StaffLogin(s.ctx, model.RoleManager, "anything")
	s.ErrorIs(err, model.ErrSecretNotConfigured)
}

func (s *ServiceSuite) TestStaffLoginRejectsCustomerRole() {
	_, err := s.service.StaffLogin(s.ctx, model.RoleCustomer, "anything")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestSeedSkipsEmptyPasswords() {
	err := s.service.SeedStaffSecrets(s.ctx, map[model.Role]string{
		model.RoleKitchen: "",
		model.RoleManager: "manager-pass",
	})
	s.Require().NoError(err)

	_, err = s.service.StaffLogin(s.ctx, model.RoleKitchen, "")
	s.ErrorIs(err, model.ErrSecretNotConfigured)

	_, err = s.service.StaffLogin(s.ctx, model.RoleManager, "manager-pass")
	s.NoError(err)
}

func (s *ServiceSuite) TestHashSecretIsStable() {
	s.Equal(HashSecret("abc"), HashSecret("abc"))
	s.NotEqual(HashSecret("abc"), HashSecret("abd"))
	s.Len(HashSecret("abc"), 64)
}
