package table

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
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateWithExplicitPIN() {
	t, err := s.service.Create(s.ctx, "Window", "1234")
	s.Require().NoError(err)

	s.Equal("Window", t.Label)
	s.Equal("1234", t.PIN)
	s.Equal(int64(1), t.PINVersion)
	s.NotZero(t.ID)
}

func (s *ServiceSuite) TestCreateGeneratesPINWhenEmpty() {
	s.random.QueueString("0427")

	t, err := s.service.Create(s.ctx, "Patio", "")
	s.Require().NoError(err)
	s.Equal("0427", t.PIN)
}

func (s *ServiceSuite) TestCreateRejectsBadPIN() {
	_, err := s.service.Create(s.ctx, "Window", "12a4")
	s.ErrorIs(err, model.ErrInvalidPIN)

	_, err = s.service.Create(s.ctx, "Window", "123")
	s.ErrorIs(err, model.ErrInvalidPIN)

	_, err = s.service.Create(s.ctx, "Window", "12345")
	s.ErrorIs(err, model.ErrInvalidPIN)
}

func (s *ServiceSuite) TestCreateAssignsSequentialIDs() {
	t1, err := s.service.Create(s.ctx, "A", "1111")
	s.Require().NoError(err)
	t2, err := s.service.Create(s.ctx, "B", "2222")
	s.Require().NoError(err)

	s.Equal(t1.ID+1, t2.ID)
}

func (s *ServiceSuite) TestUpdateLabel() {
	t, _ := s.service.Create(s.ctx, "Old", "1234")
	s.clock.Advance(time.Minute)

	updated, err := s.service.UpdateLabel(s.ctx, t.ID, "New")
	s.Require().NoError(err)
	s.Equal("New", updated.Label)
	s.True(updated.UpdatedAt.After(t.UpdatedAt))
	// PIN untouched
	s.Equal("1234", updated.PIN)
	s.Equal(int64(1), updated.PINVersion)
}

func (s *ServiceSuite) TestSetPINBumpsVersion() {
	t, _ := s.service.Create(s.ctx, "Window", "1234")

	version, err := s.service.SetPIN(s.ctx, t.ID, "5678")
	s.Require().NoError(err)
	s.Equal(int64(2), version)

	stored, err := s.service.Get(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("5678", stored.PIN)
	s.Equal(int64(2), stored.PINVersion)
}

func (s *ServiceSuite) TestSetPINRejectsBadPINWithoutBumping() {
	t, _ := s.service.Create(s.ctx, "Window", "1234")

	_, err := s.service.SetPIN(s.ctx, t.ID, "12a4")
	s.ErrorIs(err, model.ErrInvalidPIN)

	stored, err := s.service.Get(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("1234", stored.PIN)
	s.Equal(int64(1), stored.PINVersion)
}

func (s *ServiceSuite) TestSetPINUnknownTable() {
	_, err := s.service.SetPIN(s.ctx, 99, "1234")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *ServiceSuite) TestRandomizePIN() {
	t, _ := s.service.Create(s.ctx, "Window", "1234")
	s.random.QueueString("9090")

	pin, version, err := s.service.RandomizePIN(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("9090", pin)
	s.Equal(int64(2), version)

	stored, _ := s.service.Get(s.ctx, t.ID)
	s.Equal("9090", stored.PIN)
}

func (s *ServiceSuite) TestDelete() {
	t, _ := s.service.Create(s.ctx, "Window", "1234")

	s.Require().NoError(s.service.Delete(s.ctx, t.ID))

	_, err := s.service.Get(s.ctx, t.ID)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *ServiceSuite) TestListOrderedByID() {
	_, _ = s.service.Create(s.ctx, "A", "1111")
	_, _ = s.service.Create(s.ctx, "B", "2222")
	_, _ = s.service.Create(s.ctx, "C", "3333")

	tables, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tables, 3)
	s.Equal("A", tables[0].Label)
	s.Equal("C", tables[2].Label)
}
