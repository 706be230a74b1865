package order

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

	tableID model.TableID
	burger  model.MenuItemID
	fries   model.MenuItemID
	special model.MenuItemID // unavailable
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	now := s.clock.Now()

	s.tableID = 1
	s.Require().NoError(s.storage.SaveTable(s.ctx, &model.Table{
		ID: s.tableID, Label: "Window", PIN: "1234", PINVersion: 1,
		CreatedAt: now, UpdatedAt: now,
	}))

	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{
		ID: 1, Name: "Mains", Position: 1, CreatedAt: now, UpdatedAt: now,
	}))

	s.burger = 1
	s.fries = 2
	s.special = 3
	items := []*model.MenuItem{
		{ID: s.burger, CategoryID: 1, Name: "Burger", PriceCents: 1200, Available: true},
		{ID: s.fries, CategoryID: 1, Name: "Fries", PriceCents: 400, Available: true},
		{ID: s.special, CategoryID: 1, Name: "Special", PriceCents: 2500, Available: false},
	}
	for _, item := range items {
		item.CreatedAt = now
		item.UpdatedAt = now
		s.Require().NoError(s.storage.SaveMenuItem(s.ctx, item))
	}
}

func (s *ServiceSuite) lines(inputs ...LineInput) []LineInput {
	return inputs
}

func (s *ServiceSuite) TestCreateSnapshotsMenuPrices() {
	o, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 2},
		LineInput{ItemID: s.fries, Quantity: 1},
	), "no onions")
	s.Require().NoError(err)

	s.Equal(model.OrderStatusOpen, o.Status)
	s.Equal(s.tableID, o.TableID)
	s.Equal("no onions", o.Note)
	s.Require().Len(o.Lines, 2)
	s.Equal("Burger", o.Lines[0].Name)
	s.Equal(int64(1200), o.Lines[0].PriceCents)
	s.Equal(int64(2800), o.TotalCents())
}

func (s *ServiceSuite) TestCreatePriceFixedAfterMenuChange() {
	o, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")
	s.Require().NoError(err)

	// Reprice the burger; the existing order keeps the old price
	item, _ := s.storage.GetMenuItem(s.ctx, s.burger)
	item.PriceCents = 9900
	s.Require().NoError(s.storage.SaveMenuItem(s.ctx, item))

	stored, err := s.service.Get(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(int64(1200), stored.TotalCents())
}

func (s *ServiceSuite) TestCreateEmptyOrderRejected() {
	_, err := s.service.Create(s.ctx, s.tableID, nil, "")
	s.ErrorIs(err, model.ErrOrderEmpty)
}

func (s *ServiceSuite) TestCreateZeroQuantityRejected() {
	_, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 0},
	), "")
	s.ErrorIs(err, model.ErrOrderEmpty)
}

func (s *ServiceSuite) TestCreateUnavailableItemRejected() {
	_, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.special, Quantity: 1},
	), "")
	s.ErrorIs(err, model.ErrItemUnavailable)
}

func (s *ServiceSuite) TestCreateUnknownItemRejected() {
	_, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: 99, Quantity: 1},
	), "")
	s.ErrorIs(err, model.ErrMenuItemNotFound)
}

func (s *ServiceSuite) TestCreateUnknownTableRejected() {
	_, err := s.service.Create(s.ctx, 42, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *ServiceSuite) TestCreateRefusedWhenOrderingClosed() {
	settings, err := s.storage.GetSettings(s.ctx)
	s.Require().NoError(err)
	settings.OrderingOpen = false
	s.Require().NoError(s.storage.SaveSettings(s.ctx, settings))

	_, err = s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")
	s.ErrorIs(err, model.ErrOrderingClosed)
}

func (s *ServiceSuite) TestUpdateStatusFollowsLifecycle() {
	o, err := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")
	s.Require().NoError(err)

	for _, status := range []model.OrderStatus{
		model.OrderStatusPreparing,
		model.OrderStatusReady,
		model.OrderStatusDelivered,
	} {
		o, err = s.service.UpdateStatus(s.ctx, o.ID, status)
		s.Require().NoError(err)
		s.Equal(status, o.Status)
	}
}

func (s *ServiceSuite) TestUpdateStatusRejectsSkippingAhead() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")

	_, err := s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatusReady)
	s.ErrorIs(err, model.ErrInvalidStatusChange)
}

func (s *ServiceSuite) TestUpdateStatusRejectsBackwards() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")

	o, err := s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatusPreparing)
	s.Require().NoError(err)

	_, err = s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatusOpen)
	s.ErrorIs(err, model.ErrInvalidStatusChange)
}

func (s *ServiceSuite) TestCancelBeforeDelivery() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")

	o, err := s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatusCancelled)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusCancelled, o.Status)
}

func (s *ServiceSuite) TestCancelAfterDeliveryRejected() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")

	for _, status := range []model.OrderStatus{
		model.OrderStatusPreparing, model.OrderStatusReady, model.OrderStatusDelivered,
	} {
		_, err := s.service.UpdateStatus(s.ctx, o.ID, status)
		s.Require().NoError(err)
	}

	_, err := s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatusCancelled)
	s.ErrorIs(err, model.ErrInvalidStatusChange)
}

func (s *ServiceSuite) TestUpdateStatusRejectsUnknownStatus() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(
		LineInput{ItemID: s.burger, Quantity: 1},
	), "")

	_, err := s.service.UpdateStatus(s.ctx, o.ID, model.OrderStatus("burnt"))
	s.ErrorIs(err, model.ErrInvalidStatusChange)
}

func (s *ServiceSuite) TestListForTable() {
	other := model.TableID(2)
	now := s.clock.Now()
	s.Require().NoError(s.storage.SaveTable(s.ctx, &model.Table{
		ID: other, Label: "Patio", PIN: "5678", PINVersion: 1,
		CreatedAt: now, UpdatedAt: now,
	}))

	_, _ = s.service.Create(s.ctx, s.tableID, s.lines(LineInput{ItemID: s.burger, Quantity: 1}), "")
	_, _ = s.service.Create(s.ctx, other, s.lines(LineInput{ItemID: s.fries, Quantity: 1}), "")
	_, _ = s.service.Create(s.ctx, s.tableID, s.lines(LineInput{ItemID: s.fries, Quantity: 2}), "")

	orders, err := s.service.ListForTable(s.ctx, s.tableID)
	s.Require().NoError(err)
	s.Len(orders, 2)

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *ServiceSuite) TestDelete() {
	o, _ := s.service.Create(s.ctx, s.tableID, s.lines(LineInput{ItemID: s.burger, Quantity: 1}), "")

	s.Require().NoError(s.service.Delete(s.ctx, o.ID))

	_, err := s.service.Get(s.ctx, o.ID)
	s.ErrorIs(err, model.ErrOrderNotFound)
}
