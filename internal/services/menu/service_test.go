package menu

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
	service *Service
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	store := memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(store, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestCreateCategory() {
	category, err := s.service.CreateCategory(s.ctx, "Starters", 1)
	s.Require().NoError(err)
	s.Equal(model.CategoryID(1), category.ID)
	s.Equal("Starters", category.Name)
	s.Equal(s.clock.Now(), category.CreatedAt)
}

func (s *ServiceSuite) TestUpdateCategory() {
	category, err := s.service.CreateCategory(s.ctx, "Starters", 1)
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	updated, err := s.service.UpdateCategory(s.ctx, category.ID, "Small Plates", 2)
	s.Require().NoError(err)
	s.Equal("Small Plates", updated.Name)
	s.Equal(2, updated.Position)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (s *ServiceSuite) TestUpdateCategoryNotFound() {
	_, err := s.service.UpdateCategory(s.ctx, 42, "Ghost", 1)
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *ServiceSuite) TestDeleteCategoryRefusesNonEmpty() {
	category, err := s.service.CreateCategory(s.ctx, "Mains", 1)
	s.Require().NoError(err)
	_, err = s.service.CreateItem(s.ctx, ItemInput{
		CategoryID: category.ID,
		Name:       "Burger",
		PriceCents: 1200,
		Available:  true,
	})
	s.Require().NoError(err)

	err = s.service.DeleteCategory(s.ctx, category.ID)
	s.ErrorIs(err, model.ErrCategoryNotEmpty)
}

func (s *ServiceSuite) TestDeleteCategoryAfterItemsRemoved() {
	category, err := s.service.CreateCategory(s.ctx, "Mains", 1)
	s.Require().NoError(err)
	item, err := s.service.CreateItem(s.ctx, ItemInput{CategoryID: category.ID, Name: "Burger", PriceCents: 1200})
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteItem(s.ctx, item.ID))
	s.Require().NoError(s.service.DeleteCategory(s.ctx, category.ID))

	_, err = s.service.UpdateCategory(s.ctx, category.ID, "Mains", 1)
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *ServiceSuite) TestCreateItemRequiresCategory() {
	_, err := s.service.CreateItem(s.ctx, ItemInput{
		CategoryID: 42,
		Name:       "Orphan",
		PriceCents: 100,
	})
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *ServiceSuite) TestUpdateItemMoveToUnknownCategoryRejected() {
	category, err := s.service.CreateCategory(s.ctx, "Mains", 1)
	s.Require().NoError(err)
	item, err := s.service.CreateItem(s.ctx, ItemInput{CategoryID: category.ID, Name: "Burger", PriceCents: 1200})
	s.Require().NoError(err)

	_, err = s.service.UpdateItem(s.ctx, item.ID, ItemInput{
		CategoryID: 42,
		Name:       "Burger",
		PriceCents: 1200,
	})
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *ServiceSuite) TestUpdateItem() {
	category, err := s.service.CreateCategory(s.ctx, "Mains", 1)
	s.Require().NoError(err)
	item, err := s.service.CreateItem(s.ctx, ItemInput{CategoryID: category.ID, Name: "Burger", PriceCents: 1200, Available: true})
	s.Require().NoError(err)

	updated, err := s.service.UpdateItem(s.ctx, item.ID, ItemInput{
		CategoryID:  category.ID,
		Name:        "Cheeseburger",
		Description: "with cheddar",
		PriceCents:  1400,
		Available:   false,
	})
	s.Require().NoError(err)
	s.Equal("Cheeseburger", updated.Name)
	s.Equal(int64(1400), updated.PriceCents)
	s.False(updated.Available)
}

func (s *ServiceSuite) TestMenuGroupsByCategoryInDisplayOrder() {
	desserts, err := s.service.CreateCategory(s.ctx, "Desserts", 2)
	s.Require().NoError(err)
	starters, err := s.service.CreateCategory(s.ctx, "Starters", 1)
	s.Require().NoError(err)

	_, err = s.service.CreateItem(s.ctx, ItemInput{CategoryID: desserts.ID, Name: "Tiramisu", PriceCents: 700, Available: true})
	s.Require().NoError(err)
	_, err = s.service.CreateItem(s.ctx, ItemInput{CategoryID: starters.ID, Name: "Soup", PriceCents: 600, Available: true})
	s.Require().NoError(err)
	_, err = s.service.CreateItem(s.ctx, ItemInput{CategoryID: starters.ID, Name: "Salad", PriceCents: 650, Available: true})
	s.Require().NoError(err)

	sections, err := s.service.Menu(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sections, 2)
	s.Equal("Starters", sections[0].Category.Name)
	s.Len(sections[0].Items, 2)
	s.Equal("Desserts", sections[1].Category.Name)
	s.Len(sections[1].Items, 1)
}

func (s *ServiceSuite) TestEmptyCategoryStillListed() {
	_, err := s.service.CreateCategory(s.ctx, "Specials", 1)
	s.Require().NoError(err)

	sections, err := s.service.Menu(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(sections, 1)
	s.Empty(sections[0].Items)
}
