package menu

import (
	"context"
	"log/slog"

	"github.com/tablekit/tablekit/internal/dependencies/clock"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Service manages menu categories and items
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new menu Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "menu")),
	}
}

// Section is one category with its items, as shown on ordering screens
type Section struct {
	Category *model.Category
	Items    []*model.MenuItem
}

// Menu returns the full menu grouped by category in display order
func (s *Service) Menu(ctx context.Context) ([]Section, error) {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(categories))
	for _, category := range categories {
		items, err := s.storage.ListMenuItemsByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Category: category, Items: items})
	}
	return sections, nil
}

// CreateCategory adds a category
func (s *Service) CreateCategory(ctx context.Context, name string, position int) (*model.Category, error) {
	id, err := s.storage.NextID(ctx, storage.SeqCategory)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &model.Category{
		ID:        model.CategoryID(id),
		Name:      name,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames or repositions a category
func (s *Service) UpdateCategory(ctx context.Context, id model.CategoryID, name string, position int) (*model.Category, error) {
	category, err := s.storage.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Position = position
	category.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes an empty category. Deleting a category that
// still has items is refused rather than cascading.
func (s *Service) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	if _, err := s.storage.GetCategory(ctx, id); err != nil {
		return err
	}

	items, err := s.storage.ListMenuItemsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return model.ErrCategoryNotEmpty
	}

	return s.storage.DeleteCategory(ctx, id)
}

// ItemInput carries the writable fields of a menu item
type ItemInput struct {
	CategoryID  model.CategoryID
	Name        string
	Description string
	PriceCents  int64
	Available   bool
}

// CreateItem adds a menu item to an existing category
func (s *Service) CreateItem(ctx context.Context, input ItemInput) (*model.MenuItem, error) {
	if _, err := s.storage.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, storage.SeqMenuItem)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	item := &model.MenuItem{
		ID:          model.MenuItemID(id),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Available:   input.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem rewrites a menu item's fields
func (s *Service) UpdateItem(ctx context.Context, id model.MenuItemID, input ItemInput) (*model.MenuItem, error) {
	item, err := s.storage.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CategoryID != item.CategoryID {
		if _, err := s.storage.GetCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	item.Description = input.Description
	item.PriceCents = input.PriceCents
	item.Available = input.Available
	item.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a menu item
func (s *Service) DeleteItem(ctx context.Context, id model.MenuItemID) error {
	return s.storage.DeleteMenuItem(ctx, id)
}
