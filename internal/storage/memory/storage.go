package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	tables       map[model.TableID]*model.Table
	staffSecrets map[model.Role]*model.StaffSecret
	categories   map[model.CategoryID]*model.Category
	menuItems    map[model.MenuItemID]*model.MenuItem
	orders       map[model.OrderID]*model.Order
	settings     *model.Settings
	sequences    map[string]int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tables:       make(map[model.TableID]*model.Table),
		staffSecrets: make(map[model.Role]*model.StaffSecret),
		categories:   make(map[model.CategoryID]*model.Category),
		menuItems:    make(map[model.MenuItemID]*model.MenuItem),
		orders:       make(map[model.OrderID]*model.Order),
		sequences:    make(map[string]int64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *table
	s.tables[t.ID] = &t
	return nil
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return nil, model.ErrTableNotFound
	}
	t := *table
	return &t, nil
}

func (s *Storage) ListTables(ctx context.Context) ([]*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]*model.Table, 0, len(s.tables))
	for _, table := range s.tables {
		t := *table
		tables = append(tables, &t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[id]; !ok {
		return model.ErrTableNotFound
	}
	delete(s.tables, id)
	return nil
}

// BumpTablePIN replaces the PIN and increments the version under the
// storage lock, so concurrent bumps serialize and each sees a distinct
// new version.
func (s *Storage) BumpTablePIN(ctx context.Context, id model.TableID, pin string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table, ok := s.tables[id]
	if !ok {
		return 0, model.ErrTableNotFound
	}
	table.PIN = pin
	table.PINVersion++
	return table.PINVersion, nil
}

func (s *Storage) GetTablePINVersion(ctx context.Context, id model.TableID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return 0, model.ErrTableNotFound
	}
	return table.PINVersion, nil
}

// Staff secret operations

func (s *Storage) SaveStaffSecret(ctx context.Context, secret *model.StaffSecret) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec := *secret
	s.staffSecrets[sec.Role] = &sec
	return nil
}

func (s *Storage) GetStaffSecret(ctx context.Context, role model.Role) (*model.StaffSecret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	secret, ok := s.staffSecrets[role]
	if !ok {
		return nil, model.ErrSecretNotConfigured
	}
	sec := *secret
	return &sec, nil
}

// Category operations

func (s *Storage) SaveCategory(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *category
	s.categories[c.ID] = &c
	return nil
}

func (s *Storage) GetCategory(ctx context.Context, id model.CategoryID) (*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	c := *category
	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]*model.Category, 0, len(s.categories))
	for _, category := range s.categories {
		c := *category
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Position != categories[j].Position {
			return categories[i].Position < categories[j].Position
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

// Menu item operations

func (s *Storage) SaveMenuItem(ctx context.Context, item *model.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := *item
	s.menuItems[i.ID] = &i
	return nil
}

func (s *Storage) GetMenuItem(ctx context.Context, id model.MenuItemID) (*model.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.menuItems[id]
	if !ok {
		return nil, model.ErrMenuItemNotFound
	}
	i := *item
	return &i, nil
}

func (s *Storage) ListMenuItems(ctx context.Context) ([]*model.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*model.MenuItem, 0, len(s.menuItems))
	for _, item := range s.menuItems {
		i := *item
		items = append(items, &i)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Storage) ListMenuItemsByCategory(ctx context.Context, categoryID model.CategoryID) ([]*model.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*model.MenuItem, 0)
	for _, item := range s.menuItems {
		if item.CategoryID == categoryID {
			i := *item
			items = append(items, &i)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Storage) DeleteMenuItem(ctx context.Context, id model.MenuItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menuItems[id]; !ok {
		return model.ErrMenuItemNotFound
	}
	delete(s.menuItems, id)
	return nil
}

// Order operations

func (s *Storage) SaveOrder(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]*model.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, copyOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *Storage) ListOrdersForTable(ctx context.Context, tableID model.TableID) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]*model.Order, 0)
	for _, order := range s.orders {
		if order.TableID == tableID {
			orders = append(orders, copyOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id model.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

// Settings operations

func (s *Storage) GetSettings(ctx context.Context) (*model.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return model.DefaultSettings(), nil
	}
	settings := *s.settings
	return &settings, nil
}

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *settings
	s.settings = &cp
	return nil
}

// NextID allocates the next identifier in the named sequence
func (s *Storage) NextID(ctx context.Context, sequence string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[sequence]++
	return s.sequences[sequence], nil
}

func copyOrder(order *model.Order) *model.Order {
	cp := *order
	cp.Lines = make([]model.OrderLine, len(order.Lines))
	copy(cp.Lines, order.Lines)
	return &cp
}
