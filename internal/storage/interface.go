package storage

import (
	"context"

	"github.com/tablekit/tablekit/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Table operations
	SaveTable(ctx context.Context, table *model.Table) error
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
	ListTables(ctx context.Context) ([]*model.Table, error)
	DeleteTable(ctx context.Context, id model.TableID) error

	// BumpTablePIN stores a new PIN for the table and increments its
	// PIN version in a single atomic step at the storage layer, returning
	// the new version. Two concurrent bumps must never observe the same
	// new version.
	BumpTablePIN(ctx context.Context, id model.TableID, pin string) (int64, error)

	// GetTablePINVersion returns the table's current PIN version
	GetTablePINVersion(ctx context.Context, id model.TableID) (int64, error)

	// Staff secret operations
	SaveStaffSecret(ctx context.Context, secret *model.StaffSecret) error
	GetStaffSecret(ctx context.Context, role model.Role) (*model.StaffSecret, error)

	// Category operations
	SaveCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id model.CategoryID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	DeleteCategory(ctx context.Context, id model.CategoryID) error

	// Menu item operations
	SaveMenuItem(ctx context.Context, item *model.MenuItem) error
	GetMenuItem(ctx context.Context, id model.MenuItemID) (*model.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]*model.MenuItem, error)
	ListMenuItemsByCategory(ctx context.Context, categoryID model.CategoryID) ([]*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id model.MenuItemID) error

	// Order operations
	SaveOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*model.Order, error)
	ListOrdersForTable(ctx context.Context, tableID model.TableID) ([]*model.Order, error)
	DeleteOrder(ctx context.Context, id model.OrderID) error

	// Settings operations
	GetSettings(ctx context.Context) (*model.Settings, error)
	SaveSettings(ctx context.Context, settings *model.Settings) error

	// NextID allocates the next identifier in the named sequence
	NextID(ctx context.Context, sequence string) (int64, error)
}

// Sequence names used with NextID
const (
	SeqTable    = "table"
	SeqCategory = "category"
	SeqMenuItem = "menu_item"
	SeqOrder    = "order"
)
