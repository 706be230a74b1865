package redis

import (
	"fmt"

	"github.com/tablekit/tablekit/internal/model"
)

// Key prefix for all restaurant data
const keyPrefix = "tablekit"

// Key generation functions for each entity type

// tableKey returns the Redis key for a Table hash
func tableKey(id model.TableID) string {
	return fmt.Sprintf("%s:table:%d", keyPrefix, id)
}

// tablesIndexKey returns the Redis key for the SET of table keys
func tablesIndexKey() string {
	return fmt.Sprintf("%s:idx:tables", keyPrefix)
}

// staffSecretKey returns the Redis key for a StaffSecret
func staffSecretKey(role model.Role) string {
	return fmt.Sprintf("%s:staff_secret:%s", keyPrefix, role)
}

// categoryKey returns the Redis key for a Category
func categoryKey(id model.CategoryID) string {
	return fmt.Sprintf("%s:category:%d", keyPrefix, id)
}

// categoriesIndexKey returns the Redis key for the SET of category keys
func categoriesIndexKey() string {
	return fmt.Sprintf("%s:idx:categories", keyPrefix)
}

// menuItemKey returns the Redis key for a MenuItem
func menuItemKey(id model.MenuItemID) string {
	return fmt.Sprintf("%s:menu_item:%d", keyPrefix, id)
}

// menuItemsIndexKey returns the Redis key for the SET of menu item keys
func menuItemsIndexKey() string {
	return fmt.Sprintf("%s:idx:menu_items", keyPrefix)
}

// orderKey returns the Redis key for an Order
func orderKey(id model.OrderID) string {
	return fmt.Sprintf("%s:order:%d", keyPrefix, id)
}

// ordersIndexKey returns the Redis key for the SET of order keys
func ordersIndexKey() string {
	return fmt.Sprintf("%s:idx:orders", keyPrefix)
}

// settingsKey returns the Redis key for the settings singleton
func settingsKey() string {
	return fmt.Sprintf("%s:settings", keyPrefix)
}

// sequenceKey returns the Redis key for a named ID sequence
func sequenceKey(name string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, name)
}
