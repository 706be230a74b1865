package response

import (
	"time"

	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/auth"
	"github.com/tablekit/tablekit/internal/services/menu"
)

// Table represents a table in API responses. All table routes are
// manager-scoped, so the PIN and its version are included.
type Table struct {
	ID         int64     `json:"id"`
	Label      string    `json:"label"`
	PIN        string    `json:"pin"`
	PINVersion int64     `json:"pin_version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableFromModel converts a model.Table to a response Table
func TableFromModel(t *model.Table) Table {
	return Table{
		ID:         int64(t.ID),
		Label:      t.Label,
		PIN:        t.PIN,
		PINVersion: t.PINVersion,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// TablesFromModel converts a slice of tables
func TablesFromModel(tables []*model.Table) []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = TableFromModel(t)
	}
	return out
}

// LoginResult is the response for a successful login
type LoginResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
	TableID int64  `json:"table_id,omitempty"`
}

// SessionEntry is one resolved credential in a session introspection
type SessionEntry struct {
	Role          string `json:"role"`
	TableID       int64  `json:"table_id,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// Session is the response for session introspection. Role and TableID
// describe the primary identity; Sessions lists both tracks when a
// request carries two credentials at once.
type Session struct {
	Authenticated bool           `json:"authenticated"`
	Role          string         `json:"role,omitempty"`
	TableID       int64          `json:"table_id,omitempty"`
	Sessions      []SessionEntry `json:"sessions,omitempty"`
}

// SessionFromIdentity converts a resolved identity to a Session
func SessionFromIdentity(id auth.Identity) Session {
	s := Session{}
	if role, tableID, ok := id.Primary(); ok {
		s.Authenticated = true
		s.Role = string(role)
		s.TableID = int64(tableID)
	}
	if id.Staff != nil {
		s.Sessions = append(s.Sessions, SessionEntry{
			Role:          string(id.Staff.Role),
			Authenticated: true,
		})
	}
	if id.Customer != nil {
		s.Sessions = append(s.Sessions, SessionEntry{
			Role:          string(model.RoleCustomer),
			TableID:       int64(id.Customer.TableID),
			Authenticated: true,
		})
	}
	return s
}

// Category represents a menu category
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// CategoryFromModel converts a model.Category
func CategoryFromModel(c *model.Category) Category {
	return Category{
		ID:       int64(c.ID),
		Name:     c.Name,
		Position: c.Position,
	}
}

// MenuItem represents a menu item
type MenuItem struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Available   bool   `json:"available"`
}

// MenuItemFromModel converts a model.MenuItem
func MenuItemFromModel(m *model.MenuItem) MenuItem {
	return MenuItem{
		ID:          int64(m.ID),
		CategoryID:  int64(m.CategoryID),
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Available:   m.Available,
	}
}

// MenuSection is one category with its items
type MenuSection struct {
	Category Category   `json:"category"`
	Items    []MenuItem `json:"items"`
}

// MenuFromSections converts the menu service's sections
func MenuFromSections(sections []menu.Section) []MenuSection {
	out := make([]MenuSection, len(sections))
	for i, s := range sections {
		items := make([]MenuItem, len(s.Items))
		for j, item := range s.Items {
			items[j] = MenuItemFromModel(item)
		}
		out[i] = MenuSection{
			Category: CategoryFromModel(s.Category),
			Items:    items,
		}
	}
	return out
}

// OrderLine represents one line of an order
type OrderLine struct {
	ItemID     int64  `json:"item_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Order represents an order in API responses
type Order struct {
	ID         int64       `json:"id"`
	TableID    int64       `json:"table_id"`
	Lines      []OrderLine `json:"lines"`
	Note       string      `json:"note,omitempty"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"total_cents"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderFromModel converts a model.Order
func OrderFromModel(o *model.Order) Order {
	lines := make([]OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLine{
			ItemID:     int64(l.ItemID),
			Name:       l.Name,
			PriceCents: l.PriceCents,
			Quantity:   l.Quantity,
		}
	}
	return Order{
		ID:         int64(o.ID),
		TableID:    int64(o.TableID),
		Lines:      lines,
		Note:       o.Note,
		Status:     string(o.Status),
		TotalCents: o.TotalCents(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// OrdersFromModel converts a slice of orders
func OrdersFromModel(orders []*model.Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = OrderFromModel(o)
	}
	return out
}

// Settings represents the restaurant settings
type Settings struct {
	RestaurantName string `json:"restaurant_name"`
	Currency       string `json:"currency"`
	OrderingOpen   bool   `json:"ordering_open"`
}

// SettingsFromModel converts a model.Settings
func SettingsFromModel(s *model.Settings) Settings {
	return Settings{
		RestaurantName: s.RestaurantName,
		Currency:       s.Currency,
		OrderingOpen:   s.OrderingOpen,
	}
}
