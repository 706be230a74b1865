package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case LoginResult:
		o.printLoginResult(v)
	case Table:
		o.printTable(v)
	case []Table:
		o.printTables(v)
	case []MenuSection:
		o.printMenu(v)
	case Category:
		o.printCategory(v)
	case MenuItem:
		o.printMenuItem(v)
	case Order:
		o.printOrder(v)
	case []Order:
		o.printOrders(v)
	case Settings:
		o.printSettings(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response type (matches API)
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	TableID       int64  `json:"table_id,omitempty"`
	Sessions      []struct {
		Role    string `json:"role"`
		TableID int64  `json:"table_id,omitempty"`
	} `json:"sessions,omitempty"`
}

// LoginResult response type
type LoginResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
	TableID int64  `json:"table_id,omitempty"`
}

// Table response type
type Table struct {
	ID         int64     `json:"id"`
	Label      string    `json:"label"`
	PIN        string    `json:"pin"`
	PINVersion int64     `json:"pin_version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Category response type
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// MenuItem response type
type MenuItem struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Available   bool   `json:"available"`
}

// MenuSection response type
type MenuSection struct {
	Category Category   `json:"category"`
	Items    []MenuItem `json:"items"`
}

// OrderLine response type
type OrderLine struct {
	ItemID     int64  `json:"item_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// Order response type
type Order struct {
	ID         int64       `json:"id"`
	TableID    int64       `json:"table_id"`
	Lines      []OrderLine `json:"lines"`
	Note       string      `json:"note,omitempty"`
	Status     string      `json:"status"`
	TotalCents int64       `json:"total_cents"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Settings response type
type Settings struct {
	RestaurantName string `json:"restaurant_name"`
	Currency       string `json:"currency"`
	OrderingOpen   bool   `json:"ordering_open"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Session) {
	if !s.Authenticated {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("Role: %s\n", s.Role)
	if s.TableID != 0 {
		fmt.Printf("Table: %d\n", s.TableID)
	}
	for _, entry := range s.Sessions {
		if entry.Role == "customer" && s.Role != "customer" {
			fmt.Printf("Also holding a customer session for table %d\n", entry.TableID)
		}
	}
}

func (o *Output) printLoginResult(r LoginResult) {
	if r.TableID != 0 {
		fmt.Printf("Logged in as %s for table %d\n", r.Role, r.TableID)
		return
	}
	fmt.Printf("Logged in as %s\n", r.Role)
}

func (o *Output) printTable(t Table) {
	fmt.Printf("Table %d: %s\n", t.ID, t.Label)
	fmt.Printf("PIN: %s (version %d)\n", t.PIN, t.PINVersion)
}

func (o *Output) printTables(tables []Table) {
	if len(tables) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, t := range tables {
		fmt.Printf("%4d  %-20s  PIN %s (v%d)\n", t.ID, t.Label, t.PIN, t.PINVersion)
	}
}

func (o *Output) printMenu(sections []MenuSection) {
	if len(sections) == 0 {
		fmt.Println("Menu is empty")
		return
	}
	for _, s := range sections {
		fmt.Printf("%s\n", s.Category.Name)
		for _, item := range s.Items {
			marker := " "
			if !item.Available {
				marker = "x"
			}
			fmt.Printf("  [%s] %4d  %-30s  %s\n", marker, item.ID, item.Name, formatCents(item.PriceCents))
		}
	}
}

func (o *Output) printCategory(c Category) {
	fmt.Printf("Category %d: %s (position %d)\n", c.ID, c.Name, c.Position)
}

func (o *Output) printMenuItem(m MenuItem) {
	avail := "available"
	if !m.Available {
		avail = "unavailable"
	}
	fmt.Printf("Item %d: %s - %s (%s)\n", m.ID, m.Name, formatCents(m.PriceCents), avail)
	if m.Description != "" {
		fmt.Printf("  %s\n", m.Description)
	}
}

func (o *Output) printOrder(order Order) {
	fmt.Printf("Order %d (table %d) - %s\n", order.ID, order.TableID, order.Status)
	for _, l := range order.Lines {
		fmt.Printf("  %dx %-30s %s\n", l.Quantity, l.Name, formatCents(l.PriceCents*int64(l.Quantity)))
	}
	if order.Note != "" {
		fmt.Printf("Note: %s\n", order.Note)
	}
	fmt.Printf("Total: %s\n", formatCents(order.TotalCents))
}

func (o *Output) printOrders(orders []Order) {
	if len(orders) == 0 {
		fmt.Println("No orders")
		return
	}
	for _, ord := range orders {
		fmt.Printf("%4d  table %-4d  %-10s  %s  %s\n",
			ord.ID, ord.TableID, ord.Status, formatCents(ord.TotalCents),
			ord.CreatedAt.Format("15:04:05"))
	}
}

func (o *Output) printSettings(s Settings) {
	open := "closed"
	if s.OrderingOpen {
		open = "open"
	}
	fmt.Printf("Restaurant: %s\n", s.RestaurantName)
	fmt.Printf("Currency: %s\n", s.Currency)
	fmt.Printf("Ordering: %s\n", open)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
