package request

// TableLoginRequest is the request body for customer table login
type TableLoginRequest struct {
	TableID int64  `json:"table_id"`
	PIN     string `json:"pin"`
}

// StaffLoginRequest is the request body for kitchen and manager login
type StaffLoginRequest struct {
	Password string `json:"password"`
}

// Logout role selectors, one per credential track
const (
	TrackStaff    = "staff"
	TrackCustomer = "customer"
)

// LogoutRequest optionally narrows a logout to one credential track
type LogoutRequest struct {
	Role string `json:"role,omitempty"`
}

// CreateTableRequest is the request body for creating a table
type CreateTableRequest struct {
	Label string `json:"label"`
	PIN   string `json:"pin,omitempty"`
}

// UpdateTableRequest is the request body for renaming a table
type UpdateTableRequest struct {
	Label string `json:"label"`
}

// SetPINRequest is the request body for setting a table's PIN
type SetPINRequest struct {
	PIN string `json:"pin"`
}

// CreateCategoryRequest is the request body for creating a menu category
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position,omitempty"`
}

// UpdateCategoryRequest is the request body for updating a menu category
type UpdateCategoryRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// MenuItemRequest is the request body for creating or updating a menu item
type MenuItemRequest struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Available   bool   `json:"available"`
}

// OrderLineRequest is one requested line of an order
type OrderLineRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest is the request body for placing an order
type CreateOrderRequest struct {
	TableID int64              `json:"table_id,omitempty"`
	Lines   []OrderLineRequest `json:"lines"`
	Note    string             `json:"note,omitempty"`
}

// UpdateOrderStatusRequest is the request body for moving an order
// along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateSettingsRequest is the request body for updating restaurant
// settings; absent fields are left unchanged
type UpdateSettingsRequest struct {
	RestaurantName *string `json:"restaurant_name,omitempty"`
	Currency       *string `json:"currency,omitempty"`
	OrderingOpen   *bool   `json:"ordering_open,omitempty"`
}
