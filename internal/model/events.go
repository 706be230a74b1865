package model

// EventType identifies the kind of change an event announces
type EventType string

const (
	EventMenuChanged        EventType = "menu-changed"
	EventTableAdded         EventType = "table-added"
	EventTableUpdated       EventType = "table-updated"
	EventTableDeleted       EventType = "table-deleted"
	EventPINChanged         EventType = "pin-changed"
	EventSettingsChanged    EventType = "settings-changed"
	EventOrderCreated       EventType = "order-created"
	EventOrderStatusChanged EventType = "order-status-changed"
	EventOrderDeleted       EventType = "order-deleted"
)

// Event is a change notification pushed to every connected client.
// It is a refresh signal, not a data feed: payload fields only identify
// what to re-fetch, and consumers must treat the API as the source of
// truth. Delivery is best effort with no persistence.
type Event struct {
	Type    EventType `json:"type"`
	TableID TableID   `json:"table_id,omitempty"`
	OrderID OrderID   `json:"order_id,omitempty"`
}

// TableEvent builds an event scoped to a table
func TableEvent(t EventType, id TableID) Event {
	return Event{Type: t, TableID: id}
}

// OrderEvent builds an event scoped to an order
func OrderEvent(t EventType, orderID OrderID, tableID TableID) Event {
	return Event{Type: t, OrderID: orderID, TableID: tableID}
}
