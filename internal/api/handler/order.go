package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tablekit/tablekit/internal/api/middleware"
	"github.com/tablekit/tablekit/internal/api/request"
	"github.com/tablekit/tablekit/internal/api/response"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/auth"
	"github.com/tablekit/tablekit/internal/services/order"
	"github.com/tablekit/tablekit/internal/sse"
)

// OrderHandler handles order placement and the kitchen workflow
type OrderHandler struct {
	orderService *order.Service
	broadcaster  sse.Broadcaster
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, broadcaster sse.Broadcaster) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		broadcaster:  broadcaster,
	}
}

// Create handles POST /api/v1/orders
//
// Customers order for their own table; the table comes from the session
// and any conflicting table_id in the body is refused. Staff must name
// the table explicitly.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Lines) == 0 {
		WriteError(w, model.ErrOrderEmpty)
		return
	}

	id := middleware.GetIdentity(r.Context())
	tableID, err := orderTableID(id, model.TableID(req.TableID))
	if err != nil {
		WriteError(w, err)
		return
	}

	lines := make([]order.LineInput, len(req.Lines))
	for i, l := range req.Lines {
		if l.Quantity < 1 {
			WriteError(w, NewInvalidRequestError("quantity must be at least 1"))
			return
		}
		lines[i] = order.LineInput{
			ItemID:   model.MenuItemID(l.ItemID),
			Quantity: l.Quantity,
		}
	}

	o, err := h.orderService.Create(r.Context(), tableID, lines, req.Note)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.OrderEvent(model.EventOrderCreated, o.ID, o.TableID))
	response.JSON(w, http.StatusCreated, response.OrderFromModel(o))
}

// orderTableID picks the table an order targets from the identity and
// the optional explicit table_id
func orderTableID(id auth.Identity, requested model.TableID) (model.TableID, error) {
	if requested == 0 {
		if id.Customer == nil {
			return 0, NewInvalidRequestError("table_id is required")
		}
		return id.Customer.TableID, nil
	}
	if !auth.AllowTable(id, model.RoleCustomer, requested) {
		return 0, model.ErrForbidden
	}
	return requested, nil
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OrdersFromModel(orders))
}

// ListForTable handles GET /api/v1/tables/{id}/orders
//
// Open to staff for any table and to a customer for their own table
func (h *OrderHandler) ListForTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	id := middleware.GetIdentity(r.Context())
	if !auth.AllowTable(id, model.RoleCustomer, tableID) {
		WriteError(w, model.ErrForbidden)
		return
	}

	orders, err := h.orderService.ListForTable(r.Context(), tableID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OrdersFromModel(orders))
}

// Get handles GET /api/v1/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	o, err := h.orderService.Get(r.Context(), model.OrderID(orderID))
	if err != nil {
		WriteError(w, err)
		return
	}

	id := middleware.GetIdentity(r.Context())
	if !auth.AllowTable(id, model.RoleCustomer, o.TableID) {
		WriteError(w, model.ErrForbidden)
		return
	}

	response.JSON(w, http.StatusOK, response.OrderFromModel(o))
}

// UpdateStatus handles PATCH /api/v1/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Status == "" {
		WriteError(w, NewInvalidRequestError("status is required"))
		return
	}

	o, err := h.orderService.UpdateStatus(r.Context(), model.OrderID(orderID), model.OrderStatus(req.Status))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.OrderEvent(model.EventOrderStatusChanged, o.ID, o.TableID))
	response.JSON(w, http.StatusOK, response.OrderFromModel(o))
}

// Delete handles DELETE /api/v1/orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	o, err := h.orderService.Get(r.Context(), model.OrderID(orderID))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.orderService.Delete(r.Context(), o.ID); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.OrderEvent(model.EventOrderDeleted, o.ID, o.TableID))
	response.NoContent(w)
}
