package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablekit/tablekit/internal/api/request"
	"github.com/tablekit/tablekit/internal/api/response"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/menu"
	"github.com/tablekit/tablekit/internal/sse"
)

// MenuHandler handles the public menu view and manager menu editing
type MenuHandler struct {
	menuService *menu.Service
	broadcaster sse.Broadcaster
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *menu.Service, broadcaster sse.Broadcaster) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		broadcaster: broadcaster,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid " + name)
	}
	return id, nil
}

// Get handles GET /api/v1/menu
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	sections, err := h.menuService.Menu(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MenuFromSections(sections))
}

// CreateCategory handles POST /api/v1/menu/categories
func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	category, err := h.menuService.CreateCategory(r.Context(), req.Name, req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.JSON(w, http.StatusCreated, response.CategoryFromModel(category))
}

// UpdateCategory handles PATCH /api/v1/menu/categories/{id}
func (h *MenuHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	category, err := h.menuService.UpdateCategory(r.Context(), model.CategoryID(id), req.Name, req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.JSON(w, http.StatusOK, response.CategoryFromModel(category))
}

// DeleteCategory handles DELETE /api/v1/menu/categories/{id}
func (h *MenuHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.menuService.DeleteCategory(r.Context(), model.CategoryID(id)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.NoContent(w)
}

// CreateItem handles POST /api/v1/menu/items
func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	input, err := decodeItemInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := h.menuService.CreateItem(r.Context(), input)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.JSON(w, http.StatusCreated, response.MenuItemFromModel(item))
}

// UpdateItem handles PUT /api/v1/menu/items/{id}
func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	input, err := decodeItemInput(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	item, err := h.menuService.UpdateItem(r.Context(), model.MenuItemID(id), input)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.JSON(w, http.StatusOK, response.MenuItemFromModel(item))
}

// DeleteItem handles DELETE /api/v1/menu/items/{id}
func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.menuService.DeleteItem(r.Context(), model.MenuItemID(id)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.Event{Type: model.EventMenuChanged})
	response.NoContent(w)
}

func decodeItemInput(r *http.Request) (menu.ItemInput, error) {
	var req request.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return menu.ItemInput{}, NewInvalidRequestError("invalid request body")
	}
	if req.Name == "" {
		return menu.ItemInput{}, NewInvalidRequestError("name is required")
	}
	if req.CategoryID <= 0 {
		return menu.ItemInput{}, NewInvalidRequestError("category_id is required")
	}
	if req.PriceCents < 0 {
		return menu.ItemInput{}, NewInvalidRequestError("price_cents must not be negative")
	}
	return menu.ItemInput{
		CategoryID:  model.CategoryID(req.CategoryID),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Available:   req.Available,
	}, nil
}
