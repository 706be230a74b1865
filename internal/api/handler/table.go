package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablekit/tablekit/internal/api/request"
	"github.com/tablekit/tablekit/internal/api/response"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/table"
	"github.com/tablekit/tablekit/internal/sse"
)

// TableHandler handles table management endpoints (manager only)
type TableHandler struct {
	tableService *table.Service
	broadcaster  sse.Broadcaster
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *table.Service, broadcaster sse.Broadcaster) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		broadcaster:  broadcaster,
	}
}

// tableIDVar extracts the {id} path variable
func tableIDVar(r *http.Request) (model.TableID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidRequestError("invalid table id")
	}
	return model.TableID(id), nil
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tableService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TablesFromModel(tables))
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Label == "" {
		WriteError(w, NewInvalidRequestError("label is required"))
		return
	}

	t, err := h.tableService.Create(r.Context(), req.Label, req.PIN)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.TableEvent(model.EventTableAdded, t.ID))
	response.JSON(w, http.StatusCreated, response.TableFromModel(t))
}

// Get handles GET /api/v1/tables/{id}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	t, err := h.tableService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// Update handles PATCH /api/v1/tables/{id}
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Label == "" {
		WriteError(w, NewInvalidRequestError("label is required"))
		return
	}

	t, err := h.tableService.UpdateLabel(r.Context(), id, req.Label)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.TableEvent(model.EventTableUpdated, t.ID))
	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// Delete handles DELETE /api/v1/tables/{id}
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.tableService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.TableEvent(model.EventTableDeleted, id))
	response.NoContent(w)
}

// SetPIN handles PUT /api/v1/tables/{id}/pin
//
// A successful change bumps the table's PIN version, which voids every
// outstanding customer session for the table. The event fires only
// after the store confirms the change.
func (h *TableHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	id, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SetPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := h.tableService.SetPIN(r.Context(), id, req.PIN); err != nil {
		WriteError(w, err)
		return
	}

	// The bump is committed, so the event fires even if the re-read for
	// the response body fails.
	h.broadcaster.Publish(model.TableEvent(model.EventPINChanged, id))

	t, err := h.tableService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// RandomizePIN handles POST /api/v1/tables/{id}/pin/randomize
func (h *TableHandler) RandomizePIN(w http.ResponseWriter, r *http.Request) {
	id, err := tableIDVar(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, _, err := h.tableService.RandomizePIN(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.Publish(model.TableEvent(model.EventPINChanged, id))

	t, err := h.tableService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}
