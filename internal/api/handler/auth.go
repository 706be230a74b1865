package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tablekit/tablekit/internal/api/middleware"
	"github.com/tablekit/tablekit/internal/api/request"
	"github.com/tablekit/tablekit/internal/api/response"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/auth"
)

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	authService *auth.Service
	codec       *auth.TokenCodec
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, codec *auth.TokenCodec) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
	}
}

// TableLogin handles POST /api/v1/auth/table-login
//
// A successful login writes only the customer cookie; a staff cookie on
// the same request is untouched, so a manager trying out the customer
// flow for a table keeps their manager session.
func (h *AuthHandler) TableLogin(w http.ResponseWriter, r *http.Request) {
	var req request.TableLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TableID <= 0 {
		WriteError(w, NewInvalidRequestError("table_id is required"))
		return
	}
	if req.PIN == "" {
		WriteError(w, NewInvalidRequestError("pin is required"))
		return
	}

	claims, err := h.authService.CustomerLogin(r.Context(), model.TableID(req.TableID), req.PIN)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.codec.SetCustomerCookie(w, claims.TableID, claims.PINVersion); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResult{
		Success: true,
		Role:    string(model.RoleCustomer),
		TableID: int64(claims.TableID),
	})
}

// KitchenLogin handles POST /api/v1/auth/kitchen-login
func (h *AuthHandler) KitchenLogin(w http.ResponseWriter, r *http.Request) {
	h.staffLogin(w, r, model.RoleKitchen)
}

// ManagerLogin handles POST /api/v1/auth/manager-login
func (h *AuthHandler) ManagerLogin(w http.ResponseWriter, r *http.Request) {
	h.staffLogin(w, r, model.RoleManager)
}

func (h *AuthHandler) staffLogin(w http.ResponseWriter, r *http.Request, role model.Role) {
	var req request.StaffLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	claims, err := h.authService.StaffLogin(r.Context(), role, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.codec.SetStaffCookie(w, claims.Role); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResult{
		Success: true,
		Role:    string(claims.Role),
	})
}

// Logout handles POST /api/v1/auth/logout
//
// An optional role selector clears a single credential track; with no
// selector both tracks and the pre-split legacy cookie are cleared.
// Always succeeds, authenticated or not.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.LogoutRequest
	if r.Body != nil {
		// An empty body means "log out of everything"
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	switch req.Role {
	case "":
		auth.ClearStaffCookie(w)
		auth.ClearCustomerCookie(w)
		auth.ClearLegacyCookie(w)
	case request.TrackStaff:
		auth.ClearStaffCookie(w)
	case request.TrackCustomer:
		auth.ClearCustomerCookie(w)
	default:
		WriteError(w, NewInvalidRequestError("role must be staff or customer"))
		return
	}
	response.NoContent(w)
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromIdentity(id))
}
