package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tablekit/tablekit/internal/api/handler"
	"github.com/tablekit/tablekit/internal/api/middleware"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/auth"
	"github.com/tablekit/tablekit/internal/services/menu"
	"github.com/tablekit/tablekit/internal/services/order"
	"github.com/tablekit/tablekit/internal/services/settings"
	"github.com/tablekit/tablekit/internal/services/table"
	"github.com/tablekit/tablekit/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	TokenCodec      *auth.TokenCodec
	Resolver        *auth.Resolver
	TableService    *table.Service
	MenuService     *menu.Service
	OrderService    *order.Service
	SettingsService *settings.Service
	Hub             *sse.Hub

	// Broadcaster receives the events handlers publish after mutations.
	// Nil means publish straight to Hub; tests swap in a recorder.
	Broadcaster sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	broadcaster := cfg.Broadcaster
	if broadcaster == nil {
		broadcaster = cfg.Hub
	}

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.TokenCodec)
	tableHandler := handler.NewTableHandler(cfg.TableService, broadcaster)
	menuHandler := handler.NewMenuHandler(cfg.MenuService, broadcaster)
	orderHandler := handler.NewOrderHandler(cfg.OrderService, broadcaster)
	settingsHandler := handler.NewSettingsHandler(cfg.SettingsService, broadcaster)

	// Create middleware
	identityMiddleware := middleware.Identity(cfg.Resolver)
	requireAuth := middleware.RequireAuth()
	requireKitchen := middleware.RequireRole(model.RoleKitchen)
	requireManager := middleware.RequireRole(model.RoleManager)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware. Identity runs on every
	// route so stale customer cookies get cleared even on public ones.
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(identityMiddleware)

	// Auth routes (no auth required for logging in)
	api.HandleFunc("/auth/table-login", authHandler.TableLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/kitchen-login", authHandler.KitchenLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/manager-login", authHandler.ManagerLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)

	// Event stream. Receiving events needs no credential; authorization
	// gates only who may cause one via a mutation.
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	// Public routes: the menu and the settings the login screen needs
	api.HandleFunc("/menu", menuHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)

	// Table management (manager only)
	tables := api.PathPrefix("/tables").Subrouter()
	tables.Use(requireManager)
	tables.HandleFunc("", tableHandler.List).Methods(http.MethodGet)
	tables.HandleFunc("", tableHandler.Create).Methods(http.MethodPost)
	tables.HandleFunc("/{id}", tableHandler.Get).Methods(http.MethodGet)
	tables.HandleFunc("/{id}", tableHandler.Update).Methods(http.MethodPatch)
	tables.HandleFunc("/{id}", tableHandler.Delete).Methods(http.MethodDelete)
	tables.HandleFunc("/{id}/pin", tableHandler.SetPIN).Methods(http.MethodPut)
	tables.HandleFunc("/{id}/pin/randomize", tableHandler.RandomizePIN).Methods(http.MethodPost)

	// Per-table orders: staff for any table, customers for their own.
	// Registered on the api router so the manager-only tables
	// middleware does not apply.
	tableOrders := api.PathPrefix("/tables/{id}/orders").Subrouter()
	tableOrders.Use(requireAuth)
	tableOrders.HandleFunc("", orderHandler.ListForTable).Methods(http.MethodGet)

	// Menu editing (manager only)
	menuEdit := api.PathPrefix("/menu").Subrouter()
	menuEdit.Use(requireManager)
	menuEdit.HandleFunc("/categories", menuHandler.CreateCategory).Methods(http.MethodPost)
	menuEdit.HandleFunc("/categories/{id}", menuHandler.UpdateCategory).Methods(http.MethodPatch)
	menuEdit.HandleFunc("/categories/{id}", menuHandler.DeleteCategory).Methods(http.MethodDelete)
	menuEdit.HandleFunc("/items", menuHandler.CreateItem).Methods(http.MethodPost)
	menuEdit.HandleFunc("/items/{id}", menuHandler.UpdateItem).Methods(http.MethodPut)
	menuEdit.HandleFunc("/items/{id}", menuHandler.DeleteItem).Methods(http.MethodDelete)

	// Orders
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(requireAuth)
	orders.HandleFunc("", orderHandler.Create).Methods(http.MethodPost)
	orders.HandleFunc("/{id}", orderHandler.Get).Methods(http.MethodGet)

	ordersKitchen := api.PathPrefix("/orders").Subrouter()
	ordersKitchen.Use(requireKitchen)
	ordersKitchen.HandleFunc("", orderHandler.List).Methods(http.MethodGet)
	ordersKitchen.HandleFunc("/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPatch)

	ordersManager := api.PathPrefix("/orders").Subrouter()
	ordersManager.Use(requireManager)
	ordersManager.HandleFunc("/{id}", orderHandler.Delete).Methods(http.MethodDelete)

	// Settings editing (manager only)
	settingsEdit := api.PathPrefix("/settings").Subrouter()
	settingsEdit.Use(requireManager)
	settingsEdit.HandleFunc("", settingsHandler.Update).Methods(http.MethodPatch)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
