package http

import (
	"encoding/json"
	"net/http"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// Server wires the HTTP routes to the business services.
type Server struct {
	router    *mux.Router
	inventory service.InventoryService
	rentals   service.RentalService
	payments  service.PaymentService
	alerts    service.AlertService
	tokens    security.TokenManager
	cfg       *config.Config
}

func NewServer(
	inventory service.InventoryService,
	rentals service.RentalService,
	payments service.PaymentService,
	alerts service.AlertService,
	tokens security.TokenManager,
	cfg *config.Config,
) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		inventory: inventory,
		rentals:   rentals,
		payments:  payments,
		alerts:    alerts,
		tokens:    tokens,
		cfg:       cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requestLogging)
	api.Use(s.authenticate)

	// Rentals
	api.HandleFunc("/rentals", s.handleCreateRental).Methods("POST")
	api.HandleFunc("/rentals", s.handleListRentals).Methods("GET")
	api.HandleFunc("/rentals/stats", s.handleRentalStats).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleGetRental).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}/return", s.handleReturnRental).Methods("POST")

	// Inventory units
	api.HandleFunc("/items", s.handleAddUnit).Methods("POST")
	api.HandleFunc("/items", s.handleListUnits).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}", s.handleGetUnit).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}", s.handleDeleteUnit).Methods("DELETE")
	api.HandleFunc("/items/{id:[0-9]+}/history", s.handleUnitHistory).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}/status", s.handleTransitionUnit).Methods("PUT")
	api.HandleFunc("/items/{id:[0-9]+}/archive", s.handleArchiveUnit).Methods("PUT")

	// Bills and payments
	api.HandleFunc("/bills/{id:[0-9]+}", s.handleGetBill).Methods("GET")
	api.HandleFunc("/bills/{id:[0-9]+}/payments", s.handleApplyPayment).Methods("POST")

	// Payment accounts
	api.HandleFunc("/accounts", s.handleCreateAccount).Methods("POST")
	api.HandleFunc("/accounts", s.handleListAccounts).Methods("GET")
	api.HandleFunc("/accounts/{id:[0-9]+}", s.handleGetAccount).Methods("GET")
	api.HandleFunc("/accounts/{id:[0-9]+}", s.handleUpdateAccount).Methods("PUT")

	// Alerts
	api.HandleFunc("/alerts", s.handleListAlerts).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("encode response failed", "error", err)
		}
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// respondError translates the typed error taxonomy into HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNoStock, domain.KindInvalidTransition:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), Kind: string(kind)})
}
