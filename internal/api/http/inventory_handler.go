package http

import (
	"net/http"
	"strconv"

	"rentdesk-backend/internal/domain"
)

func (s *Server) handleAddUnit(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}
	if err := s.inventory.AddUnit(r.Context(), &item, actorFrom(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("product_id")
	productID, err := strconv.Atoi(v)
	if err != nil {
		respondError(w, domain.NewValidation("product_id is required"))
		return
	}
	archived := r.URL.Query().Get("archived") == "true"

	units, err := s.inventory.ListUnits(r.Context(), int32(productID), archived)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

func (s *Server) handleGetUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := s.inventory.GetUnit(r.Context(), pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, unit)
}

func (s *Server) handleUnitHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.inventory.GetUnitHistory(r.Context(), pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type transitionRequest struct {
	Status       domain.ItemStatus    `json:"status"`
	Condition    domain.ItemCondition `json:"condition"`
	DamageReason string               `json:"damage_reason"`
	Detail       string               `json:"detail"`
}

func (s *Server) handleTransitionUnit(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}
	if req.Status == "" {
		respondError(w, domain.NewValidation("status is required"))
		return
	}
	err := s.inventory.TransitionUnit(r.Context(), pathID(r), req.Status, req.Condition, req.DamageReason, req.Detail, actorFrom(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func (s *Server) handleArchiveUnit(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}
	if err := s.inventory.ArchiveUnit(r.Context(), pathID(r), req.Archived, actorFrom(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"archived": req.Archived})
}

func (s *Server) handleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := s.inventory.DeleteUnit(r.Context(), pathID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
