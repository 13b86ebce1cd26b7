package http

import (
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.payments.GetBill(r.Context(), pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

type applyPaymentRequest struct {
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	AccountID *int32  `json:"account_id,omitempty"`
	Direction string  `json:"direction"`
	Note      string  `json:"note"`
}

func (s *Server) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	var req applyPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}

	direction := service.PaymentCredit
	if req.Direction == string(service.PaymentDebit) {
		direction = service.PaymentDebit
	}

	bill, err := s.payments.ApplyPayment(r.Context(), service.ApplyPaymentInput{
		BillID:    pathID(r),
		Amount:    req.Amount,
		Method:    req.Method,
		AccountID: req.AccountID,
		Direction: direction,
		Note:      req.Note,
		ActorID:   actorFrom(r.Context()),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bill)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.PaymentAccount
	if err := decodeJSON(r, &account); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}
	account.CreatedBy = actorFrom(r.Context())
	if err := s.payments.CreateAccount(r.Context(), &account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.PaymentAccount
	if err := decodeJSON(r, &account); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}
	account.ID = pathID(r)
	if err := s.payments.UpdateAccount(r.Context(), &account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

type accountResponse struct {
	Account      *domain.PaymentAccount      `json:"account"`
	Transactions []domain.AccountTransaction `json:"transactions"`
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, txs, err := s.payments.GetAccount(r.Context(), pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accountResponse{Account: account, Transactions: txs})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.payments.ListAccounts(r.Context(), r.URL.Query().Get("status"), r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}
