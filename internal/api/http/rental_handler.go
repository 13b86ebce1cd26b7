package http

import (
	"net/http"
	"strconv"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type rentalLineRequest struct {
	ItemRef     int32                    `json:"item_ref"`
	RentType    domain.RentType          `json:"rent_type"`
	RateAtTime  float64                  `json:"rate_at_time"`
	Accessories []domain.RentalAccessory `json:"accessories"`
}

type soldLineRequest struct {
	ProductID int32   `json:"product_id"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
}

type createRentalRequest struct {
	CustomerID         int32               `json:"customer_id"`
	Lines              []rentalLineRequest `json:"lines"`
	SoldLines          []soldLineRequest   `json:"sold_lines"`
	OutTime            *time.Time          `json:"out_time,omitempty"`
	ExpectedReturnTime *time.Time          `json:"expected_return_time,omitempty"`
	AdvancePayment     float64             `json:"advance_payment"`
	AccessoriesPayment float64             `json:"accessories_payment"`
	Notes              string              `json:"notes"`
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}

	in := service.CreateRentalInput{
		CustomerID:         req.CustomerID,
		OutTime:            req.OutTime,
		ExpectedReturnTime: req.ExpectedReturnTime,
		AdvancePayment:     req.AdvancePayment,
		AccessoriesPayment: req.AccessoriesPayment,
		Notes:              req.Notes,
		ActorID:            actorFrom(r.Context()),
	}
	for _, line := range req.Lines {
		in.Lines = append(in.Lines, service.RentalLineInput{
			ItemRef:     line.ItemRef,
			RentType:    line.RentType,
			RateAtTime:  line.RateAtTime,
			Accessories: line.Accessories,
		})
	}
	for _, sl := range req.SoldLines {
		in.SoldLines = append(in.SoldLines, service.SoldLineInput{
			ProductID: sl.ProductID,
			Quantity:  sl.Quantity,
			Price:     sl.Price,
		})
	}

	rental, err := s.rentals.CreateRental(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	var customerID int32
	if v := r.URL.Query().Get("customer_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, domain.NewValidation("invalid customer_id: %s", v))
			return
		}
		customerID = int32(id)
	}

	rentals, err := s.rentals.ListRentals(r.Context(), status, customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	rental, err := s.rentals.GetRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

type returnedAccessoryRequest struct {
	AccessoryID int32                  `json:"accessory_id"`
	Status      domain.AccessoryStatus `json:"status"`
	DamageCost  float64                `json:"damage_cost"`
}

type returnedLineRequest struct {
	UnitID          int32                      `json:"unit_id"`
	ReturnCondition domain.ItemCondition       `json:"return_condition"`
	DamageCost      float64                    `json:"damage_cost"`
	Accessories     []returnedAccessoryRequest `json:"accessories"`
}

type returnRentalRequest struct {
	ReturnedLines         []returnedLineRequest `json:"returned_lines"`
	PaymentMethod         string                `json:"payment_method"`
	PaymentAccountID      *int32                `json:"payment_account_id,omitempty"`
	DiscountPercent       float64               `json:"discount_percent"`
	TaxPercent            *float64              `json:"tax_percent,omitempty"`
	PaidDueAmount         float64               `json:"paid_due_amount"`
	CustomizedTotalAmount *float64              `json:"customized_total_amount,omitempty"`
}

type returnRentalResponse struct {
	Rental *domain.Rental `json:"rental"`
	Bill   *domain.Bill   `json:"bill"`
}

func (s *Server) handleReturnRental(w http.ResponseWriter, r *http.Request) {
	var req returnRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, domain.NewValidation("invalid request body: %v", err))
		return
	}

	taxPercent := s.cfg.Billing.DefaultTaxPercent
	if req.TaxPercent != nil {
		taxPercent = *req.TaxPercent
	}

	in := service.ReturnRentalInput{
		RentalID:              pathID(r),
		PaymentMethod:         req.PaymentMethod,
		PaymentAccountID:      req.PaymentAccountID,
		DiscountPercent:       req.DiscountPercent,
		TaxPercent:            taxPercent,
		PaidDueAmount:         req.PaidDueAmount,
		CustomizedTotalAmount: req.CustomizedTotalAmount,
		ActorID:               actorFrom(r.Context()),
	}
	for _, line := range req.ReturnedLines {
		rl := service.ReturnedLineInput{
			UnitID:          line.UnitID,
			ReturnCondition: line.ReturnCondition,
			DamageCost:      line.DamageCost,
		}
		for _, acc := range line.Accessories {
			rl.Accessories = append(rl.Accessories, service.ReturnedAccessoryInput{
				AccessoryID: acc.AccessoryID,
				Status:      acc.Status,
				DamageCost:  acc.DamageCost,
			})
		}
		in.ReturnedLines = append(in.ReturnedLines, rl)
	}

	rental, bill, err := s.rentals.ReturnRental(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, returnRentalResponse{Rental: rental, Bill: bill})
}

func (s *Server) handleRentalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.rentals.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.ListUnread(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

// pathID extracts the numeric {id} path variable. Routes constrain it to
// digits, so the parse cannot fail for registered paths.
func pathID(r *http.Request) int32 {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return int32(id)
}
