package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type rentalService struct {
	rentals      repository.RentalRepository
	items        repository.ItemRepository
	products     repository.ProductRepository
	saleProducts repository.SaleProductRepository
	customers    repository.CustomerRepository
	accessories  repository.AccessoryRepository
	bills        repository.BillRepository
	accounts     repository.AccountRepository
	notes        repository.NotificationRepository
	seq          repository.SequenceRepository
}

func NewRentalService(
	rentals repository.RentalRepository,
	items repository.ItemRepository,
	products repository.ProductRepository,
	saleProducts repository.SaleProductRepository,
	customers repository.CustomerRepository,
	accessories repository.AccessoryRepository,
	bills repository.BillRepository,
	accounts repository.AccountRepository,
	notes repository.NotificationRepository,
	seq repository.SequenceRepository,
) RentalService {
	return &rentalService{
		rentals:      rentals,
		items:        items,
		products:     products,
		saleProducts: saleProducts,
		customers:    customers,
		accessories:  accessories,
		bills:        bills,
		accounts:     accounts,
		notes:        notes,
		seq:          seq,
	}
}

// CreateRental books a set of rental units and sold goods for a customer.
// Validation and stock checks run before any persistent write; unit claims and
// stock decrements taken before a later failure are compensated so a failed
// booking leaves no mutations behind.
func (s *rentalService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	customer, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("customer", in.CustomerID)
		}
		return nil, domain.NewInternal("lookup customer", err)
	}
	if customer.Status == domain.CustomerStatusBlocked {
		return nil, domain.NewForbidden(fmt.Sprintf("customer %s is blocked from new bookings", customer.Name))
	}

	now := time.Now()
	outTime := now
	if in.OutTime != nil {
		if in.OutTime.After(now) {
			return nil, domain.NewValidation("out time cannot be in the future")
		}
		outTime = *in.OutTime
	}
	if len(in.Lines) == 0 && len(in.SoldLines) == 0 {
		return nil, domain.NewValidation("booking must include at least one rental line or sold item")
	}

	// Sold lines first: the bulk-stock check is the cheapest to fail and the
	// conditional decrement is the easiest to compensate.
	soldItems, err := s.allocateSoldLines(ctx, in.SoldLines)
	if err != nil {
		return nil, err
	}

	lines, claimedIDs, productIDs, err := s.allocateRentalLines(ctx, in.Lines)
	if err != nil {
		s.compensateSoldLines(ctx, soldItems)
		return nil, err
	}

	seqVal, err := s.seq.Next(ctx, "rental")
	if err != nil {
		s.compensateClaims(ctx, claimedIDs)
		s.compensateSoldLines(ctx, soldItems)
		return nil, domain.NewInternal("generate rental number", err)
	}

	rental := &domain.Rental{
		RentalNumber:       domain.FormatRentalNumber(seqVal),
		CustomerID:         in.CustomerID,
		Items:              lines,
		SoldItems:          soldItems,
		OutTime:            outTime,
		ExpectedReturnTime: in.ExpectedReturnTime,
		Status:             domain.RentalStatusActive,
		AdvancePayment:     in.AdvancePayment,
		AccessoriesPayment: in.AccessoriesPayment,
		Notes:              in.Notes,
		CreatedBy:          in.ActorID,
	}
	if err := s.rentals.Create(ctx, rental); err != nil {
		s.compensateClaims(ctx, claimedIDs)
		s.compensateSoldLines(ctx, soldItems)
		return nil, domain.NewInternal("create rental", err)
	}

	// Post-save bookkeeping is best effort: the booking is committed, audit
	// and counter failures are logged rather than unwinding it.
	for _, id := range claimedIDs {
		entry := &domain.HistoryEntry{
			ItemID:      id,
			Action:      domain.ActionForTransition(domain.ItemStatusRented),
			Details:     fmt.Sprintf("rented on %s", rental.RentalNumber),
			PerformedBy: in.ActorID,
			CreatedOn:   now,
		}
		if err := s.items.AppendHistory(ctx, entry); err != nil {
			logger.Error("append rental history failed", "item_id", id, "rental", rental.RentalNumber, "error", err)
		}
	}
	s.recountProducts(ctx, productIDs)

	return rental, nil
}

func (s *rentalService) allocateSoldLines(ctx context.Context, soldLines []SoldLineInput) ([]domain.SoldLineItem, error) {
	var soldItems []domain.SoldLineItem
	for _, sl := range soldLines {
		if sl.Quantity <= 0 {
			s.compensateSoldLines(ctx, soldItems)
			return nil, domain.NewValidation("sold quantity must be positive for product %d", sl.ProductID)
		}
		product, err := s.saleProducts.GetByID(ctx, sl.ProductID)
		if err != nil {
			s.compensateSoldLines(ctx, soldItems)
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.NewNotFound("sale product", sl.ProductID)
			}
			return nil, domain.NewInternal("lookup sale product", err)
		}
		ok, err := s.saleProducts.DecrementStock(ctx, sl.ProductID, sl.Quantity)
		if err != nil {
			s.compensateSoldLines(ctx, soldItems)
			return nil, domain.NewInternal("decrement sale stock", err)
		}
		if !ok {
			s.compensateSoldLines(ctx, soldItems)
			return nil, domain.NewNoStock(product.Name)
		}
		soldItems = append(soldItems, domain.SoldLineItem{
			ProductID: sl.ProductID,
			Quantity:  sl.Quantity,
			Price:     sl.Price,
			Total:     float64(sl.Quantity) * sl.Price,
		})
	}
	return soldItems, nil
}

// allocateRentalLines resolves every requested line to a claimed unit. A line
// reference is tried first as a specific unit id, then as a product id. Any
// unresolved line unwinds all claims taken so far.
func (s *rentalService) allocateRentalLines(ctx context.Context, reqLines []RentalLineInput) ([]domain.RentalLineItem, []int32, []int32, error) {
	var lines []domain.RentalLineItem
	var claimedIDs []int32
	productSet := map[int32]bool{}

	for _, line := range reqLines {
		unit, err := s.resolveAndClaim(ctx, line.ItemRef, claimedIDs)
		if err != nil {
			s.compensateClaims(ctx, claimedIDs)
			return nil, nil, nil, domain.NewInternal("resolve rental unit", err)
		}
		if unit == nil {
			s.compensateClaims(ctx, claimedIDs)
			return nil, nil, nil, domain.NewNoStock(s.productNameForRef(ctx, line.ItemRef))
		}
		claimedIDs = append(claimedIDs, unit.ID)
		productSet[unit.ProductID] = true
		lines = append(lines, domain.RentalLineItem{
			ItemID:      unit.ID,
			RentAtTime:  line.RateAtTime,
			RentType:    line.RentType,
			Accessories: line.Accessories,
		})
	}

	productIDs := make([]int32, 0, len(productSet))
	for id := range productSet {
		productIDs = append(productIDs, id)
	}
	return lines, claimedIDs, productIDs, nil
}

// resolveAndClaim finds an available unit for the reference and claims it with
// an atomic status flip. A lost claim race on the product pass retries with
// the contested unit excluded. Returns nil with nil error when nothing could
// be claimed.
func (s *rentalService) resolveAndClaim(ctx context.Context, ref int32, claimed []int32) (*domain.InventoryItem, error) {
	unit, err := s.items.FindAvailableByID(ctx, ref, claimed)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		ok, err := s.items.Claim(ctx, unit.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			return unit, nil
		}
	}

	exclude := claimed
	for attempt := 0; attempt < 3; attempt++ {
		unit, err := s.items.FindAvailableByProduct(ctx, ref, exclude)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, nil
		}
		ok, err := s.items.Claim(ctx, unit.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			return unit, nil
		}
		exclude = append(exclude, unit.ID)
	}
	return nil, nil
}

func (s *rentalService) productNameForRef(ctx context.Context, ref int32) string {
	if product, err := s.products.GetByID(ctx, ref); err == nil {
		return product.Name
	}
	if unit, err := s.items.GetByID(ctx, ref); err == nil {
		if product, err := s.products.GetByID(ctx, unit.ProductID); err == nil {
			return product.Name
		}
	}
	return fmt.Sprintf("product %d", ref)
}

func (s *rentalService) compensateClaims(ctx context.Context, unitIDs []int32) {
	for _, id := range unitIDs {
		if err := s.items.SetStatus(ctx, id, domain.ItemStatusAvailable, "", ""); err != nil {
			logger.Error("revert unit claim failed", "item_id", id, "error", err)
		}
	}
}

func (s *rentalService) compensateSoldLines(ctx context.Context, soldItems []domain.SoldLineItem) {
	for _, si := range soldItems {
		if err := s.saleProducts.IncrementStock(ctx, si.ProductID, si.Quantity); err != nil {
			logger.Error("restore sale stock failed", "product_id", si.ProductID, "quantity", si.Quantity, "error", err)
		}
	}
}

func (s *rentalService) recountProducts(ctx context.Context, productIDs []int32) {
	for _, id := range productIDs {
		total, available, err := s.items.CountByProduct(ctx, id)
		if err != nil {
			logger.Error("recount product failed", "product_id", id, "error", err)
			continue
		}
		if err := s.products.UpdateQuantities(ctx, id, total, available); err != nil {
			logger.Error("update product counters failed", "product_id", id, "error", err)
		}
	}
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("rental", id)
		}
		return nil, domain.NewInternal("lookup rental", err)
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, status string, customerID int32) ([]domain.Rental, error) {
	rentals, err := s.rentals.List(ctx, status, customerID)
	if err != nil {
		return nil, domain.NewInternal("list rentals", err)
	}
	return rentals, nil
}

func (s *rentalService) Stats(ctx context.Context) (*domain.RentalStats, error) {
	active, err := s.rentals.CountByStatus(ctx, []domain.RentalStatus{domain.RentalStatusActive, domain.RentalStatusOverdue})
	if err != nil {
		return nil, domain.NewInternal("count active rentals", err)
	}
	completed, err := s.rentals.CountByStatus(ctx, []domain.RentalStatus{domain.RentalStatusCompleted})
	if err != nil {
		return nil, domain.NewInternal("count completed rentals", err)
	}
	revenue, err := s.rentals.CompletedRevenue(ctx)
	if err != nil {
		return nil, domain.NewInternal("sum completed revenue", err)
	}
	missingProfit, err := s.bills.TotalMissingProfit(ctx)
	if err != nil {
		return nil, domain.NewInternal("sum missing profit", err)
	}
	return &domain.RentalStats{
		ActiveRentals:      active,
		CompletedRentals:   completed,
		TotalRevenue:       revenue,
		TotalMissingProfit: missingProfit,
	}, nil
}
