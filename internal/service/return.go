package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/utils"

	"github.com/google/uuid"
)

// ReturnRental closes out a booking. It prices the elapsed time per line, adds
// damage and accessory charges, builds the final bill, settles payment state
// and releases the units back to available.
func (s *rentalService) ReturnRental(ctx context.Context, in ReturnRentalInput) (*domain.Rental, *domain.Bill, error) {
	rental, err := s.GetRental(ctx, in.RentalID)
	if err != nil {
		return nil, nil, err
	}
	if rental.Status == domain.RentalStatusCompleted {
		return nil, nil, domain.NewInvalidTransition(fmt.Sprintf("rental %s is already completed", rental.RentalNumber))
	}

	now := time.Now()
	dur := utils.ComputeDuration(rental.OutTime, now)

	var billItems []domain.BillLineItem
	var totalRentalCost, totalDamageCost float64

	// Sale charges are always part of the final bill, independent of what the
	// caller reports as returned.
	for _, si := range rental.SoldItems {
		name := fmt.Sprintf("product %d", si.ProductID)
		if product, err := s.saleProducts.GetByID(ctx, si.ProductID); err == nil {
			name = product.Name
		}
		lineTotal := float64(si.Quantity) * si.Price
		totalRentalCost += lineTotal
		productID := si.ProductID
		billItems = append(billItems, domain.BillLineItem{
			ProductID: &productID,
			Name:      fmt.Sprintf("%s (Sold)", name),
			Quantity:  si.Quantity,
			Price:     si.Price,
			Total:     lineTotal,
		})
	}

	var releasedProducts []int32
	for _, ret := range in.ReturnedLines {
		line := matchRentalLine(rental, ret.UnitID)
		if line == nil {
			// Unmatched returned units are skipped, not rejected.
			continue
		}

		unit, err := s.items.GetByID(ctx, ret.UnitID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, domain.NewNotFound("inventory unit", ret.UnitID)
			}
			return nil, nil, domain.NewInternal("lookup returned unit", err)
		}
		productName := fmt.Sprintf("product %d", unit.ProductID)
		if product, err := s.products.GetByID(ctx, unit.ProductID); err == nil {
			productName = product.Name
		}

		lineCost := utils.LineCost(line.RentType, line.RentAtTime, dur)
		totalRentalCost += lineCost
		productID := unit.ProductID
		billItems = append(billItems, domain.BillLineItem{
			ProductID: &productID,
			Name:      fmt.Sprintf("%s - %s (Rental)", productName, unit.UniqueIdentifier),
			Quantity:  1,
			Price:     lineCost,
			Total:     lineCost,
		})

		damage := utils.CoerceAmount(ret.DamageCost)
		totalDamageCost += damage

		accessoryCharges, err := s.reconcileAccessories(ctx, ret.Accessories)
		if err != nil {
			return nil, nil, err
		}
		for _, ac := range accessoryCharges {
			totalDamageCost += ac.Total
			billItems = append(billItems, ac)
		}
		// Write the reported accessory states onto the line snapshot so the
		// completion update persists them.
		for _, rep := range ret.Accessories {
			if rep.Status == "" {
				continue
			}
			for i := range line.Accessories {
				if line.Accessories[i].AccessoryID == rep.AccessoryID {
					line.Accessories[i].Status = rep.Status
				}
			}
		}

		condition := ret.ReturnCondition
		if condition == "" {
			condition = domain.ItemConditionGood
		}
		line.ReturnCondition = condition
		line.DamageCost = damage
		s.releaseUnit(ctx, unit, condition, rental.RentalNumber, in.ActorID, now)
		releasedProducts = append(releasedProducts, unit.ProductID)
	}

	totals := utils.ComputeTotals(totalRentalCost, totalDamageCost, in.DiscountPercent, in.TaxPercent, in.CustomizedTotalAmount)
	paidNow := utils.CoerceAmount(in.PaidDueAmount)
	totalPaid := rental.AdvancePayment + rental.AccessoriesPayment + paidNow
	due, payStatus := utils.SettlePayment(totals.FinalTotal, totalPaid, paidNow)

	bill, err := s.buildBill(ctx, rental, billItems, totals, dur, totalDamageCost, totalPaid, due, payStatus, in)
	if err != nil {
		return nil, nil, err
	}

	rental.ReturnTime = &now
	rental.Status = domain.RentalStatusCompleted
	rental.TotalAmount = totals.FinalTotal
	rental.FinalBillID = &bill.ID
	if err := s.rentals.Complete(ctx, rental); err != nil {
		return nil, nil, domain.NewInternal("complete rental", err)
	}

	s.recountProducts(ctx, releasedProducts)
	s.creditReturnPayment(ctx, bill, paidNow, in)

	if err := s.notes.ClearForRental(ctx, rental.ID, []domain.NotificationType{domain.NotificationTypeDueToday, domain.NotificationTypeOverdue}); err != nil {
		logger.Error("clear rental alerts failed", "rental_id", rental.ID, "error", err)
	}

	return rental, bill, nil
}

func matchRentalLine(rental *domain.Rental, unitID int32) *domain.RentalLineItem {
	for i := range rental.Items {
		if rental.Items[i].ItemID == unitID {
			return &rental.Items[i]
		}
	}
	return nil
}

// reconcileAccessories turns the reported accessory states into bill lines. An
// accessory is charged when it carries an explicit damage cost or came back in
// any state other than with_item/returned; the charge is the damage cost when
// positive, else the catalog replacement cost. A report for an accessory with
// no catalog entry charges only the explicit damage cost and never fails the
// return.
func (s *rentalService) reconcileAccessories(ctx context.Context, reports []ReturnedAccessoryInput) ([]domain.BillLineItem, error) {
	var charges []domain.BillLineItem
	for _, rep := range reports {
		damage := utils.CoerceAmount(rep.DamageCost)
		chargeable := damage > 0 || (rep.Status != domain.AccessoryStatusWithItem && rep.Status != domain.AccessoryStatusReturned)
		if !chargeable {
			continue
		}
		def, err := s.accessories.GetByID(ctx, rep.AccessoryID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, domain.NewInternal("lookup accessory", err)
			}
			def = nil
		}
		charge := damage
		name := fmt.Sprintf("accessory %d", rep.AccessoryID)
		if def != nil {
			name = def.Name
			if charge <= 0 {
				charge = def.ReplacementCost
			}
		}
		if charge <= 0 {
			continue
		}
		charges = append(charges, domain.BillLineItem{
			Name:     fmt.Sprintf("%s (Accessory)", name),
			Quantity: 1,
			Price:    charge,
			Total:    charge,
		})
	}
	return charges, nil
}

func (s *rentalService) releaseUnit(ctx context.Context, unit *domain.InventoryItem, condition domain.ItemCondition, rentalNumber string, actorID *int32, now time.Time) {
	if err := s.items.SetStatus(ctx, unit.ID, domain.ItemStatusAvailable, condition, ""); err != nil {
		logger.Error("release unit failed", "item_id", unit.ID, "rental", rentalNumber, "error", err)
		return
	}
	entry := &domain.HistoryEntry{
		ItemID:      unit.ID,
		Action:      domain.HistoryActionReturned,
		Details:     fmt.Sprintf("returned from %s in %s condition", rentalNumber, condition),
		PerformedBy: actorID,
		CreatedOn:   now,
	}
	if err := s.items.AppendHistory(ctx, entry); err != nil {
		logger.Error("append return history failed", "item_id", unit.ID, "rental", rentalNumber, "error", err)
	}
}

func (s *rentalService) buildBill(ctx context.Context, rental *domain.Rental, billItems []domain.BillLineItem, totals utils.BillTotals, dur utils.RentalDuration, totalDamageCost, totalPaid, due float64, payStatus domain.PaymentStatus, in ReturnRentalInput) (*domain.Bill, error) {
	seqVal, err := s.seq.Next(ctx, "bill")
	if err != nil {
		return nil, domain.NewInternal("generate bill number", err)
	}

	customerName := fmt.Sprintf("customer %d", rental.CustomerID)
	customerEmail, customerPhone := "", ""
	if customer, err := s.customers.GetByID(ctx, rental.CustomerID); err == nil {
		customerName = customer.Name
		customerEmail = customer.Email
		customerPhone = customer.Phone
	}

	rentalID := rental.ID
	bill := &domain.Bill{
		BillNumber:             domain.FormatBillNumber(seqVal),
		Type:                   domain.BillTypeRental,
		RentalID:               &rentalID,
		RentalDurationHours:    dur.Hours,
		DamageCost:             totalDamageCost,
		CustomerID:             rental.CustomerID,
		CustomerName:           customerName,
		CustomerEmail:          customerEmail,
		CustomerPhone:          customerPhone,
		Items:                  billItems,
		Subtotal:               totals.Subtotal,
		DiscountPercent:        totals.DiscountPercent,
		Discount:               totals.Discount,
		TaxPercent:             totals.TaxPercent,
		TaxAmount:              totals.TaxAmount,
		SystemCalculatedAmount: totals.SystemCalculatedAmount,
		CustomizedAmount:       totals.FinalTotal,
		TotalAmount:            totals.FinalTotal,
		PaidAmount:             totalPaid,
		DueAmount:              due,
		PaymentStatus:          payStatus,
		PaymentMethod:          in.PaymentMethod,
		CreatedBy:              in.ActorID,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, domain.NewInternal("create bill", err)
	}
	return bill, nil
}

// creditReturnPayment applies the immediate due payment to the chosen account.
// An inactive account skips the credit without failing the return; the bill
// keeps the payment as recorded either way.
func (s *rentalService) creditReturnPayment(ctx context.Context, bill *domain.Bill, paidNow float64, in ReturnRentalInput) {
	if paidNow <= 0 || in.PaymentAccountID == nil {
		return
	}
	account, err := s.accounts.GetByID(ctx, *in.PaymentAccountID)
	if err != nil {
		logger.Error("lookup payment account failed", "account_id", *in.PaymentAccountID, "bill", bill.BillNumber, "error", err)
		return
	}
	if account.Status != domain.AccountStatusActive {
		logger.Warn("skipping credit to inactive account", "account_id", account.ID, "bill", bill.BillNumber)
		return
	}
	if err := s.accounts.AdjustBalance(ctx, account.ID, paidNow); err != nil {
		logger.Error("credit payment account failed", "account_id", account.ID, "bill", bill.BillNumber, "error", err)
		return
	}
	entry := &domain.PaymentEntry{
		BillID:      bill.ID,
		ReceiptRef:  uuid.NewString(),
		Amount:      paidNow,
		Method:      in.PaymentMethod,
		AccountID:   in.PaymentAccountID,
		PaymentDate: time.Now(),
		RecordedBy:  in.ActorID,
	}
	if err := s.bills.AppendPayment(ctx, entry); err != nil {
		logger.Error("append bill payment failed", "bill", bill.BillNumber, "error", err)
		return
	}
	bill.PaymentHistory = append(bill.PaymentHistory, *entry)
}
