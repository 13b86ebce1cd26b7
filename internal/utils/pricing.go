package utils

import (
	"math"
	"time"

	"rentdesk-backend/internal/domain"
)

// RentalDuration is the billable elapsed time of a booking. Hours and days are
// both ceiling-rounded with a floor of one unit: a rental returned within the
// same hour still costs one hour.
type RentalDuration struct {
	Hours int32
	Days  int32
}

// BillTotals is the full cost breakdown of a return. SystemCalculatedAmount is
// the formula result and is never replaced; an operator override changes only
// the final tax and total.
type BillTotals struct {
	Subtotal               float64
	DiscountPercent        float64
	Discount               float64
	TaxPercent             float64
	TaxAmount              float64
	SystemCalculatedAmount float64
	FinalTotal             float64
	Overridden             bool
}

// ComputeDuration converts wall-clock elapsed time into billable hours and
// days. Negative elapsed time (clock skew, bad outTime) clamps to zero before
// the one-unit floor applies.
func ComputeDuration(outTime, returnTime time.Time) RentalDuration {
	elapsedMs := returnTime.Sub(outTime).Milliseconds()
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	hours := int64(math.Ceil(float64(elapsedMs) / (1000 * 60 * 60)))
	if hours < 1 {
		hours = 1
	}
	days := int64(math.Ceil(float64(hours) / 24))
	if days < 1 {
		days = 1
	}
	return RentalDuration{Hours: int32(hours), Days: int32(days)}
}

// LineCost prices one rental line from its booking-time rate snapshot. Hourly
// lines bill per hour; daily and monthly lines bill per day.
func LineCost(rentType domain.RentType, rateAtBooking float64, d RentalDuration) float64 {
	var cost float64
	if rentType == domain.RentTypeHourly {
		cost = float64(d.Hours) * rateAtBooking
	} else {
		cost = float64(d.Days) * rateAtBooking
	}
	return CoerceAmount(cost)
}

// CoerceAmount maps NaN and infinities to zero so a bad rate can never poison
// a bill total.
func CoerceAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeTotals applies discount then tax to the combined rental and damage
// cost. A non-nil override is the tax-exclusive base replacing the discounted
// subtotal: tax is recomputed on it, it does not replace the final total
// directly.
func ComputeTotals(rentalCost, damageCost, discountPercent, taxPercent float64, override *float64) BillTotals {
	subtotal := CoerceAmount(rentalCost) + CoerceAmount(damageCost)
	discPercent := CoerceAmount(discountPercent)
	taxPerc := CoerceAmount(taxPercent)

	discount := subtotal * discPercent / 100
	afterDiscount := subtotal - discount
	tax := afterDiscount * taxPerc / 100
	system := afterDiscount + tax

	t := BillTotals{
		Subtotal:               subtotal,
		DiscountPercent:        discPercent,
		Discount:               discount,
		TaxPercent:             taxPerc,
		TaxAmount:              tax,
		SystemCalculatedAmount: system,
		FinalTotal:             system,
	}

	if override != nil && !math.IsNaN(*override) {
		base := *override
		t.TaxAmount = base * taxPerc / 100
		t.FinalTotal = base + t.TaxAmount
		t.Overridden = true
	}
	return t
}

// SettlePayment derives the due amount and payment status after payments have
// been applied against a final total. paidNow distinguishes partial from
// pending when a balance remains.
func SettlePayment(finalTotal, totalPaid, paidNow float64) (float64, domain.PaymentStatus) {
	due := finalTotal - totalPaid
	if due < 0 {
		due = 0
	}
	switch {
	case due <= domain.PaymentTolerance:
		return due, domain.PaymentStatusPaid
	case paidNow > 0:
		return due, domain.PaymentStatusPartial
	default:
		return due, domain.PaymentStatusPending
	}
}
