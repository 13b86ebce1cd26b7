package domain

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusOverdue   RentalStatus = "overdue"
	RentalStatusCancelled RentalStatus = "cancelled"
)

type RentType string

const (
	RentTypeHourly  RentType = "hourly"
	RentTypeDaily   RentType = "daily"
	RentTypeMonthly RentType = "monthly"
)

// RentalAccessory is the per-booking snapshot of an accessory checked out with
// a line item. Reconciled independently of the parent item at return.
type RentalAccessory struct {
	AccessoryID         int32           `json:"accessory_id"`
	Name                string          `json:"name"`
	SerialNumber        string          `json:"serial_number,omitempty"`
	CheckedOutCondition string          `json:"checked_out_condition,omitempty"`
	Status              AccessoryStatus `json:"status"`
}

// RentalLineItem binds one inventory item to a rental, with the rate frozen at
// booking time. Later product price changes never affect an open booking.
type RentalLineItem struct {
	ID              int32             `json:"id"`
	RentalID        int32             `json:"rental_id"`
	ItemID          int32             `json:"item_id"`
	RentAtTime      float64           `json:"rent_at_time"`
	RentType        RentType          `json:"rent_type"`
	ReturnCondition ItemCondition     `json:"return_condition,omitempty"`
	DamageCost      float64           `json:"damage_cost"`
	Accessories     []RentalAccessory `json:"accessories"`
}

// SoldLineItem is an outright-sale line. Stock is decremented at booking time,
// not at return.
type SoldLineItem struct {
	ID        int32   `json:"id"`
	RentalID  int32   `json:"rental_id"`
	ProductID int32   `json:"product_id"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

type Rental struct {
	ID                 int32            `json:"id"`
	RentalNumber       string           `json:"rental_number"` // RENT-NNNNNN
	CustomerID         int32            `json:"customer_id"`
	Items              []RentalLineItem `json:"items"`
	SoldItems          []SoldLineItem   `json:"sold_items"`
	OutTime            time.Time        `json:"out_time"`
	ExpectedReturnTime *time.Time       `json:"expected_return_time,omitempty"`
	ReturnTime         *time.Time       `json:"return_time,omitempty"`
	Status             RentalStatus     `json:"status"`
	AdvancePayment     float64          `json:"advance_payment"`
	AccessoriesPayment float64          `json:"accessories_payment"`
	TotalAmount        float64          `json:"total_amount"`
	FinalBillID        *int32           `json:"final_bill_id,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	CreatedBy          *int32           `json:"created_by,omitempty"`
	CreatedOn          time.Time        `json:"created_on"`
	UpdatedOn          time.Time        `json:"updated_on"`
}

// FormatRentalNumber renders a sequence value as the human-readable booking id.
func FormatRentalNumber(seq int64) string {
	return fmt.Sprintf("RENT-%06d", seq)
}

// FormatBillNumber renders a sequence value as the human-readable bill id.
func FormatBillNumber(seq int64) string {
	return fmt.Sprintf("BILL-%06d", seq)
}
