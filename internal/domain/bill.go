package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type BillType string

const (
	BillTypeRental BillType = "rental"
	BillTypeSale   BillType = "sale"
)

// PaymentTolerance is the float tolerance under which a remaining due amount
// counts as fully paid.
const PaymentTolerance = 0.01

// BillLineItem is one flattened charge line on a bill: a rental charge, an
// accessory damage/replacement charge, or a sold-item charge.
type BillLineItem struct {
	ID        int32   `json:"id"`
	BillID    int32   `json:"bill_id"`
	ProductID *int32  `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// PaymentEntry is one row of a bill's append-only payment history.
type PaymentEntry struct {
	ID          int32     `json:"id"`
	BillID      int32     `json:"bill_id"`
	ReceiptRef  string    `json:"receipt_ref"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	AccountID   *int32    `json:"account_id,omitempty"`
	PaymentDate time.Time `json:"payment_date"`
	Notes       string    `json:"notes,omitempty"`
	RecordedBy  *int32    `json:"recorded_by,omitempty"`
}

// Bill is the immutable financial record produced once per completed rental.
// Only the payment fields (PaidAmount, DueAmount, PaymentStatus, history) may
// change after creation. SystemCalculatedAmount is never edited; the gap
// between it and CustomizedAmount is the missing-profit reporting baseline.
type Bill struct {
	ID                     int32          `json:"id"`
	BillNumber             string         `json:"bill_number"` // BILL-NNNNNN
	Type                   BillType       `json:"type"`
	RentalID               *int32         `json:"rental_id,omitempty"`
	RentalDurationHours    int32          `json:"rental_duration_hours"`
	DamageCost             float64        `json:"damage_cost"`
	CustomerID             int32          `json:"customer_id"`
	CustomerName           string         `json:"customer_name"`
	CustomerEmail          string         `json:"customer_email"`
	CustomerPhone          string         `json:"customer_phone"`
	Items                  []BillLineItem `json:"items"`
	Subtotal               float64        `json:"subtotal"`
	DiscountPercent        float64        `json:"discount_percent"`
	Discount               float64        `json:"discount"`
	TaxPercent             float64        `json:"tax_percent"`
	TaxAmount              float64        `json:"tax_amount"`
	SystemCalculatedAmount float64        `json:"system_calculated_amount"`
	CustomizedAmount       float64        `json:"customized_amount"`
	TotalAmount            float64        `json:"total_amount"`
	PaidAmount             float64        `json:"paid_amount"`
	DueAmount              float64        `json:"due_amount"`
	PaymentStatus          PaymentStatus  `json:"payment_status"`
	PaymentMethod          string         `json:"payment_method"`
	PaymentHistory         []PaymentEntry `json:"payment_history"`
	CreatedBy              *int32         `json:"created_by,omitempty"`
	CreatedOn              time.Time      `json:"created_on"`
}

// MissingProfit is the revenue given up via an operator override.
func (b *Bill) MissingProfit() float64 {
	return b.SystemCalculatedAmount - b.CustomizedAmount
}
