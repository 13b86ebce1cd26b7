package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
)

// PaymentDirection tells the reconciler which way money moves through the
// target account. The caller's business context decides it; it is never
// inferred from the bill type.
type PaymentDirection string

const (
	PaymentCredit PaymentDirection = "credit"
	PaymentDebit  PaymentDirection = "debit"
)

type RentalLineInput struct {
	// ItemRef is resolved in two passes: first as a specific unit id, then as
	// a product id from which any available unit is picked.
	ItemRef     int32
	RentType    domain.RentType
	RateAtTime  float64
	Accessories []domain.RentalAccessory
}

type SoldLineInput struct {
	ProductID int32
	Quantity  int32
	Price     float64
}

type CreateRentalInput struct {
	CustomerID         int32
	Lines              []RentalLineInput
	SoldLines          []SoldLineInput
	OutTime            *time.Time
	ExpectedReturnTime *time.Time
	AdvancePayment     float64
	AccessoriesPayment float64
	Notes              string
	ActorID            *int32
}

type ReturnedAccessoryInput struct {
	AccessoryID int32
	Status      domain.AccessoryStatus
	DamageCost  float64
}

type ReturnedLineInput struct {
	UnitID          int32
	ReturnCondition domain.ItemCondition
	DamageCost      float64
	Accessories     []ReturnedAccessoryInput
}

type ReturnRentalInput struct {
	RentalID              int32
	ReturnedLines         []ReturnedLineInput
	PaymentMethod         string
	PaymentAccountID      *int32
	DiscountPercent       float64
	TaxPercent            float64
	PaidDueAmount         float64
	CustomizedTotalAmount *float64
	ActorID               *int32
}

type ApplyPaymentInput struct {
	BillID    int32
	Amount    float64
	Method    string
	AccountID *int32
	Direction PaymentDirection
	Note      string
	ActorID   *int32
}

type InventoryService interface {
	AddUnit(ctx context.Context, item *domain.InventoryItem, actorID *int32) error
	GetUnit(ctx context.Context, id int32) (*domain.InventoryItem, error)
	ListUnits(ctx context.Context, productID int32, archived bool) ([]domain.InventoryItem, error)
	GetUnitHistory(ctx context.Context, id int32) ([]domain.HistoryEntry, error)
	TransitionUnit(ctx context.Context, id int32, status domain.ItemStatus, condition domain.ItemCondition, damageReason, detail string, actorID *int32) error
	ArchiveUnit(ctx context.Context, id int32, archived bool, actorID *int32) error
	DeleteUnit(ctx context.Context, id int32) error
}

type RentalService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, status string, customerID int32) ([]domain.Rental, error)
	ReturnRental(ctx context.Context, in ReturnRentalInput) (*domain.Rental, *domain.Bill, error)
	Stats(ctx context.Context) (*domain.RentalStats, error)
}

type PaymentService interface {
	ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*domain.Bill, error)
	GetBill(ctx context.Context, id int32) (*domain.Bill, error)
	CreateAccount(ctx context.Context, account *domain.PaymentAccount) error
	UpdateAccount(ctx context.Context, account *domain.PaymentAccount) error
	GetAccount(ctx context.Context, id int32) (*domain.PaymentAccount, []domain.AccountTransaction, error)
	ListAccounts(ctx context.Context, status, accountType string) ([]domain.PaymentAccount, error)
}

type AlertService interface {
	ListUnread(ctx context.Context) ([]domain.Notification, error)
}
