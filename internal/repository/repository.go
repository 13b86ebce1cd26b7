package repository

import (
	"context"

	"rentdesk-backend/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int32) (*domain.InventoryItem, error)
	// FindAvailableByID returns the item only if it is available, unarchived
	// and not in excludeIDs. A nil item with nil error means "no match".
	FindAvailableByID(ctx context.Context, id int32, excludeIDs []int32) (*domain.InventoryItem, error)
	// FindAvailableByProduct picks any available, unarchived, unexcluded item
	// of the product. A nil item with nil error means "no stock".
	FindAvailableByProduct(ctx context.Context, productID int32, excludeIDs []int32) (*domain.InventoryItem, error)
	// Claim atomically moves an available item to rented. Returns false when
	// the item was no longer available (lost race or state changed).
	Claim(ctx context.Context, id int32) (bool, error)
	// SetStatus writes status and optionally condition/damage reason in one
	// statement. Empty condition leaves the stored value untouched.
	SetStatus(ctx context.Context, id int32, status domain.ItemStatus, condition domain.ItemCondition, damageReason string) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id int32) error
	SetArchived(ctx context.Context, id int32, archived bool) error
	AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error
	ListHistory(ctx context.Context, itemID int32) ([]domain.HistoryEntry, error)
	ListByProduct(ctx context.Context, productID int32, archived bool) ([]domain.InventoryItem, error)
	// CountByProduct recounts total and available items for the product.
	CountByProduct(ctx context.Context, productID int32) (total, available int32, err error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.RentalProduct, error)
	UpdateQuantities(ctx context.Context, id int32, total, available int32) error
}

type SaleProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.SaleProduct, error)
	// DecrementStock subtracts qty only when enough stock remains; returns
	// false when the conditional update matched no row.
	DecrementStock(ctx context.Context, id int32, qty int32) (bool, error)
	IncrementStock(ctx context.Context, id int32, qty int32) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
}

type AccessoryRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Accessory, error)
	ListByProduct(ctx context.Context, productID int32) ([]domain.Accessory, error)
}

type RentalRepository interface {
	// Create persists the rental header plus its line and sold-item rows as
	// one unit; the caller sees a single write.
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Complete writes the terminal state: return time, status, total, final
	// bill link, and per-line return condition/damage cost.
	Complete(ctx context.Context, rental *domain.Rental) error
	List(ctx context.Context, status string, customerID int32) ([]domain.Rental, error)
	CountByStatus(ctx context.Context, statuses []domain.RentalStatus) (int32, error)
	CompletedRevenue(ctx context.Context) (float64, error)
}

type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, id int32) (*domain.Bill, error)
	AppendPayment(ctx context.Context, entry *domain.PaymentEntry) error
	UpdatePaymentState(ctx context.Context, billID int32, paid, due float64, status domain.PaymentStatus) error
	TotalMissingProfit(ctx context.Context) (float64, error)
	ListTransactionsByAccount(ctx context.Context, accountID int32, limit int32) ([]domain.AccountTransaction, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *domain.PaymentAccount) error
	GetByID(ctx context.Context, id int32) (*domain.PaymentAccount, error)
	GetByName(ctx context.Context, name string) (*domain.PaymentAccount, error)
	Update(ctx context.Context, account *domain.PaymentAccount) error
	List(ctx context.Context, status, accountType string) ([]domain.PaymentAccount, error)
	// AdjustBalance applies a signed delta to current_balance. No floor is
	// enforced; negative balances are accepted business behavior.
	AdjustBalance(ctx context.Context, id int32, delta float64) error
}

type NotificationRepository interface {
	// Upsert creates the alert or refreshes the existing unread one for the
	// same rental and type.
	Upsert(ctx context.Context, note *domain.Notification) error
	ClearForRental(ctx context.Context, rentalID int32, types []domain.NotificationType) error
	ListUnread(ctx context.Context) ([]domain.Notification, error)
}

type SequenceRepository interface {
	// Next atomically increments and returns the named counter, starting at 1.
	Next(ctx context.Context, name string) (int64, error)
}
