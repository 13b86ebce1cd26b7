package unit

import (
	"context"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) FindAvailableByID(ctx context.Context, id int32, excludeIDs []int32) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) FindAvailableByProduct(ctx context.Context, productID int32, excludeIDs []int32) (*domain.InventoryItem, error) {
	args := m.Called(ctx, productID, excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) Claim(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) SetStatus(ctx context.Context, id int32, status domain.ItemStatus, condition domain.ItemCondition, damageReason string) error {
	args := m.Called(ctx, id, status, condition, damageReason)
	return args.Error(0)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) SetArchived(ctx context.Context, id int32, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}
func (m *MockItemRepo) AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockItemRepo) ListHistory(ctx context.Context, itemID int32) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}
func (m *MockItemRepo) ListByProduct(ctx context.Context, productID int32, archived bool) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, productID, archived)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) CountByProduct(ctx context.Context, productID int32) (int32, int32, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int32), args.Get(1).(int32), args.Error(2)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.RentalProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalProduct), args.Error(1)
}
func (m *MockProductRepo) UpdateQuantities(ctx context.Context, id int32, total, available int32) error {
	args := m.Called(ctx, id, total, available)
	return args.Error(0)
}

// MockSaleProductRepo
type MockSaleProductRepo struct {
	mock.Mock
}

func (m *MockSaleProductRepo) GetByID(ctx context.Context, id int32) (*domain.SaleProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleProduct), args.Error(1)
}
func (m *MockSaleProductRepo) DecrementStock(ctx context.Context, id int32, qty int32) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}
func (m *MockSaleProductRepo) IncrementStock(ctx context.Context, id int32, qty int32) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// MockAccessoryRepo
type MockAccessoryRepo struct {
	mock.Mock
}

func (m *MockAccessoryRepo) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}
func (m *MockAccessoryRepo) ListByProduct(ctx context.Context, productID int32) ([]domain.Accessory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Complete(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, status string, customerID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, status, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) CountByStatus(ctx context.Context, statuses []domain.RentalStatus) (int32, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRentalRepo) CompletedRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// MockBillRepo
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) Create(ctx context.Context, bill *domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}
func (m *MockBillRepo) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillRepo) AppendPayment(ctx context.Context, entry *domain.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockBillRepo) UpdatePaymentState(ctx context.Context, billID int32, paid, due float64, status domain.PaymentStatus) error {
	args := m.Called(ctx, billID, paid, due, status)
	return args.Error(0)
}
func (m *MockBillRepo) TotalMissingProfit(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
func (m *MockBillRepo) ListTransactionsByAccount(ctx context.Context, accountID int32, limit int32) ([]domain.AccountTransaction, error) {
	args := m.Called(ctx, accountID, limit)
	return args.Get(0).([]domain.AccountTransaction), args.Error(1)
}

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.PaymentAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.PaymentAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAccount), args.Error(1)
}
func (m *MockAccountRepo) GetByName(ctx context.Context, name string) (*domain.PaymentAccount, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAccount), args.Error(1)
}
func (m *MockAccountRepo) Update(ctx context.Context, account *domain.PaymentAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) List(ctx context.Context, status, accountType string) ([]domain.PaymentAccount, error) {
	args := m.Called(ctx, status, accountType)
	return args.Get(0).([]domain.PaymentAccount), args.Error(1)
}
func (m *MockAccountRepo) AdjustBalance(ctx context.Context, id int32, delta float64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Upsert(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ClearForRental(ctx context.Context, rentalID int32, types []domain.NotificationType) error {
	args := m.Called(ctx, rentalID, types)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

// MockSequenceRepo
type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
