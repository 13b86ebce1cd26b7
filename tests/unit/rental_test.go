package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type rentalMocks struct {
	rentals      *MockRentalRepo
	items        *MockItemRepo
	products     *MockProductRepo
	saleProducts *MockSaleProductRepo
	customers    *MockCustomerRepo
	accessories  *MockAccessoryRepo
	bills        *MockBillRepo
	accounts     *MockAccountRepo
	notes        *MockNotificationRepo
	seq          *MockSequenceRepo
}

func newRentalService() (service.RentalService, *rentalMocks) {
	m := &rentalMocks{
		rentals:      new(MockRentalRepo),
		items:        new(MockItemRepo),
		products:     new(MockProductRepo),
		saleProducts: new(MockSaleProductRepo),
		customers:    new(MockCustomerRepo),
		accessories:  new(MockAccessoryRepo),
		bills:        new(MockBillRepo),
		accounts:     new(MockAccountRepo),
		notes:        new(MockNotificationRepo),
		seq:          new(MockSequenceRepo),
	}
	svc := service.NewRentalService(
		m.rentals, m.items, m.products, m.saleProducts, m.customers,
		m.accessories, m.bills, m.accounts, m.notes, m.seq,
	)
	return svc, m
}

func activeCustomer(id int32) *domain.Customer {
	return &domain.Customer{ID: id, Name: "Asha Traders", Status: domain.CustomerStatusActive}
}

func TestCreateRental_BlockedCustomer(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(7)).Return(&domain.Customer{
		ID: 7, Name: "Blocked Co", Status: domain.CustomerStatusBlocked,
	}, nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 7,
		Lines:      []service.RentalLineInput{{ItemRef: 1, RentType: domain.RentTypeHourly, RateAtTime: 50}},
	})

	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	// No unit lookup happens once the customer is rejected.
	m.items.AssertNotCalled(t, "FindAvailableByID", mock.Anything, mock.Anything, mock.Anything)
	m.items.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestCreateRental_CustomerNotFound(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(99)).Return(nil, sql.ErrNoRows)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{CustomerID: 99})
	assert.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateRental_FutureOutTime(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)

	future := time.Now().Add(2 * time.Hour)
	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		OutTime:    &future,
		Lines:      []service.RentalLineInput{{ItemRef: 1}},
	})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateRental_EmptyBooking(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{CustomerID: 1})
	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateRental_Success(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	unit := &domain.InventoryItem{ID: 11, ProductID: 3, UniqueIdentifier: "RI-3-0001", Status: domain.ItemStatusAvailable}

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.items.On("FindAvailableByID", ctx, int32(11), mock.Anything).Return(unit, nil)
	m.items.On("Claim", ctx, int32(11)).Return(true, nil)
	m.seq.On("Next", ctx, "rental").Return(int64(42), nil)
	m.rentals.On("Create", ctx, mock.Anything).Return(nil)
	m.items.On("AppendHistory", ctx, mock.Anything).Return(nil)
	m.items.On("CountByProduct", ctx, int32(3)).Return(int32(5), int32(4), nil)
	m.products.On("UpdateQuantities", ctx, int32(3), int32(5), int32(4)).Return(nil)

	rental, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		Lines:      []service.RentalLineInput{{ItemRef: 11, RentType: domain.RentTypeHourly, RateAtTime: 50}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "RENT-000042", rental.RentalNumber)
	assert.Equal(t, domain.RentalStatusActive, rental.Status)
	assert.Len(t, rental.Items, 1)
	assert.Equal(t, int32(11), rental.Items[0].ItemID)
	assert.Equal(t, 50.0, rental.Items[0].RentAtTime)
	m.items.AssertCalled(t, "Claim", ctx, int32(11))
}

func TestCreateRental_NoStockNamesProduct(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.items.On("FindAvailableByID", ctx, int32(3), mock.Anything).Return(nil, nil)
	m.items.On("FindAvailableByProduct", ctx, int32(3), mock.Anything).Return(nil, nil)
	m.products.On("GetByID", ctx, int32(3)).Return(&domain.RentalProduct{ID: 3, Name: "Angle Grinder"}, nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		Lines:      []service.RentalLineInput{{ItemRef: 3, RentType: domain.RentTypeDaily, RateAtTime: 200}},
	})

	assert.Error(t, err)
	assert.Equal(t, domain.KindNoStock, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Angle Grinder")
	m.rentals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRental_AllOrNone(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	first := &domain.InventoryItem{ID: 21, ProductID: 5, UniqueIdentifier: "RI-5-0001", Status: domain.ItemStatusAvailable}

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.items.On("FindAvailableByID", ctx, int32(21), mock.Anything).Return(first, nil)
	m.items.On("Claim", ctx, int32(21)).Return(true, nil)
	// Second line resolves to nothing.
	m.items.On("FindAvailableByID", ctx, int32(6), mock.Anything).Return(nil, nil)
	m.items.On("FindAvailableByProduct", ctx, int32(6), mock.Anything).Return(nil, nil)
	m.products.On("GetByID", ctx, int32(6)).Return(&domain.RentalProduct{ID: 6, Name: "Tile Cutter"}, nil)
	// The first claim must be reverted.
	m.items.On("SetStatus", ctx, int32(21), domain.ItemStatusAvailable, domain.ItemCondition(""), "").Return(nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		Lines: []service.RentalLineInput{
			{ItemRef: 21, RentType: domain.RentTypeHourly, RateAtTime: 50},
			{ItemRef: 6, RentType: domain.RentTypeHourly, RateAtTime: 30},
		},
	})

	assert.Error(t, err)
	assert.Equal(t, domain.KindNoStock, domain.KindOf(err))
	m.items.AssertCalled(t, "SetStatus", ctx, int32(21), domain.ItemStatusAvailable, domain.ItemCondition(""), "")
	m.rentals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRental_SoldLineInsufficientStock(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.saleProducts.On("GetByID", ctx, int32(9)).Return(&domain.SaleProduct{ID: 9, Name: "Cutting Disc", Price: 40, Quantity: 2}, nil)
	m.saleProducts.On("DecrementStock", ctx, int32(9), int32(5)).Return(false, nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		SoldLines:  []service.SoldLineInput{{ProductID: 9, Quantity: 5, Price: 40}},
	})

	assert.Error(t, err)
	assert.Equal(t, domain.KindNoStock, domain.KindOf(err))
	assert.Contains(t, err.Error(), "Cutting Disc")
	// Fail-fast: no unit was touched.
	m.items.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestCreateRental_SoldStockRestoredWhenAllocationFails(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.saleProducts.On("GetByID", ctx, int32(9)).Return(&domain.SaleProduct{ID: 9, Name: "Cutting Disc", Price: 40, Quantity: 10}, nil)
	m.saleProducts.On("DecrementStock", ctx, int32(9), int32(2)).Return(true, nil)
	m.items.On("FindAvailableByID", ctx, int32(4), mock.Anything).Return(nil, nil)
	m.items.On("FindAvailableByProduct", ctx, int32(4), mock.Anything).Return(nil, nil)
	m.products.On("GetByID", ctx, int32(4)).Return(&domain.RentalProduct{ID: 4, Name: "Demolition Hammer"}, nil)
	m.saleProducts.On("IncrementStock", ctx, int32(9), int32(2)).Return(nil)

	_, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		Lines:      []service.RentalLineInput{{ItemRef: 4, RentType: domain.RentTypeDaily, RateAtTime: 600}},
		SoldLines:  []service.SoldLineInput{{ProductID: 9, Quantity: 2, Price: 40}},
	})

	assert.Error(t, err)
	m.saleProducts.AssertCalled(t, "IncrementStock", ctx, int32(9), int32(2))
}

func TestCreateRental_ClaimRaceFallsBackToAnotherUnit(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	contested := &domain.InventoryItem{ID: 31, ProductID: 8, Status: domain.ItemStatusAvailable}
	fallback := &domain.InventoryItem{ID: 32, ProductID: 8, Status: domain.ItemStatusAvailable}

	m.customers.On("GetByID", ctx, int32(1)).Return(activeCustomer(1), nil)
	m.items.On("FindAvailableByID", ctx, int32(31), mock.Anything).Return(contested, nil)
	m.items.On("Claim", ctx, int32(31)).Return(false, nil)
	m.items.On("FindAvailableByProduct", ctx, int32(31), mock.Anything).Return(fallback, nil)
	m.items.On("Claim", ctx, int32(32)).Return(true, nil)
	m.seq.On("Next", ctx, "rental").Return(int64(1), nil)
	m.rentals.On("Create", ctx, mock.Anything).Return(nil)
	m.items.On("AppendHistory", ctx, mock.Anything).Return(nil)
	m.items.On("CountByProduct", ctx, int32(8)).Return(int32(2), int32(0), nil)
	m.products.On("UpdateQuantities", ctx, int32(8), int32(2), int32(0)).Return(nil)

	rental, err := svc.CreateRental(ctx, service.CreateRentalInput{
		CustomerID: 1,
		Lines:      []service.RentalLineInput{{ItemRef: 31, RentType: domain.RentTypeHourly, RateAtTime: 80}},
	})

	assert.NoError(t, err)
	assert.Equal(t, int32(32), rental.Items[0].ItemID)
}

func TestStats(t *testing.T) {
	svc, m := newRentalService()
	ctx := context.Background()

	m.rentals.On("CountByStatus", ctx, []domain.RentalStatus{domain.RentalStatusActive, domain.RentalStatusOverdue}).Return(int32(4), nil)
	m.rentals.On("CountByStatus", ctx, []domain.RentalStatus{domain.RentalStatusCompleted}).Return(int32(12), nil)
	m.rentals.On("CompletedRevenue", ctx).Return(4520.0, nil)
	m.bills.On("TotalMissingProfit", ctx).Return(380.0, nil)

	stats, err := svc.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int32(4), stats.ActiveRentals)
	assert.Equal(t, int32(12), stats.CompletedRentals)
	assert.Equal(t, 4520.0, stats.TotalRevenue)
	assert.Equal(t, 380.0, stats.TotalMissingProfit)
}
