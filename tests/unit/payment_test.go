package unit

import (
	"context"
	"database/sql"
	"testing"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentService() (service.PaymentService, *MockBillRepo, *MockAccountRepo) {
	bills := new(MockBillRepo)
	accounts := new(MockAccountRepo)
	return service.NewPaymentService(bills, accounts), bills, accounts
}

func openBill(id int32) *domain.Bill {
	return &domain.Bill{
		ID:            id,
		BillNumber:    "BILL-000009",
		TotalAmount:   118,
		PaidAmount:    18,
		DueAmount:     100,
		PaymentStatus: domain.PaymentStatusPartial,
	}
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	svc, bills, _ := newPaymentService()
	ctx := context.Background()

	_, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{BillID: 9, Amount: 0})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	bills.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	svc, bills, _ := newPaymentService()
	ctx := context.Background()

	bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)

	_, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{BillID: 9, Amount: 150})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "100.00")
	bills.AssertNotCalled(t, "AppendPayment", mock.Anything, mock.Anything)
}

func TestApplyPayment_PartialThenPaid(t *testing.T) {
	svc, bills, _ := newPaymentService()
	ctx := context.Background()

	bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)
	bills.On("AppendPayment", ctx, mock.Anything).Return(nil)
	bills.On("UpdatePaymentState", ctx, int32(9), 58.0, 60.0, domain.PaymentStatusPartial).Return(nil)

	bill, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{BillID: 9, Amount: 40, Method: "cash"})

	assert.NoError(t, err)
	assert.Equal(t, 58.0, bill.PaidAmount)
	assert.Equal(t, 60.0, bill.DueAmount)
	assert.Equal(t, domain.PaymentStatusPartial, bill.PaymentStatus)
	assert.Len(t, bill.PaymentHistory, 1)
	assert.NotEmpty(t, bill.PaymentHistory[0].ReceiptRef)
}

func TestApplyPayment_SettlesWithinTolerance(t *testing.T) {
	svc, bills, _ := newPaymentService()
	ctx := context.Background()

	bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)
	bills.On("AppendPayment", ctx, mock.Anything).Return(nil)
	bills.On("UpdatePaymentState", ctx, int32(9), mock.Anything, mock.Anything, domain.PaymentStatusPaid).Return(nil)

	bill, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{BillID: 9, Amount: 99.995})

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, bill.PaymentStatus)
}

func TestApplyPayment_CreditAndDebitDirections(t *testing.T) {
	t.Run("credit adds to the account", func(t *testing.T) {
		svc, bills, accounts := newPaymentService()
		ctx := context.Background()
		accountID := int32(5)

		bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)
		accounts.On("GetByID", ctx, accountID).Return(&domain.PaymentAccount{ID: 5, Status: domain.AccountStatusActive}, nil)
		accounts.On("AdjustBalance", ctx, accountID, 40.0).Return(nil)
		bills.On("AppendPayment", ctx, mock.Anything).Return(nil)
		bills.On("UpdatePaymentState", ctx, int32(9), mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{
			BillID: 9, Amount: 40, AccountID: &accountID, Direction: service.PaymentCredit,
		})

		assert.NoError(t, err)
		accounts.AssertCalled(t, "AdjustBalance", ctx, accountID, 40.0)
	})

	t.Run("debit subtracts from the account", func(t *testing.T) {
		svc, bills, accounts := newPaymentService()
		ctx := context.Background()
		accountID := int32(5)

		bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)
		accounts.On("GetByID", ctx, accountID).Return(&domain.PaymentAccount{ID: 5, Status: domain.AccountStatusActive}, nil)
		accounts.On("AdjustBalance", ctx, accountID, -40.0).Return(nil)
		bills.On("AppendPayment", ctx, mock.Anything).Return(nil)
		bills.On("UpdatePaymentState", ctx, int32(9), mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{
			BillID: 9, Amount: 40, AccountID: &accountID, Direction: service.PaymentDebit,
		})

		assert.NoError(t, err)
		accounts.AssertCalled(t, "AdjustBalance", ctx, accountID, -40.0)
	})
}

func TestApplyPayment_UnknownAccount(t *testing.T) {
	svc, bills, accounts := newPaymentService()
	ctx := context.Background()
	accountID := int32(77)

	bills.On("GetByID", ctx, int32(9)).Return(openBill(9), nil)
	accounts.On("GetByID", ctx, accountID).Return(nil, sql.ErrNoRows)

	_, err := svc.ApplyPayment(ctx, service.ApplyPaymentInput{BillID: 9, Amount: 40, AccountID: &accountID})

	assert.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	bills.AssertNotCalled(t, "AppendPayment", mock.Anything, mock.Anything)
}

func TestGetBill_NotFound(t *testing.T) {
	svc, bills, _ := newPaymentService()
	ctx := context.Background()

	bills.On("GetByID", ctx, int32(404)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetBill(ctx, 404)

	assert.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateAccount_Defaults(t *testing.T) {
	svc, _, accounts := newPaymentService()
	ctx := context.Background()

	accounts.On("GetByName", ctx, "Till").Return(nil, sql.ErrNoRows)
	accounts.On("Create", ctx, mock.Anything).Return(nil)

	account := &domain.PaymentAccount{Name: "Till", OpeningBalance: 500}
	err := svc.CreateAccount(ctx, account)

	assert.NoError(t, err)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.Equal(t, 500.0, account.CurrentBalance)
}

func TestCreateAccount_DuplicateName(t *testing.T) {
	svc, _, accounts := newPaymentService()
	ctx := context.Background()

	accounts.On("GetByName", ctx, "Till").Return(&domain.PaymentAccount{ID: 1, Name: "Till"}, nil)

	err := svc.CreateAccount(ctx, &domain.PaymentAccount{Name: "Till"})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateAccount_NameRequired(t *testing.T) {
	svc, _, _ := newPaymentService()

	err := svc.CreateAccount(context.Background(), &domain.PaymentAccount{})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateAccount_PreservesOpeningBalance(t *testing.T) {
	svc, _, accounts := newPaymentService()
	ctx := context.Background()

	accounts.On("GetByID", ctx, int32(5)).Return(&domain.PaymentAccount{
		ID: 5, Name: "Till", OpeningBalance: 500,
	}, nil)
	accounts.On("Update", ctx, mock.Anything).Return(nil)

	account := &domain.PaymentAccount{ID: 5, Name: "Till", OpeningBalance: 9999}
	err := svc.UpdateAccount(ctx, account)

	assert.NoError(t, err)
	assert.Equal(t, 500.0, account.OpeningBalance)
}

func TestUpdateAccount_RenameCollision(t *testing.T) {
	svc, _, accounts := newPaymentService()
	ctx := context.Background()

	accounts.On("GetByID", ctx, int32(5)).Return(&domain.PaymentAccount{ID: 5, Name: "Till"}, nil)
	accounts.On("GetByName", ctx, "Safe").Return(&domain.PaymentAccount{ID: 6, Name: "Safe"}, nil)

	err := svc.UpdateAccount(ctx, &domain.PaymentAccount{ID: 5, Name: "Safe"})

	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetAccount_IncludesRecentTransactions(t *testing.T) {
	svc, bills, accounts := newPaymentService()
	ctx := context.Background()

	accounts.On("GetByID", ctx, int32(5)).Return(&domain.PaymentAccount{ID: 5, Name: "Till"}, nil)
	bills.On("ListTransactionsByAccount", ctx, int32(5), int32(50)).Return([]domain.AccountTransaction{
		{BillNumber: "BILL-000009", Amount: 40},
	}, nil)

	account, txs, err := svc.GetAccount(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, "Till", account.Name)
	assert.Len(t, txs, 1)
}
