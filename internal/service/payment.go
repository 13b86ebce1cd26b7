package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/utils"

	"github.com/google/uuid"
)

type paymentService struct {
	bills    repository.BillRepository
	accounts repository.AccountRepository
}

func NewPaymentService(bills repository.BillRepository, accounts repository.AccountRepository) PaymentService {
	return &paymentService{bills: bills, accounts: accounts}
}

// ApplyPayment settles part or all of a bill's due balance and moves the money
// through the chosen account. The history entry and the balance mutation are
// one logical unit; the bill's paid/due/status are recomputed with the same
// formula the return calculator uses.
func (s *paymentService) ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*domain.Bill, error) {
	if in.Amount <= 0 {
		return nil, domain.NewValidation("payment amount must be greater than zero")
	}

	bill, err := s.GetBill(ctx, in.BillID)
	if err != nil {
		return nil, err
	}
	if in.Amount > bill.DueAmount+domain.PaymentTolerance {
		return nil, domain.NewValidation("payment amount exceeds due balance; maximum allowed is %.2f", bill.DueAmount)
	}

	if in.AccountID != nil {
		account, err := s.accounts.GetByID(ctx, *in.AccountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, domain.NewNotFound("payment account", *in.AccountID)
			}
			return nil, domain.NewInternal("lookup payment account", err)
		}
		delta := in.Amount
		if in.Direction == PaymentDebit {
			delta = -in.Amount
		}
		if err := s.accounts.AdjustBalance(ctx, account.ID, delta); err != nil {
			return nil, domain.NewInternal("adjust account balance", err)
		}
	}

	entry := &domain.PaymentEntry{
		BillID:      bill.ID,
		ReceiptRef:  uuid.NewString(),
		Amount:      in.Amount,
		Method:      in.Method,
		AccountID:   in.AccountID,
		PaymentDate: time.Now(),
		Notes:       in.Note,
		RecordedBy:  in.ActorID,
	}
	if err := s.bills.AppendPayment(ctx, entry); err != nil {
		return nil, domain.NewInternal("append payment history", err)
	}

	newPaid := bill.PaidAmount + in.Amount
	due, status := utils.SettlePayment(bill.TotalAmount, newPaid, in.Amount)
	if err := s.bills.UpdatePaymentState(ctx, bill.ID, newPaid, due, status); err != nil {
		return nil, domain.NewInternal("update bill payment state", err)
	}

	bill.PaidAmount = newPaid
	bill.DueAmount = due
	bill.PaymentStatus = status
	bill.PaymentHistory = append(bill.PaymentHistory, *entry)
	return bill, nil
}

func (s *paymentService) GetBill(ctx context.Context, id int32) (*domain.Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("bill", id)
		}
		return nil, domain.NewInternal("lookup bill", err)
	}
	return bill, nil
}

func (s *paymentService) CreateAccount(ctx context.Context, account *domain.PaymentAccount) error {
	if account.Name == "" {
		return domain.NewValidation("account name is required")
	}
	existing, err := s.accounts.GetByName(ctx, account.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.NewInternal("check account name", err)
	}
	if existing != nil {
		return domain.NewValidation("account name already exists: %s", account.Name)
	}

	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}
	account.CurrentBalance = account.OpeningBalance
	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.NewInternal("create payment account", err)
	}
	return nil
}

func (s *paymentService) UpdateAccount(ctx context.Context, account *domain.PaymentAccount) error {
	existing, err := s.accounts.GetByID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("payment account", account.ID)
		}
		return domain.NewInternal("lookup payment account", err)
	}
	if account.Name != existing.Name {
		dup, err := s.accounts.GetByName(ctx, account.Name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return domain.NewInternal("check account name", err)
		}
		if dup != nil && dup.ID != account.ID {
			return domain.NewValidation("account name already exists: %s", account.Name)
		}
	}

	// Opening balance is fixed at creation; silently carry the stored value.
	account.OpeningBalance = existing.OpeningBalance
	if err := s.accounts.Update(ctx, account); err != nil {
		return domain.NewInternal("update payment account", err)
	}
	return nil
}

func (s *paymentService) GetAccount(ctx context.Context, id int32) (*domain.PaymentAccount, []domain.AccountTransaction, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.NewNotFound("payment account", id)
		}
		return nil, nil, domain.NewInternal("lookup payment account", err)
	}
	txs, err := s.bills.ListTransactionsByAccount(ctx, id, 50)
	if err != nil {
		return nil, nil, domain.NewInternal(fmt.Sprintf("list transactions for account %d", id), err)
	}
	return account, txs, nil
}

func (s *paymentService) ListAccounts(ctx context.Context, status, accountType string) ([]domain.PaymentAccount, error) {
	accounts, err := s.accounts.List(ctx, status, accountType)
	if err != nil {
		return nil, domain.NewInternal("list payment accounts", err)
	}
	return accounts, nil
}
