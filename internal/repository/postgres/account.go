package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, name, account_type, COALESCE(account_number, ''), COALESCE(bank_name, ''), COALESCE(ifsc_code, ''),
	COALESCE(upi_id, ''), opening_balance, current_balance, status, COALESCE(description, ''), created_by, created_on, updated_on`

func scanAccount(row interface{ Scan(...any) error }) (*domain.PaymentAccount, error) {
	a := &domain.PaymentAccount{}
	err := row.Scan(&a.ID, &a.Name, &a.AccountType, &a.AccountNumber, &a.BankName, &a.IFSCCode,
		&a.UPIID, &a.OpeningBalance, &a.CurrentBalance, &a.Status, &a.Description, &a.CreatedBy, &a.CreatedOn, &a.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) Create(ctx context.Context, a *domain.PaymentAccount) error {
	query := `INSERT INTO payment_accounts (name, account_type, account_number, bank_name, ifsc_code, upi_id, opening_balance, current_balance, status, description, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, a.Name, a.AccountType, nullString(a.AccountNumber), nullString(a.BankName),
		nullString(a.IFSCCode), nullString(a.UPIID), a.OpeningBalance, a.CurrentBalance, a.Status, nullString(a.Description),
		a.CreatedBy, now, now).Scan(&a.ID)
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentAccount, error) {
	return scanAccount(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM payment_accounts WHERE id = $1`, id))
}

func (r *accountRepository) GetByName(ctx context.Context, name string) (*domain.PaymentAccount, error) {
	return scanAccount(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM payment_accounts WHERE name = $1`, name))
}

func (r *accountRepository) Update(ctx context.Context, a *domain.PaymentAccount) error {
	query := `UPDATE payment_accounts SET name=$1, account_number=NULLIF($2, ''), bank_name=NULLIF($3, ''), ifsc_code=NULLIF($4, ''),
	              upi_id=NULLIF($5, ''), status=$6, description=NULLIF($7, ''), updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, a.Name, a.AccountNumber, a.BankName, a.IFSCCode, a.UPIID, a.Status, a.Description, time.Now(), a.ID)
	return err
}

func (r *accountRepository) List(ctx context.Context, status, accountType string) ([]domain.PaymentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM payment_accounts`
	var args []interface{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if accountType != "" {
		if len(args) == 0 {
			query += fmt.Sprintf(" WHERE account_type = $%d", argIdx)
		} else {
			query += fmt.Sprintf(" AND account_type = $%d", argIdx)
		}
		args = append(args, accountType)
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.PaymentAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) AdjustBalance(ctx context.Context, id int32, delta float64) error {
	query := `UPDATE payment_accounts SET current_balance = current_balance + $1, updated_on = NOW() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, delta, id)
	return err
}
