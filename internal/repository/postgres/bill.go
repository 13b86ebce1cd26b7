package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) repository.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, b *domain.Bill) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bills (bill_number, type, rental_id, rental_duration_hours, damage_cost, customer_id, customer_name, customer_email, customer_phone,
	              subtotal, discount_percent, discount, tax_percent, tax_amount, system_calculated_amount, customized_amount,
	              total_amount, paid_amount, due_amount, payment_status, payment_method, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23) RETURNING id`
	err = tx.QueryRowContext(ctx, query, b.BillNumber, b.Type, b.RentalID, b.RentalDurationHours, b.DamageCost,
		b.CustomerID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Subtotal, b.DiscountPercent, b.Discount, b.TaxPercent, b.TaxAmount, b.SystemCalculatedAmount, b.CustomizedAmount,
		b.TotalAmount, b.PaidAmount, b.DueAmount, b.PaymentStatus, b.PaymentMethod, b.CreatedBy, time.Now()).Scan(&b.ID)
	if err != nil {
		return err
	}

	for i := range b.Items {
		item := &b.Items[i]
		item.BillID = b.ID
		itemQuery := `INSERT INTO bill_line_items (bill_id, product_id, name, quantity, price, total)
		              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		if err := tx.QueryRowContext(ctx, itemQuery, b.ID, item.ProductID, item.Name, item.Quantity, item.Price, item.Total).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *billRepository) GetByID(ctx context.Context, id int32) (*domain.Bill, error) {
	b := &domain.Bill{}
	query := `SELECT id, bill_number, type, rental_id, rental_duration_hours, damage_cost, customer_id, customer_name,
	                 COALESCE(customer_email, ''), COALESCE(customer_phone, ''),
	                 subtotal, discount_percent, discount, tax_percent, tax_amount, system_calculated_amount, customized_amount,
	                 total_amount, paid_amount, due_amount, payment_status, payment_method, created_by, created_on
	          FROM bills WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.BillNumber, &b.Type, &b.RentalID, &b.RentalDurationHours,
		&b.DamageCost, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Subtotal, &b.DiscountPercent, &b.Discount, &b.TaxPercent, &b.TaxAmount, &b.SystemCalculatedAmount, &b.CustomizedAmount,
		&b.TotalAmount, &b.PaidAmount, &b.DueAmount, &b.PaymentStatus, &b.PaymentMethod, &b.CreatedBy, &b.CreatedOn)
	if err != nil {
		return nil, err
	}

	itemQuery := `SELECT id, bill_id, product_id, name, quantity, price, total FROM bill_line_items WHERE bill_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.BillLineItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.ProductID, &item.Name, &item.Quantity, &item.Price, &item.Total); err != nil {
			return nil, err
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	payQuery := `SELECT id, bill_id, receipt_ref, amount, method, account_id, payment_date, COALESCE(notes, ''), recorded_by
	             FROM bill_payments WHERE bill_id = $1 ORDER BY payment_date, id`
	payRows, err := r.db.QueryContext(ctx, payQuery, id)
	if err != nil {
		return nil, err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p domain.PaymentEntry
		if err := payRows.Scan(&p.ID, &p.BillID, &p.ReceiptRef, &p.Amount, &p.Method, &p.AccountID, &p.PaymentDate, &p.Notes, &p.RecordedBy); err != nil {
			return nil, err
		}
		b.PaymentHistory = append(b.PaymentHistory, p)
	}
	return b, payRows.Err()
}

func (r *billRepository) AppendPayment(ctx context.Context, e *domain.PaymentEntry) error {
	query := `INSERT INTO bill_payments (bill_id, receipt_ref, amount, method, account_id, payment_date, notes, recorded_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.BillID, e.ReceiptRef, e.Amount, e.Method, e.AccountID, e.PaymentDate, nullString(e.Notes), e.RecordedBy).Scan(&e.ID)
}

func (r *billRepository) UpdatePaymentState(ctx context.Context, billID int32, paid, due float64, status domain.PaymentStatus) error {
	query := `UPDATE bills SET paid_amount = $1, due_amount = $2, payment_status = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, paid, due, status, billID)
	return err
}

func (r *billRepository) TotalMissingProfit(ctx context.Context) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(system_calculated_amount - customized_amount), 0) FROM bills WHERE type = 'rental'`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}

func (r *billRepository) ListTransactionsByAccount(ctx context.Context, accountID int32, limit int32) ([]domain.AccountTransaction, error) {
	query := `SELECT p.bill_id, b.bill_number, p.amount, p.method, p.payment_date, COALESCE(p.notes, '')
	          FROM bill_payments p JOIN bills b ON b.id = p.bill_id
	          WHERE p.account_id = $1 ORDER BY p.payment_date DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.AccountTransaction
	for rows.Next() {
		var t domain.AccountTransaction
		if err := rows.Scan(&t.BillID, &t.BillNumber, &t.Amount, &t.Method, &t.PaymentDate, &t.Notes); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
