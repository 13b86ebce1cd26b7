package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

// Create writes the rental header, line items, per-line accessory snapshots
// and sold-item rows inside one transaction so the booking appears as a
// single persisted write to the caller.
func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO rentals (rental_number, customer_id, out_time, expected_return_time, status, advance_payment, accessories_payment, total_amount, notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err = tx.QueryRowContext(ctx, query, rt.RentalNumber, rt.CustomerID, rt.OutTime, rt.ExpectedReturnTime,
		rt.Status, rt.AdvancePayment, rt.AccessoriesPayment, rt.TotalAmount, nullString(rt.Notes), rt.CreatedBy, now, now).Scan(&rt.ID)
	if err != nil {
		return err
	}

	for i := range rt.Items {
		line := &rt.Items[i]
		line.RentalID = rt.ID
		lineQuery := `INSERT INTO rental_line_items (rental_id, item_id, rent_at_time, rent_type, damage_cost)
		              VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.QueryRowContext(ctx, lineQuery, rt.ID, line.ItemID, line.RentAtTime, line.RentType, line.DamageCost).Scan(&line.ID); err != nil {
			return err
		}
		for _, acc := range line.Accessories {
			accQuery := `INSERT INTO rental_line_accessories (line_id, accessory_id, name, serial_number, checked_out_condition, status)
			             VALUES ($1, $2, $3, $4, $5, $6)`
			if _, err := tx.ExecContext(ctx, accQuery, line.ID, acc.AccessoryID, acc.Name, nullString(acc.SerialNumber), nullString(acc.CheckedOutCondition), acc.Status); err != nil {
				return err
			}
		}
	}

	for i := range rt.SoldItems {
		sold := &rt.SoldItems[i]
		sold.RentalID = rt.ID
		soldQuery := `INSERT INTO rental_sold_items (rental_id, product_id, quantity, price, total)
		              VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.QueryRowContext(ctx, soldQuery, rt.ID, sold.ProductID, sold.Quantity, sold.Price, sold.Total).Scan(&sold.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const rentalColumns = `id, rental_number, customer_id, out_time, expected_return_time, return_time, status,
	advance_payment, accessories_payment, total_amount, final_bill_id, COALESCE(notes, ''), created_by, created_on, updated_on`

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.RentalNumber, &rt.CustomerID, &rt.OutTime, &rt.ExpectedReturnTime, &rt.ReturnTime,
		&rt.Status, &rt.AdvancePayment, &rt.AccessoriesPayment, &rt.TotalAmount, &rt.FinalBillID, &rt.Notes,
		&rt.CreatedBy, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt, err := scanRental(r.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, rt); err != nil {
		return nil, err
	}
	if err := r.loadSoldItems(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) loadLines(ctx context.Context, rt *domain.Rental) error {
	query := `SELECT id, rental_id, item_id, rent_at_time, rent_type, COALESCE(return_condition, ''), damage_cost
	          FROM rental_line_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, rt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var line domain.RentalLineItem
		if err := rows.Scan(&line.ID, &line.RentalID, &line.ItemID, &line.RentAtTime, &line.RentType, &line.ReturnCondition, &line.DamageCost); err != nil {
			return err
		}
		rt.Items = append(rt.Items, line)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range rt.Items {
		accQuery := `SELECT accessory_id, name, COALESCE(serial_number, ''), COALESCE(checked_out_condition, ''), status
		             FROM rental_line_accessories WHERE line_id = $1 ORDER BY accessory_id`
		accRows, err := r.db.QueryContext(ctx, accQuery, rt.Items[i].ID)
		if err != nil {
			return err
		}
		for accRows.Next() {
			var acc domain.RentalAccessory
			if err := accRows.Scan(&acc.AccessoryID, &acc.Name, &acc.SerialNumber, &acc.CheckedOutCondition, &acc.Status); err != nil {
				accRows.Close()
				return err
			}
			rt.Items[i].Accessories = append(rt.Items[i].Accessories, acc)
		}
		if err := accRows.Err(); err != nil {
			accRows.Close()
			return err
		}
		accRows.Close()
	}
	return nil
}

func (r *rentalRepository) loadSoldItems(ctx context.Context, rt *domain.Rental) error {
	query := `SELECT id, rental_id, product_id, quantity, price, total FROM rental_sold_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, rt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var sold domain.SoldLineItem
		if err := rows.Scan(&sold.ID, &sold.RentalID, &sold.ProductID, &sold.Quantity, &sold.Price, &sold.Total); err != nil {
			return err
		}
		rt.SoldItems = append(rt.SoldItems, sold)
	}
	return rows.Err()
}

// Complete writes the terminal rental state together with the per-line return
// results. Completion is one-way; callers must check the status beforehand.
func (r *rentalRepository) Complete(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE rentals SET return_time=$1, status=$2, total_amount=$3, final_bill_id=$4, updated_on=$5 WHERE id=$6`
	if _, err := tx.ExecContext(ctx, query, rt.ReturnTime, rt.Status, rt.TotalAmount, rt.FinalBillID, time.Now(), rt.ID); err != nil {
		return err
	}

	for i := range rt.Items {
		line := &rt.Items[i]
		lineQuery := `UPDATE rental_line_items SET return_condition = NULLIF($1, ''), damage_cost = $2 WHERE id = $3`
		if _, err := tx.ExecContext(ctx, lineQuery, string(line.ReturnCondition), line.DamageCost, line.ID); err != nil {
			return err
		}
		for _, acc := range line.Accessories {
			accQuery := `UPDATE rental_line_accessories SET status = $1 WHERE line_id = $2 AND accessory_id = $3`
			if _, err := tx.ExecContext(ctx, accQuery, acc.Status, line.ID, acc.AccessoryID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *rentalRepository) List(ctx context.Context, status string, customerID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	var args []interface{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if customerID != 0 {
		if len(args) == 0 {
			query += fmt.Sprintf(" WHERE customer_id = $%d", argIdx)
		} else {
			query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		}
		args = append(args, customerID)
	}
	query += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) CountByStatus(ctx context.Context, statuses []domain.RentalStatus) (int32, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rentals WHERE status = ANY($1)`, pq.Array(strs)).Scan(&count)
	return count, err
}

func (r *rentalRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total_amount), 0) FROM rentals WHERE status = 'completed'`).Scan(&total)
	return total, err
}
