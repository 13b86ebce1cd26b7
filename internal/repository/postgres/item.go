package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/lib/pq"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, product_id, unique_identifier, COALESCE(serial_number, ''), status, condition,
	COALESCE(damage_reason, ''), is_archived, COALESCE(purchase_cost, 0), purchase_date,
	COALESCE(batch_number, ''), COALESCE(notes, ''), created_on, updated_on`

func scanItem(row interface{ Scan(...any) error }) (*domain.InventoryItem, error) {
	it := &domain.InventoryItem{}
	err := row.Scan(&it.ID, &it.ProductID, &it.UniqueIdentifier, &it.SerialNumber, &it.Status, &it.Condition,
		&it.DamageReason, &it.IsArchived, &it.PurchaseCost, &it.PurchaseDate,
		&it.BatchNumber, &it.Notes, &it.CreatedOn, &it.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Create(ctx context.Context, it *domain.InventoryItem) error {
	query := `INSERT INTO rental_items (product_id, unique_identifier, serial_number, status, condition, damage_reason, is_archived, purchase_cost, purchase_date, batch_number, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, it.ProductID, it.UniqueIdentifier, nullString(it.SerialNumber),
		it.Status, it.Condition, nullString(it.DamageReason), it.IsArchived, it.PurchaseCost, it.PurchaseDate,
		nullString(it.BatchNumber), nullString(it.Notes), now, now).Scan(&it.ID)
	if err != nil {
		return err
	}
	for i := range it.Accessories {
		if err := r.insertAccessory(ctx, it.ID, &it.Accessories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *itemRepository) insertAccessory(ctx context.Context, itemID int32, acc *domain.AccessoryAttachment) error {
	query := `INSERT INTO item_accessories (item_id, accessory_id, name, serial_number, condition, is_included, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, itemID, acc.AccessoryID, acc.Name, nullString(acc.SerialNumber), acc.Condition, acc.IsIncluded, acc.Status)
	return err
}

func (r *itemRepository) loadAccessories(ctx context.Context, it *domain.InventoryItem) error {
	query := `SELECT accessory_id, name, COALESCE(serial_number, ''), condition, is_included, status
	          FROM item_accessories WHERE item_id = $1 ORDER BY accessory_id`
	rows, err := r.db.QueryContext(ctx, query, it.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var acc domain.AccessoryAttachment
		if err := rows.Scan(&acc.AccessoryID, &acc.Name, &acc.SerialNumber, &acc.Condition, &acc.IsIncluded, &acc.Status); err != nil {
			return err
		}
		it.Accessories = append(it.Accessories, acc)
	}
	return rows.Err()
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.InventoryItem, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM rental_items WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadAccessories(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) FindAvailableByID(ctx context.Context, id int32, excludeIDs []int32) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM rental_items
	          WHERE id = $1 AND status = 'available' AND is_archived = false AND NOT (id = ANY($2))`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, id, pq.Array(excludeIDs)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadAccessories(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) FindAvailableByProduct(ctx context.Context, productID int32, excludeIDs []int32) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM rental_items
	          WHERE product_id = $1 AND status = 'available' AND is_archived = false AND NOT (id = ANY($2))
	          ORDER BY id LIMIT 1`
	it, err := scanItem(r.db.QueryRowContext(ctx, query, productID, pq.Array(excludeIDs)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadAccessories(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Claim is the allocation compare-and-swap: only one caller can move a given
// item from available to rented.
func (r *itemRepository) Claim(ctx context.Context, id int32) (bool, error) {
	query := `UPDATE rental_items SET status = 'rented', updated_on = NOW() WHERE id = $1 AND status = 'available'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *itemRepository) SetStatus(ctx context.Context, id int32, status domain.ItemStatus, condition domain.ItemCondition, damageReason string) error {
	query := `UPDATE rental_items
	          SET status = $1,
	              condition = CASE WHEN $2::text = '' THEN condition ELSE $2::text END,
	              damage_reason = NULLIF($3, ''),
	              updated_on = NOW()
	          WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, status, string(condition), damageReason, id)
	return err
}

func (r *itemRepository) Update(ctx context.Context, it *domain.InventoryItem) error {
	query := `UPDATE rental_items SET status=$1, condition=$2, damage_reason=NULLIF($3, ''), serial_number=NULLIF($4, ''), notes=NULLIF($5, ''), updated_on=$6 WHERE id=$7`
	if _, err := r.db.ExecContext(ctx, query, it.Status, it.Condition, it.DamageReason, it.SerialNumber, it.Notes, time.Now(), it.ID); err != nil {
		return err
	}
	if it.Accessories != nil {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM item_accessories WHERE item_id = $1`, it.ID); err != nil {
			return err
		}
		for i := range it.Accessories {
			if err := r.insertAccessory(ctx, it.ID, &it.Accessories[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rental_items WHERE id = $1`, id)
	return err
}

func (r *itemRepository) SetArchived(ctx context.Context, id int32, archived bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rental_items SET is_archived = $1, updated_on = NOW() WHERE id = $2`, archived, id)
	return err
}

func (r *itemRepository) AppendHistory(ctx context.Context, e *domain.HistoryEntry) error {
	query := `INSERT INTO item_history (item_id, action, details, performed_by, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.ItemID, e.Action, e.Details, e.PerformedBy, time.Now()).Scan(&e.ID)
}

func (r *itemRepository) ListHistory(ctx context.Context, itemID int32) ([]domain.HistoryEntry, error) {
	query := `SELECT id, item_id, action, COALESCE(details, ''), performed_by, created_on
	          FROM item_history WHERE item_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Action, &e.Details, &e.PerformedBy, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *itemRepository) ListByProduct(ctx context.Context, productID int32, archived bool) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM rental_items
	          WHERE product_id = $1 AND is_archived = $2 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, productID, archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// CountByProduct recounts from scratch rather than tracking deltas; the
// counters on the product row must never drift from the item table.
func (r *itemRepository) CountByProduct(ctx context.Context, productID int32) (int32, int32, error) {
	var total, available int32
	query := `SELECT count(*), count(*) FILTER (WHERE status = 'available' AND is_archived = false)
	          FROM rental_items WHERE product_id = $1`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&total, &available)
	return total, available, err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
