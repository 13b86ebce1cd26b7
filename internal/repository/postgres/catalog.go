package postgres

import (
	"context"
	"database/sql"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

// Catalog repositories cover the read-only collaborator lookups (rental
// products, sale products, customers, accessory definitions) plus the two
// writes the rental engine owns: product quantity recounts and sale stock.

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.RentalProduct, error) {
	p := &domain.RentalProduct{}
	query := `SELECT id, name, COALESCE(description, ''), COALESCE(hourly_rate, 0), COALESCE(daily_rate, 0), COALESCE(monthly_rate, 0),
	                 total_quantity, available_quantity, created_on
	          FROM rental_products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description,
		&p.Rates.Hourly, &p.Rates.Daily, &p.Rates.Monthly, &p.TotalQuantity, &p.AvailableQuantity, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) UpdateQuantities(ctx context.Context, id int32, total, available int32) error {
	query := `UPDATE rental_products SET total_quantity = $1, available_quantity = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, total, available, id)
	return err
}

type saleProductRepository struct {
	db *sql.DB
}

func NewSaleProductRepository(db *sql.DB) repository.SaleProductRepository {
	return &saleProductRepository{db: db}
}

func (r *saleProductRepository) GetByID(ctx context.Context, id int32) (*domain.SaleProduct, error) {
	p := &domain.SaleProduct{}
	query := `SELECT id, name, price, quantity FROM sale_products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DecrementStock is conditional on sufficient quantity so two bookings cannot
// both consume the same stock.
func (r *saleProductRepository) DecrementStock(ctx context.Context, id int32, qty int32) (bool, error) {
	query := `UPDATE sale_products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`
	res, err := r.db.ExecContext(ctx, query, qty, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *saleProductRepository) IncrementStock(ctx context.Context, id int32, qty int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sale_products SET quantity = quantity + $1 WHERE id = $2`, qty, id)
	return err
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), status FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status)
	if err != nil {
		return nil, err
	}
	return c, nil
}

type accessoryRepository struct {
	db *sql.DB
}

func NewAccessoryRepository(db *sql.DB) repository.AccessoryRepository {
	return &accessoryRepository{db: db}
}

func (r *accessoryRepository) GetByID(ctx context.Context, id int32) (*domain.Accessory, error) {
	a := &domain.Accessory{}
	query := `SELECT id, product_id, name, COALESCE(description, ''), is_required, replacement_cost FROM accessories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.ProductID, &a.Name, &a.Description, &a.IsRequired, &a.ReplacementCost)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accessoryRepository) ListByProduct(ctx context.Context, productID int32) ([]domain.Accessory, error) {
	query := `SELECT id, product_id, name, COALESCE(description, ''), is_required, replacement_cost
	          FROM accessories WHERE product_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accs []domain.Accessory
	for rows.Next() {
		var a domain.Accessory
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Name, &a.Description, &a.IsRequired, &a.ReplacementCost); err != nil {
			return nil, err
		}
		accs = append(accs, a)
	}
	return accs, rows.Err()
}
