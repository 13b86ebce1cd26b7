package postgres

import (
	"database/sql"

	"rentdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ItemRepository
	repository.ProductRepository
	repository.SaleProductRepository
	repository.CustomerRepository
	repository.AccessoryRepository
	repository.RentalRepository
	repository.BillRepository
	repository.AccountRepository
	repository.NotificationRepository
	repository.SequenceRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ItemRepository:         NewItemRepository(db),
		ProductRepository:      NewProductRepository(db),
		SaleProductRepository:  NewSaleProductRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		AccessoryRepository:    NewAccessoryRepository(db),
		RentalRepository:       NewRentalRepository(db),
		BillRepository:         NewBillRepository(db),
		AccountRepository:      NewAccountRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		SequenceRepository:     NewSequenceRepository(db),
	}
}
