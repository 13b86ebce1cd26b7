package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"

	"github.com/lib/pq"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// Upsert keeps at most one unread alert per rental and type, refreshing the
// message and timestamp when the alert already exists.
func (r *notificationRepository) Upsert(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (rental_id, type, title, message, is_read, created_on)
	          VALUES ($1, $2, $3, $4, false, $5)
	          ON CONFLICT (rental_id, type)
	          DO UPDATE SET title = $3, message = $4, is_read = false, created_on = $5
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, n.RentalID, n.Type, n.Title, n.Message, time.Now()).Scan(&n.ID)
}

func (r *notificationRepository) ClearForRental(ctx context.Context, rentalID int32, types []domain.NotificationType) error {
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	query := `DELETE FROM notifications WHERE rental_id = $1 AND type = ANY($2) AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, rentalID, pq.Array(strs))
	return err
}

func (r *notificationRepository) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	query := `SELECT id, rental_id, type, title, message, is_read, created_on
	          FROM notifications WHERE is_read = false ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RentalID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
