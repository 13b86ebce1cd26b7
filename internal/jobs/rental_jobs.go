package jobs

import (
	"context"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
)

// MarkOverdueRentals flips active rentals past their expected return time to
// overdue and raises an overdue alert for each.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'overdue',
			    updated_on = NOW()
			WHERE status = 'active'
			  AND expected_return_time IS NOT NULL
			  AND expected_return_time < $1
			RETURNING id, rental_number, customer_id, expected_return_time
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id           int32
				rentalNumber string
				customerID   int32
				expectedAt   time.Time
			)
			if err := rows.Scan(&id, &rentalNumber, &customerID, &expectedAt); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++

			note := &domain.Notification{
				RentalID: id,
				Type:     domain.NotificationTypeOverdue,
				Title:    "Rental overdue",
				Message:  fmt.Sprintf("%s was expected back on %s", rentalNumber, expectedAt.Format("2006-01-02 15:04")),
			}
			if err := jr.store.NotificationRepository.Upsert(ctx, note); err != nil {
				logger.Error("Failed to raise overdue alert", "rental_id", id, "error", err)
			}
			logger.Debug("Marked rental as overdue",
				"rental_id", id,
				"rental_number", rentalNumber,
				"customer_id", customerID)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// RaiseReturnAlerts raises a due-today alert for every active rental whose
// expected return time falls within the current day. Alerts are upserted, so
// re-running the job refreshes rather than duplicates them.
func (jr *JobRunner) RaiseReturnAlerts() {
	jr.runWithRecovery("RaiseReturnAlerts", func() {
		ctx := context.Background()

		query := `
			SELECT id, rental_number, expected_return_time
			FROM rentals
			WHERE status = 'active'
			  AND expected_return_time IS NOT NULL
			  AND expected_return_time::date = $1::date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to find rentals due today", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				id           int32
				rentalNumber string
				expectedAt   time.Time
			)
			if err := rows.Scan(&id, &rentalNumber, &expectedAt); err != nil {
				logger.Error("Failed to scan due rental", "error", err)
				continue
			}

			note := &domain.Notification{
				RentalID: id,
				Type:     domain.NotificationTypeDueToday,
				Title:    "Rental due today",
				Message:  fmt.Sprintf("%s is due back at %s", rentalNumber, expectedAt.Format("15:04")),
			}
			if err := jr.store.NotificationRepository.Upsert(ctx, note); err != nil {
				logger.Error("Failed to raise due-today alert", "rental_id", id, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due rentals", "error", err)
			return
		}

		logger.Info("Raised due-today alerts", "count", count)
	})
}
