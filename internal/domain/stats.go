package domain

// RentalStats is the dashboard aggregate over completed bookings. Missing
// profit is summed over rental bills as systemCalculatedAmount−customizedAmount.
type RentalStats struct {
	ActiveRentals      int32   `json:"active_rentals"`
	CompletedRentals   int32   `json:"completed_rentals"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalMissingProfit float64 `json:"total_missing_profit"`
}
