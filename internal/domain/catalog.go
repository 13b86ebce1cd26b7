package domain

import "time"

// Catalog entities are read-only collaborators of the rental engine. They are
// created and maintained by the catalog/inward subsystems; this core only
// looks them up and, for sale products, adjusts stock counters.

type CustomerStatus string

const (
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusBlocked CustomerStatus = "blocked"
)

type Customer struct {
	ID     int32          `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email,omitempty"`
	Phone  string         `json:"phone,omitempty"`
	Status CustomerStatus `json:"status"`
}

// RentalRates holds a product's list rates. Bookings snapshot the rate per
// line; these values are only a default for new bookings.
type RentalRates struct {
	Hourly  float64 `json:"hourly"`
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
}

// RentalProduct is a serialized-inventory product. Quantity counters are
// derived by full recount over its items, never incremented in place.
type RentalProduct struct {
	ID                int32       `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	Rates             RentalRates `json:"rates"`
	TotalQuantity     int32       `json:"total_quantity"`
	AvailableQuantity int32       `json:"available_quantity"`
	CreatedOn         time.Time   `json:"created_on"`
}

// SaleProduct is a bulk-stocked good sold outright on a booking.
type SaleProduct struct {
	ID       int32   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
}

// Accessory is the catalog definition an AccessoryAttachment points at.
type Accessory struct {
	ID              int32   `json:"id"`
	ProductID       int32   `json:"product_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	IsRequired      bool    `json:"is_required"`
	ReplacementCost float64 `json:"replacement_cost"`
}
