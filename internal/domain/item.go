package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusRented      ItemStatus = "rented"
	ItemStatusMaintenance ItemStatus = "maintenance"
	ItemStatusScrap       ItemStatus = "scrap"
	ItemStatusMissing     ItemStatus = "missing"
	ItemStatusDamaged     ItemStatus = "damaged"
)

type ItemCondition string

const (
	ItemConditionNew     ItemCondition = "new"
	ItemConditionGood    ItemCondition = "good"
	ItemConditionFair    ItemCondition = "fair"
	ItemConditionPoor    ItemCondition = "poor"
	ItemConditionDamaged ItemCondition = "damaged"
)

type AccessoryStatus string

const (
	AccessoryStatusWithItem AccessoryStatus = "with_item"
	AccessoryStatusMissing  AccessoryStatus = "missing"
	AccessoryStatusReturned AccessoryStatus = "returned"
	AccessoryStatusDamaged  AccessoryStatus = "damaged"
)

type HistoryAction string

const (
	HistoryActionAdded            HistoryAction = "added"
	HistoryActionReceived         HistoryAction = "received"
	HistoryActionRented           HistoryAction = "rented"
	HistoryActionReturned         HistoryAction = "returned"
	HistoryActionMaintenanceStart HistoryAction = "maintenance_start"
	HistoryActionMaintenanceEnd   HistoryAction = "maintenance_end"
	HistoryActionScrapped         HistoryAction = "scrapped"
	HistoryActionMarkedMissing    HistoryAction = "marked_missing"
	HistoryActionMarkedDamaged    HistoryAction = "marked_damaged"
	HistoryActionArchived         HistoryAction = "archived"
	HistoryActionRestored         HistoryAction = "restored"
)

// ActionForTransition maps a status change to the history action recorded for
// it. Audit reconstruction depends on this table; call sites must not invent
// their own action strings. The returned action is reserved for the return
// flow, which records it directly rather than through this mapping.
func ActionForTransition(to ItemStatus) HistoryAction {
	switch to {
	case ItemStatusMissing:
		return HistoryActionMarkedMissing
	case ItemStatusScrap:
		return HistoryActionScrapped
	case ItemStatusDamaged:
		return HistoryActionMarkedDamaged
	case ItemStatusMaintenance:
		return HistoryActionMaintenanceStart
	case ItemStatusAvailable:
		return HistoryActionMaintenanceEnd
	default:
		return HistoryActionRented
	}
}

// AccessoryAttachment is an accessory tracked on a specific inventory item.
// Its status moves independently of the parent item's status.
type AccessoryAttachment struct {
	AccessoryID  int32           `json:"accessory_id"`
	Name         string          `json:"name"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Condition    ItemCondition   `json:"condition"`
	IsIncluded   bool            `json:"is_included"`
	Status       AccessoryStatus `json:"status"`
}

// HistoryEntry is one row of an item's append-only audit trail.
type HistoryEntry struct {
	ID          int32         `json:"id"`
	ItemID      int32         `json:"item_id"`
	Action      HistoryAction `json:"action"`
	Details     string        `json:"details"`
	PerformedBy *int32        `json:"performed_by,omitempty"`
	CreatedOn   time.Time     `json:"created_on"`
}

// InventoryItem is one serialized, individually tracked rental asset.
type InventoryItem struct {
	ID               int32                 `json:"id"`
	ProductID        int32                 `json:"product_id"`
	UniqueIdentifier string                `json:"unique_identifier"`
	SerialNumber     string                `json:"serial_number,omitempty"`
	Status           ItemStatus            `json:"status"`
	Condition        ItemCondition         `json:"condition"`
	DamageReason     string                `json:"damage_reason,omitempty"`
	IsArchived       bool                  `json:"is_archived"`
	PurchaseCost     float64               `json:"purchase_cost"`
	PurchaseDate     *time.Time            `json:"purchase_date,omitempty"`
	BatchNumber      string                `json:"batch_number,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Accessories      []AccessoryAttachment `json:"accessories"`
	CreatedOn        time.Time             `json:"created_on"`
	UpdatedOn        time.Time             `json:"updated_on"`
}
