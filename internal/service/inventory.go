package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type inventoryService struct {
	items    repository.ItemRepository
	products repository.ProductRepository
	seq      repository.SequenceRepository
}

func NewInventoryService(
	items repository.ItemRepository,
	products repository.ProductRepository,
	seq repository.SequenceRepository,
) InventoryService {
	return &inventoryService{items: items, products: products, seq: seq}
}

func (s *inventoryService) AddUnit(ctx context.Context, item *domain.InventoryItem, actorID *int32) error {
	if item.ProductID == 0 {
		return domain.NewValidation("unit must reference a product")
	}
	if _, err := s.products.GetByID(ctx, item.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("product", item.ProductID)
		}
		return domain.NewInternal("lookup product", err)
	}

	if item.UniqueIdentifier == "" {
		n, err := s.seq.Next(ctx, fmt.Sprintf("item_%d", item.ProductID))
		if err != nil {
			return domain.NewInternal("generate unit identifier", err)
		}
		item.UniqueIdentifier = fmt.Sprintf("RI-%d-%04d", item.ProductID, n)
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}
	if item.Condition == "" {
		item.Condition = domain.ItemConditionNew
	}

	if err := s.items.Create(ctx, item); err != nil {
		return domain.NewInternal("create inventory unit", err)
	}
	s.appendHistory(ctx, item.ID, domain.HistoryActionAdded, fmt.Sprintf("unit %s added to inventory", item.UniqueIdentifier), actorID)
	s.recountProduct(ctx, item.ProductID)
	return nil
}

func (s *inventoryService) GetUnit(ctx context.Context, id int32) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("inventory unit", id)
		}
		return nil, domain.NewInternal("lookup inventory unit", err)
	}
	return item, nil
}

func (s *inventoryService) ListUnits(ctx context.Context, productID int32, archived bool) ([]domain.InventoryItem, error) {
	units, err := s.items.ListByProduct(ctx, productID, archived)
	if err != nil {
		return nil, domain.NewInternal("list inventory units", err)
	}
	return units, nil
}

func (s *inventoryService) GetUnitHistory(ctx context.Context, id int32) ([]domain.HistoryEntry, error) {
	if _, err := s.GetUnit(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.items.ListHistory(ctx, id)
	if err != nil {
		return nil, domain.NewInternal("list unit history", err)
	}
	return entries, nil
}

// TransitionUnit moves a unit to a new status, recording exactly one history
// entry whose action is derived from the transition, then recounts the owning
// product's availability counters.
func (s *inventoryService) TransitionUnit(ctx context.Context, id int32, status domain.ItemStatus, condition domain.ItemCondition, damageReason, detail string, actorID *int32) error {
	item, err := s.GetUnit(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == domain.ItemStatusRented && status == domain.ItemStatusRented {
		return domain.NewInvalidTransition(fmt.Sprintf("unit %s is already rented", item.UniqueIdentifier))
	}

	if err := s.items.SetStatus(ctx, id, status, condition, damageReason); err != nil {
		return domain.NewInternal("update unit status", err)
	}
	if detail == "" {
		detail = fmt.Sprintf("status changed from %s to %s", item.Status, status)
	}
	s.appendHistory(ctx, id, domain.ActionForTransition(status), detail, actorID)
	s.recountProduct(ctx, item.ProductID)
	return nil
}

func (s *inventoryService) ArchiveUnit(ctx context.Context, id int32, archived bool, actorID *int32) error {
	item, err := s.GetUnit(ctx, id)
	if err != nil {
		return err
	}
	if archived && item.Status == domain.ItemStatusRented {
		return domain.NewInvalidTransition(fmt.Sprintf("unit %s cannot be archived while rented", item.UniqueIdentifier))
	}

	if err := s.items.SetArchived(ctx, id, archived); err != nil {
		return domain.NewInternal("archive unit", err)
	}
	action := domain.HistoryActionArchived
	if !archived {
		action = domain.HistoryActionRestored
	}
	s.appendHistory(ctx, id, action, fmt.Sprintf("unit %s %s", item.UniqueIdentifier, action), actorID)
	s.recountProduct(ctx, item.ProductID)
	return nil
}

func (s *inventoryService) DeleteUnit(ctx context.Context, id int32) error {
	item, err := s.GetUnit(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == domain.ItemStatusRented {
		return domain.NewInvalidTransition(fmt.Sprintf("unit %s cannot be deleted while rented", item.UniqueIdentifier))
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return domain.NewInternal("delete unit", err)
	}
	s.recountProduct(ctx, item.ProductID)
	return nil
}

func (s *inventoryService) appendHistory(ctx context.Context, itemID int32, action domain.HistoryAction, detail string, actorID *int32) {
	entry := &domain.HistoryEntry{
		ItemID:      itemID,
		Action:      action,
		Details:     detail,
		PerformedBy: actorID,
		CreatedOn:   time.Now(),
	}
	if err := s.items.AppendHistory(ctx, entry); err != nil {
		logger.Error("append unit history failed", "item_id", itemID, "action", action, "error", err)
	}
}

// recountProduct refreshes the product's cached counters from a full recount
// of the item table.
func (s *inventoryService) recountProduct(ctx context.Context, productID int32) {
	total, available, err := s.items.CountByProduct(ctx, productID)
	if err != nil {
		logger.Error("recount product failed", "product_id", productID, "error", err)
		return
	}
	if err := s.products.UpdateQuantities(ctx, productID, total, available); err != nil {
		logger.Error("update product counters failed", "product_id", productID, "error", err)
	}
}
