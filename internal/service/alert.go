package service

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type alertService struct {
	notes repository.NotificationRepository
}

func NewAlertService(notes repository.NotificationRepository) AlertService {
	return &alertService{notes: notes}
}

func (s *alertService) ListUnread(ctx context.Context) ([]domain.Notification, error) {
	alerts, err := s.notes.ListUnread(ctx)
	if err != nil {
		return nil, domain.NewInternal("list unread alerts", err)
	}
	return alerts, nil
}
