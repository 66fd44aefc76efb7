package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unseenOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkSeen(ctx context.Context, id, userID uuid.UUID) error
	MarkAllSeen(ctx context.Context, userID uuid.UUID) error
	GetUnseenCount(ctx context.Context, userID uuid.UUID) (int64, error)
	Dismiss(ctx context.Context, id, userID uuid.UUID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unseenOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unseenOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *notificationService) MarkSeen(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkSeen(ctx, id, userID)
}

func (s *notificationService) MarkAllSeen(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllSeen(ctx, userID)
}

func (s *notificationService) GetUnseenCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnseen(ctx, userID)
}

func (s *notificationService) Dismiss(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.notifRepo.Dismiss(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError("notification")
	}
	return nil
}
