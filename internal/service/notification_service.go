package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"meetbook/internal/model"
	"meetbook/internal/repository"
)

// NotificationService creates and lists in-app notifications. Creation is
// best-effort: a persistence failure is logged, never propagated.
type NotificationService interface {
	Notify(ctx context.Context, userID uint, title, description string)
	ListByUser(ctx context.Context, userID uint) ([]model.Notification, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	log  *logrus.Entry
}

// NewNotificationService builds a NotificationService.
func NewNotificationService(repo repository.NotificationRepository, log *logrus.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.WithField("component", "notifications"),
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uint, title, description string) {
	notification := &model.Notification{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("notification write failed")
	}
}

func (s *notificationService) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}
