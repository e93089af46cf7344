package collab

import (
	"time"

	"github.com/google/uuid"

	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
)

type NotificationService interface {
	Create(notification model.Notification) (*model.Notification, error)
}

var _ NotificationService = new(storedNotificationService)

// storedNotificationService persists in-app notifications through the
// notification store.
type storedNotificationService struct {
	dao persistence.NotificationDao
}

func NewStoredNotificationService(dao persistence.NotificationDao) *storedNotificationService {
	return &storedNotificationService{dao: dao}
}

func (s *storedNotificationService) Create(notification model.Notification) (*model.Notification, error) {
	if notification.Id == "" {
		notification.Id = uuid.New().String()
	}
	if notification.Type == "" {
		notification.Type = "info"
	}
	notification.CreatedAt = time.Now()
	if err := s.dao.Save(notification); err != nil {
		return nil, err
	}
	return &notification, nil
}
