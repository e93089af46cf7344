package redis

import (
	"context"

	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
	"github.com/arkcrm/automation/util"
)

const NOTIFICATION_KEY string = "NOTIFY"

var _ persistence.NotificationDao = new(redisNotificationDao)

type redisNotificationDao struct {
	*baseDao
	notificationEncDec util.EncoderDecoder[model.Notification]
}

func NewRedisNotificationDao(conf Config) *redisNotificationDao {
	return &redisNotificationDao{
		baseDao:            newBaseDao(conf),
		notificationEncDec: util.NewJsonEncoderDecoder[model.Notification](),
	}
}

func (rnd *redisNotificationDao) Save(notification model.Notification) error {
	key := rnd.getNamespaceKey(NOTIFICATION_KEY, notification.UserId)
	ctx := context.Background()
	data, err := rnd.notificationEncDec.Encode(notification)
	if err != nil {
		return err
	}
	if err := rnd.redisClient.RPush(ctx, key, string(data)).Err(); err != nil {
		return persistence.StorageLayerError{Message: err.Error()}
	}
	return nil
}

func (rnd *redisNotificationDao) GetByUser(userId string, limit int64) ([]model.Notification, error) {
	key := rnd.getNamespaceKey(NOTIFICATION_KEY, userId)
	ctx := context.Background()
	items, err := rnd.redisClient.LRange(ctx, key, -limit, -1).Result()
	if err != nil {
		return nil, persistence.StorageLayerError{Message: err.Error()}
	}
	notifications := make([]model.Notification, 0, len(items))
	for _, item := range items {
		notification, err := rnd.notificationEncDec.Decode([]byte(item))
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	return notifications, nil
}
