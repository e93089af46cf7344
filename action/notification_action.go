package action

import (
	"github.com/arkcrm/automation/model"
)

var _ Action = new(notificationAction)

type notificationAction struct {
	baseAction
}

func NewNotificationAction(base baseAction) *notificationAction {
	return &notificationAction{baseAction: base}
}

func (a *notificationAction) Validate() error {
	for _, key := range []string{"userId", "title", "message"} {
		if err := requiredKey(a.config, key, a.actType); err != nil {
			return err
		}
	}
	return nil
}

func (a *notificationAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	userId, err := requiredString(cfg, "userId", a.actType)
	if err != nil {
		return nil, err
	}
	title, err := requiredString(cfg, "title", a.actType)
	if err != nil {
		return nil, err
	}
	message, err := requiredString(cfg, "message", a.actType)
	if err != nil {
		return nil, err
	}
	data, _ := cfg["data"].(map[string]any)
	notification, err := a.container.GetNotificationService().Create(model.Notification{
		UserId:  userId,
		Type:    stringValue(cfg, "type"),
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"notificationId": notification.Id}, nil
}
