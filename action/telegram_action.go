package action

import (
	"fmt"

	"github.com/arkcrm/automation/model"
)

var _ Action = new(telegramAction)

type telegramAction struct {
	baseAction
}

func NewTelegramAction(base baseAction) *telegramAction {
	return &telegramAction{baseAction: base}
}

func (a *telegramAction) Validate() error {
	if err := requiredKey(a.config, "chatId", a.actType); err != nil {
		return err
	}
	return requiredKey(a.config, "message", a.actType)
}

func (a *telegramAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	chatId, err := requiredString(cfg, "chatId", a.actType)
	if err != nil {
		return nil, err
	}
	message, err := requiredString(cfg, "message", a.actType)
	if err != nil {
		return nil, err
	}
	client := a.container.GetTelegramClient()
	if !client.Configured() {
		return nil, fmt.Errorf("telegram bot token not configured")
	}
	return client.SendMessage(chatId, message, stringValue(cfg, "parseMode"))
}
