package action

import (
	"fmt"

	"github.com/arkcrm/automation/model"
)

var _ Action = new(webhookAction)

type webhookAction struct {
	baseAction
}

func NewWebhookAction(base baseAction) *webhookAction {
	return &webhookAction{baseAction: base}
}

func (a *webhookAction) Validate() error {
	return requiredKey(a.config, "url", a.actType)
}

// Execute captures the response whatever its status code; only a transport
// failure fails the action.
func (a *webhookAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	url, err := requiredString(cfg, "url", a.actType)
	if err != nil {
		return nil, err
	}
	headers := make(map[string]string)
	if raw, ok := cfg["headers"].(map[string]any); ok {
		for k, v := range raw {
			headers[k] = fmt.Sprintf("%v", v)
		}
	}
	return a.container.GetWebhookClient().Call(url, stringValue(cfg, "method"), headers, cfg["body"])
}
