package action

import (
	"fmt"
	"strings"

	"github.com/arkcrm/automation/collab"
	"github.com/arkcrm/automation/model"
)

var _ Action = new(emailAction)

type emailAction struct {
	baseAction
}

func NewEmailAction(base baseAction) *emailAction {
	return &emailAction{baseAction: base}
}

func (a *emailAction) Validate() error {
	if err := requiredKey(a.config, "templateId", a.actType); err != nil {
		return err
	}
	return requiredKey(a.config, "to", a.actType)
}

func (a *emailAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	templateId, err := requiredString(cfg, "templateId", a.actType)
	if err != nil {
		return nil, err
	}
	to, err := requiredString(cfg, "to", a.actType)
	if err != nil {
		return nil, err
	}
	sender := a.container.GetEmailSender()
	if sender == nil {
		return nil, fmt.Errorf("email collaborator not configured")
	}
	data, _ := cfg["data"].(map[string]any)
	// a non-address "to" is a key into data holding the real recipient
	if !strings.Contains(to, "@") {
		if recipient, ok := data[to]; ok {
			to = fmt.Sprintf("%v", recipient)
		}
	}
	result, err := sender.SendFromTemplate(templateId, []string{to}, data, ctx.User.Id, collab.EmailOptions{
		Cc:       ccList(cfg),
		RecordId: ctx.Record.Id,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func ccList(cfg map[string]any) []string {
	switch cc := cfg["cc"].(type) {
	case string:
		if cc == "" {
			return nil
		}
		parts := strings.Split(cc, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(cc))
		for _, item := range cc {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return nil
	}
}
