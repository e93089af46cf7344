package action

import (
	"github.com/arkcrm/automation/model"
)

var _ Action = new(updateFieldAction)

// updateFieldAction is the only action type that mutates the triggering
// record itself.
type updateFieldAction struct {
	baseAction
}

func NewUpdateFieldAction(base baseAction) *updateFieldAction {
	return &updateFieldAction{baseAction: base}
}

func (a *updateFieldAction) Validate() error {
	if err := requiredKey(a.config, "field", a.actType); err != nil {
		return err
	}
	return requiredKey(a.config, "value", a.actType)
}

func (a *updateFieldAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	field, err := requiredString(cfg, "field", a.actType)
	if err != nil {
		return nil, err
	}
	if err := requiredKey(cfg, "value", a.actType); err != nil {
		return nil, err
	}
	value := cfg["value"]
	if err := a.container.GetRecordDao().UpdateField(ctx.Object.Id, ctx.Record.Id, field, value); err != nil {
		return nil, err
	}
	// keep the live context in step with the store so templates of later
	// actions in the same rule see the new value
	if ctx.Record.Data == nil {
		ctx.Record.Data = make(map[string]any)
	}
	ctx.Record.Data[field] = value
	return map[string]any{"field": field, "value": value}, nil
}
