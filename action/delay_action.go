package action

import (
	"fmt"
	"strings"

	"github.com/arkcrm/automation/model"
)

var unitMillis = map[string]int64{
	"minutes": 60 * 1000,
	"hours":   60 * 60 * 1000,
	"days":    24 * 60 * 60 * 1000,
}

var _ Action = new(delayAction)

// delayAction computes its wait duration and returns it immediately. The
// pipeline does not suspend: actions ordered after a delay run without any
// actual wait. True deferred continuation would need a durable job handoff
// and a multi-phase execution record.
type delayAction struct {
	baseAction
}

func NewDelayAction(base baseAction) *delayAction {
	return &delayAction{baseAction: base}
}

func (a *delayAction) Validate() error {
	if err := requiredKey(a.config, "duration", a.actType); err != nil {
		return err
	}
	unit := strings.ToLower(stringValue(a.config, "unit"))
	if _, ok := unitMillis[unit]; !ok {
		return fmt.Errorf("%s action unit must be one of minutes, hours, days", a.actType)
	}
	return nil
}

func (a *delayAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	duration, ok := numberValue(cfg, "duration")
	if !ok || duration <= 0 {
		return nil, fmt.Errorf("%s action requires a positive numeric duration", a.actType)
	}
	unit := strings.ToLower(stringValue(cfg, "unit"))
	millisPerUnit, ok := unitMillis[unit]
	if !ok {
		return nil, fmt.Errorf("%s action unit must be one of minutes, hours, days", a.actType)
	}
	return map[string]any{"delayMillis": int64(duration * float64(millisPerUnit))}, nil
}
