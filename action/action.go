package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/resolver"
)

type ActionType string

const ACTION_TYPE_SEND_EMAIL ActionType = "SEND_EMAIL"
const ACTION_TYPE_SEND_TELEGRAM ActionType = "SEND_TELEGRAM"
const ACTION_TYPE_CREATE_TASK ActionType = "CREATE_TASK"
const ACTION_TYPE_CREATE_NOTIFICATION ActionType = "CREATE_NOTIFICATION"
const ACTION_TYPE_UPDATE_FIELD ActionType = "UPDATE_FIELD"
const ACTION_TYPE_WEBHOOK ActionType = "WEBHOOK"
const ACTION_TYPE_DELAY ActionType = "DELAY"

func ToActionType(at string) (ActionType, error) {
	switch ActionType(strings.ToUpper(at)) {
	case ACTION_TYPE_SEND_EMAIL, ACTION_TYPE_SEND_TELEGRAM, ACTION_TYPE_CREATE_TASK,
		ACTION_TYPE_CREATE_NOTIFICATION, ACTION_TYPE_UPDATE_FIELD, ACTION_TYPE_WEBHOOK,
		ACTION_TYPE_DELAY:
		return ActionType(strings.ToUpper(at)), nil
	}
	return "", fmt.Errorf("unknown action type %s", at)
}

func ValidateActionType(at string) error {
	_, err := ToActionType(at)
	return err
}

// Action is one executable step of a rule. Execute receives the live trigger
// context and returns an opaque result recorded in the audit trail.
type Action interface {
	GetId() string
	GetName() string
	GetType() ActionType
	Validate() error
	Execute(ctx *model.TriggerContext) (any, error)
}

type baseAction struct {
	id        string
	actType   ActionType
	name      string
	config    map[string]any
	container *container.DIContainer
}

func newBaseAction(def model.ActionDef, actType ActionType, container *container.DIContainer) *baseAction {
	return &baseAction{
		id:        def.Id,
		actType:   actType,
		name:      def.Name,
		config:    def.Config,
		container: container,
	}
}

func (ba *baseAction) GetId() string {
	return ba.id
}

func (ba *baseAction) GetName() string {
	return ba.name
}

func (ba *baseAction) GetType() ActionType {
	return ba.actType
}

// resolveConfig materializes template placeholders against the live context.
// A fresh resolver per call makes field mutations from earlier actions
// visible to later ones.
func (ba *baseAction) resolveConfig(ctx *model.TriggerContext) map[string]any {
	return resolver.New(ctx).ResolveConfig(ba.config)
}

// FromDef converts a stored action definition into its typed executor. The
// default branch is the unknown variant: stored data with a type this build
// does not know fails that action alone.
func FromDef(def model.ActionDef, container *container.DIContainer) (Action, error) {
	actType, err := ToActionType(def.Type)
	if err != nil {
		return nil, err
	}
	base := newBaseAction(def, actType, container)
	switch actType {
	case ACTION_TYPE_SEND_EMAIL:
		return NewEmailAction(*base), nil
	case ACTION_TYPE_SEND_TELEGRAM:
		return NewTelegramAction(*base), nil
	case ACTION_TYPE_CREATE_TASK:
		return NewTaskAction(*base), nil
	case ACTION_TYPE_CREATE_NOTIFICATION:
		return NewNotificationAction(*base), nil
	case ACTION_TYPE_UPDATE_FIELD:
		return NewUpdateFieldAction(*base), nil
	case ACTION_TYPE_WEBHOOK:
		return NewWebhookAction(*base), nil
	case ACTION_TYPE_DELAY:
		return NewDelayAction(*base), nil
	}
	return nil, fmt.Errorf("unknown action type %s", def.Type)
}

func stringValue(config map[string]any, key string) string {
	value, ok := config[key]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func requiredString(config map[string]any, key string, actType ActionType) (string, error) {
	value := stringValue(config, key)
	if value == "" {
		return "", fmt.Errorf("%s action requires config key %s", actType, key)
	}
	return value, nil
}

func numberValue(config map[string]any, key string) (float64, bool) {
	switch n := config[key].(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func requiredKey(config map[string]any, key string, actType ActionType) error {
	if _, ok := config[key]; !ok {
		return fmt.Errorf("%s action requires config key %s", actType, key)
	}
	return nil
}
