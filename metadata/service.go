package metadata

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/arkcrm/automation/action"
	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/model"
)

// MetadataService manages rule definitions. Rules are read-only to the
// engine at execution time; lookups hand out immutable snapshots served
// through a short-lived cache so concurrent triggers never race on edits.
type MetadataService interface {
	SaveRule(rule model.Rule) (*model.Rule, error)
	GetRule(id string) (*model.Rule, error)
	DeleteRule(id string) error
	GetActiveRules(objectId string, trigger model.TriggerType) ([]model.Rule, error)
	GetRuleVariables(ruleId string) ([]string, error)
	ValidateRule(rule model.Rule) error
}

type MetadataServiceImpl struct {
	container *container.DIContainer
	cache     *gocache.Cache
}

func NewMetadataService(container *container.DIContainer) MetadataService {
	return &MetadataServiceImpl{
		container: container,
		cache:     gocache.New(time.Minute, 5*time.Minute),
	}
}

func (s *MetadataServiceImpl) SaveRule(rule model.Rule) (*model.Rule, error) {
	if err := s.ValidateRule(rule); err != nil {
		return nil, err
	}
	if rule.Id == "" {
		rule.Id = uuid.New().String()
	}
	now := time.Now()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now
	if err := s.container.GetWorkflowDao().Save(rule); err != nil {
		return nil, err
	}
	if err := s.container.GetWorkflowDao().SaveVariables(rule.Id, RuleVariables(rule)); err != nil {
		return nil, err
	}
	s.cache.Flush()
	return &rule, nil
}

func (s *MetadataServiceImpl) GetRule(id string) (*model.Rule, error) {
	return s.container.GetWorkflowDao().Get(id)
}

func (s *MetadataServiceImpl) DeleteRule(id string) error {
	if err := s.container.GetWorkflowDao().Delete(id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

func (s *MetadataServiceImpl) GetActiveRules(objectId string, trigger model.TriggerType) ([]model.Rule, error) {
	key := fmt.Sprintf("%s:%s", objectId, trigger)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Rule), nil
	}
	rules, err := s.container.GetWorkflowDao().GetByObjectAndTrigger(objectId, trigger)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, rules)
	return rules, nil
}

func (s *MetadataServiceImpl) GetRuleVariables(ruleId string) ([]string, error) {
	return s.container.GetWorkflowDao().GetVariables(ruleId)
}

func (s *MetadataServiceImpl) ValidateRule(rule model.Rule) error {
	if rule.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	if rule.ObjectId == "" {
		return fmt.Errorf("rule object id is required")
	}
	if _, err := model.ToTriggerType(string(rule.Trigger)); err != nil {
		return err
	}
	for _, cond := range rule.Conditions {
		if cond.Field == "" {
			return fmt.Errorf("condition field is required")
		}
		if _, err := model.ToOperator(string(cond.Operator)); err != nil {
			return err
		}
		if cond.Logic != "" && cond.Logic != model.LOGIC_AND && cond.Logic != model.LOGIC_OR {
			return fmt.Errorf("condition logic must be AND or OR")
		}
	}
	seenIds := make(map[string]any)
	for _, actionDef := range rule.Actions {
		if actionDef.Id != "" {
			if _, ok := seenIds[actionDef.Id]; ok {
				return fmt.Errorf("action id %s is duplicate", actionDef.Id)
			}
			seenIds[actionDef.Id] = ""
		}
		act, err := action.FromDef(actionDef, s.container)
		if err != nil {
			return err
		}
		if err := act.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RuleVariables generates the flat list of template variables the rule
// exposes to an editor UI. Record data keys are dynamic and only known at
// trigger time, so this lists the stable surface plus the trigger-specific
// extras.
func RuleVariables(rule model.Rule) []string {
	variables := []string{
		"record.id", "record.owner_id", "record.created_at", "record.updated_at",
		"object.id", "object.name", "object.displayName",
		"user.id", "user.email", "user.name",
		"now", "now.date", "now.time",
	}
	switch rule.Trigger {
	case model.TRIGGER_RECORD_UPDATED:
		variables = append(variables, "changes.<field>.old", "changes.<field>.new")
	case model.TRIGGER_FIELD_CHANGED:
		variables = append(variables, "field.name", "field.old", "field.new")
	case model.TRIGGER_STAGE_CHANGED:
		variables = append(variables, "stage.old", "stage.new")
	}
	sort.Strings(variables)
	return variables
}
