package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkcrm/automation/config"
	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/model"
)

func newTestService(t *testing.T) (MetadataService, *container.DIContainer) {
	t.Helper()
	c := container.NewDiContainer()
	c.Init(config.Config{StorageType: config.STORAGE_TYPE_INMEM})
	return NewMetadataService(c), c
}

func validRule() model.Rule {
	return model.Rule{
		Name:     "hot lead",
		ObjectId: "obj-1",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Conditions: []model.Condition{
			{Field: "record.score", Operator: model.OP_GREATER_THAN, Value: 80},
		},
		Actions: []model.ActionDef{
			{Id: "a1", Type: "CREATE_TASK", Config: map[string]any{"title": "call {{record.name}}"}, Order: 1},
		},
	}
}

func TestSaveRuleAssignsIdAndTimestamps(t *testing.T) {
	service, _ := newTestService(t)
	saved, err := service.SaveRule(validRule())
	require.NoError(t, err)
	require.NotEmpty(t, saved.Id)
	require.False(t, saved.CreatedAt.IsZero())
	require.False(t, saved.UpdatedAt.IsZero())

	fetched, err := service.GetRule(saved.Id)
	require.NoError(t, err)
	require.Equal(t, "hot lead", fetched.Name)
}

func TestSaveRuleStoresVariables(t *testing.T) {
	service, _ := newTestService(t)
	rule := validRule()
	rule.Trigger = model.TRIGGER_STAGE_CHANGED
	saved, err := service.SaveRule(rule)
	require.NoError(t, err)

	variables, err := service.GetRuleVariables(saved.Id)
	require.NoError(t, err)
	require.Contains(t, variables, "record.id")
	require.Contains(t, variables, "stage.old")
	require.Contains(t, variables, "stage.new")
	require.NotContains(t, variables, "field.name")
}

func TestSaveRuleFlushesActiveRuleCache(t *testing.T) {
	service, _ := newTestService(t)

	rules, err := service.GetActiveRules("obj-1", model.TRIGGER_RECORD_CREATED)
	require.NoError(t, err)
	require.Empty(t, rules)

	_, err = service.SaveRule(validRule())
	require.NoError(t, err)

	rules, err = service.GetActiveRules("obj-1", model.TRIGGER_RECORD_CREATED)
	require.NoError(t, err)
	require.Len(t, rules, 1)
}

func TestDeleteRuleFlushesActiveRuleCache(t *testing.T) {
	service, _ := newTestService(t)
	saved, err := service.SaveRule(validRule())
	require.NoError(t, err)

	rules, err := service.GetActiveRules("obj-1", model.TRIGGER_RECORD_CREATED)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	require.NoError(t, service.DeleteRule(saved.Id))

	rules, err = service.GetActiveRules("obj-1", model.TRIGGER_RECORD_CREATED)
	require.NoError(t, err)
	require.Empty(t, rules)
}

func TestValidateRule(t *testing.T) {
	service, _ := newTestService(t)

	tests := []struct {
		name    string
		mutate  func(rule *model.Rule)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(rule *model.Rule) { rule.Name = "" },
			wantErr: "rule name is required",
		},
		{
			name:    "missing object id",
			mutate:  func(rule *model.Rule) { rule.ObjectId = "" },
			wantErr: "rule object id is required",
		},
		{
			name:    "unknown trigger",
			mutate:  func(rule *model.Rule) { rule.Trigger = "RECORD_TOUCHED" },
			wantErr: "unknown trigger",
		},
		{
			name:    "missing condition field",
			mutate:  func(rule *model.Rule) { rule.Conditions[0].Field = "" },
			wantErr: "condition field is required",
		},
		{
			name:    "unknown operator",
			mutate:  func(rule *model.Rule) { rule.Conditions[0].Operator = "between" },
			wantErr: "unknown operator",
		},
		{
			name:    "bad logic",
			mutate:  func(rule *model.Rule) { rule.Conditions[0].Logic = "XOR" },
			wantErr: "logic must be AND or OR",
		},
		{
			name: "duplicate action ids",
			mutate: func(rule *model.Rule) {
				rule.Actions = append(rule.Actions, model.ActionDef{
					Id: "a1", Type: "CREATE_TASK", Config: map[string]any{"title": "again"}, Order: 2,
				})
			},
			wantErr: "duplicate",
		},
		{
			name:    "unknown action type",
			mutate:  func(rule *model.Rule) { rule.Actions[0].Type = "SEND_SMS" },
			wantErr: "unknown action type",
		},
		{
			name:    "action config incomplete",
			mutate:  func(rule *model.Rule) { rule.Actions[0].Config = map[string]any{} },
			wantErr: "requires config key title",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule := validRule()
			tc.mutate(&rule)
			_, err := service.SaveRule(rule)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRuleVariablesAreSorted(t *testing.T) {
	variables := RuleVariables(model.Rule{Trigger: model.TRIGGER_FIELD_CHANGED})
	require.Contains(t, variables, "field.old")
	for i := 1; i < len(variables); i++ {
		require.LessOrEqual(t, variables[i-1], variables[i])
	}
}
