package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkcrm/automation/config"
	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/metadata"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence/inmem"
)

func newTestEngine(t *testing.T) (*WorkflowEngine, *container.DIContainer, metadata.MetadataService) {
	t.Helper()
	c := container.NewDiContainer()
	c.Init(config.Config{StorageType: config.STORAGE_TYPE_INMEM})
	metadataService := metadata.NewMetadataService(c)
	return NewWorkflowEngine(c, metadataService), c, metadataService
}

func seedRecord(t *testing.T, c *container.DIContainer, objectId string, record model.Record) {
	t.Helper()
	dao := c.GetRecordDao().(*inmem.InMemRecordDao)
	require.NoError(t, dao.Save(objectId, record))
}

func triggerContext(objectId string) *model.TriggerContext {
	return &model.TriggerContext{
		Trigger: model.TRIGGER_RECORD_CREATED,
		Record: model.Record{
			Id:      "rec-1",
			OwnerId: "owner-1",
			Data:    map[string]any{"email": "jane@example.com", "score": 10.0},
		},
		Object: model.ObjectRef{Id: objectId, Name: "deals", DisplayName: "Deals"},
		User:   model.UserRef{Id: "user-1", Email: "ops@example.com", Name: "Ops"},
	}
}

func TestNoMatchingRulesIsSilentNoop(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	records, err := eng.ExecuteTrigger(triggerContext("obj-empty"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestSkippedRuleRecordedAsSuccess(t *testing.T) {
	eng, c, metadataService := newTestEngine(t)
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "never fires",
		ObjectId: "obj-skip",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Conditions: []model.Condition{
			{Field: "record.score", Operator: model.OP_GREATER_THAN, Value: 100},
		},
		Actions: []model.ActionDef{
			{Id: "a1", Type: "UPDATE_FIELD", Config: map[string]any{"field": "status", "value": "hot"}, Order: 1},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-skip"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, model.EXECUTION_SUCCESS, records[0].Status)
	require.True(t, records[0].Skipped)
	require.Equal(t, model.SKIP_MARKER, records[0].Message)
	require.Zero(t, records[0].ActionsExecuted)
	require.Empty(t, records[0].Results)

	persisted, err := c.GetExecutionDao().GetByRule(records[0].RuleId, 10)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
}

func TestPartialStatusWithOneFailingAction(t *testing.T) {
	eng, c, metadataService := newTestEngine(t)
	seedRecord(t, c, "obj-partial", model.Record{Id: "rec-1", Data: map[string]any{"score": 10.0}})
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "mixed outcome",
		ObjectId: "obj-partial",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Actions: []model.ActionDef{
			{Id: "a1", Type: "UPDATE_FIELD", Config: map[string]any{"field": "status", "value": "hot"}, Order: 1},
			// no bot token configured, this one fails
			{Id: "a2", Type: "SEND_TELEGRAM", Config: map[string]any{"chatId": "42", "message": "hi"}, Order: 2},
			{Id: "a3", Type: "CREATE_TASK", Config: map[string]any{"title": "follow up"}, Order: 3},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-partial"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, model.EXECUTION_PARTIAL, record.Status)
	require.Equal(t, 3, record.ActionsExecuted)
	failing := 0
	for _, result := range record.Results {
		if !result.Success {
			failing++
			require.NotEmpty(t, result.Error)
		}
	}
	require.Equal(t, 1, failing)
	require.NotEmpty(t, record.Error)
}

func TestAllActionsFailingIsFailed(t *testing.T) {
	eng, _, metadataService := newTestEngine(t)
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "all failing",
		ObjectId: "obj-failed",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Actions: []model.ActionDef{
			{Id: "a1", Type: "SEND_TELEGRAM", Config: map[string]any{"chatId": "42", "message": "one"}, Order: 1},
			{Id: "a2", Type: "SEND_TELEGRAM", Config: map[string]any{"chatId": "42", "message": "two"}, Order: 2},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-failed"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, model.EXECUTION_FAILED, records[0].Status)
	require.Contains(t, records[0].Error, ";")
}

func TestActionsRunInOrderWithFieldVisibility(t *testing.T) {
	eng, c, metadataService := newTestEngine(t)
	seedRecord(t, c, "obj-order", model.Record{Id: "rec-1", Data: map[string]any{"score": 10.0}})
	// declared out of order on purpose: execution must follow Order
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "ordered",
		ObjectId: "obj-order",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Actions: []model.ActionDef{
			{Id: "task", Type: "CREATE_TASK", Config: map[string]any{"title": "Score: {{record.score}}"}, Order: 2},
			{Id: "update", Type: "UPDATE_FIELD", Config: map[string]any{"field": "score", "value": "95"}, Order: 1},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-order"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	record := records[0]
	require.Equal(t, model.EXECUTION_SUCCESS, record.Status)
	require.Equal(t, "update", record.Results[0].ActionId)
	require.Equal(t, "task", record.Results[1].ActionId)

	taskId := record.Results[1].Result.(map[string]any)["taskId"].(string)
	task, err := c.GetTaskDao().Get(taskId)
	require.NoError(t, err)
	require.Equal(t, "Score: 95", task.Title)
}

func TestStableSortKeepsDeclarationOrderForEqualOrders(t *testing.T) {
	eng, c, metadataService := newTestEngine(t)
	seedRecord(t, c, "obj-stable", model.Record{Id: "rec-1", Data: map[string]any{}})
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "stable",
		ObjectId: "obj-stable",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Actions: []model.ActionDef{
			{Id: "first", Type: "UPDATE_FIELD", Config: map[string]any{"field": "flag", "value": "a"}, Order: 1},
			{Id: "second", Type: "UPDATE_FIELD", Config: map[string]any{"field": "flag", "value": "b"}, Order: 1},
		},
	})
	require.NoError(t, err)

	_, err = eng.ExecuteTrigger(triggerContext("obj-stable"))
	require.NoError(t, err)

	stored, err := c.GetRecordDao().Get("obj-stable", "rec-1")
	require.NoError(t, err)
	require.Equal(t, "b", stored.Data["flag"])
}

func TestUnknownActionTypeFailsThatActionOnly(t *testing.T) {
	eng, c, _ := newTestEngine(t)
	seedRecord(t, c, "obj-legacy", model.Record{Id: "rec-1", Data: map[string]any{}})
	// bypass validation: stored data predating a schema change
	err := c.GetWorkflowDao().Save(model.Rule{
		Id:       "legacy-rule",
		Name:     "legacy",
		ObjectId: "obj-legacy",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   true,
		Actions: []model.ActionDef{
			{Id: "a1", Type: "SEND_SMS", Config: map[string]any{"to": "123"}, Order: 1},
			{Id: "a2", Type: "UPDATE_FIELD", Config: map[string]any{"field": "status", "value": "seen"}, Order: 2},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-legacy"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, model.EXECUTION_PARTIAL, records[0].Status)
	require.False(t, records[0].Results[0].Success)
	require.Contains(t, records[0].Results[0].Error, "unknown action type")
	require.True(t, records[0].Results[1].Success)
}

func TestInactiveRulesAreNotConsidered(t *testing.T) {
	eng, _, metadataService := newTestEngine(t)
	_, err := metadataService.SaveRule(model.Rule{
		Name:     "inactive",
		ObjectId: "obj-inactive",
		Trigger:  model.TRIGGER_RECORD_CREATED,
		Active:   false,
		Actions: []model.ActionDef{
			{Id: "a1", Type: "CREATE_TASK", Config: map[string]any{"title": "x"}, Order: 1},
		},
	})
	require.NoError(t, err)

	records, err := eng.ExecuteTrigger(triggerContext("obj-inactive"))
	require.NoError(t, err)
	require.Empty(t, records)
}
