package action

import (
	"time"

	"github.com/google/uuid"

	"github.com/arkcrm/automation/model"
)

var _ Action = new(taskAction)

type taskAction struct {
	baseAction
}

func NewTaskAction(base baseAction) *taskAction {
	return &taskAction{baseAction: base}
}

func (a *taskAction) Validate() error {
	return requiredKey(a.config, "title", a.actType)
}

func (a *taskAction) Execute(ctx *model.TriggerContext) (any, error) {
	cfg := a.resolveConfig(ctx)
	title, err := requiredString(cfg, "title", a.actType)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	task := model.Task{
		Id:          uuid.New().String(),
		RecordId:    ctx.Record.Id,
		ObjectId:    ctx.Object.Id,
		Title:       title,
		Description: stringValue(cfg, "description"),
		AssigneeId:  stringValue(cfg, "assigneeId"),
		Priority:    stringValue(cfg, "priority"),
		CreatedBy:   ctx.User.Id,
		CreatedAt:   now,
	}
	if days, ok := numberValue(cfg, "dueInDays"); ok {
		task.DueDate = now.Add(time.Duration(days*24) * time.Hour)
	}
	if err := a.container.GetTaskDao().Save(task); err != nil {
		return nil, err
	}
	return map[string]any{"taskId": task.Id}, nil
}
