package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/engine"
	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
)

// ExecutionService is the inbound facade the CRUD layer calls once per
// domain event. Automation is best effort relative to the write that raised
// the trigger; callers should log and continue on error rather than roll
// back the primary operation.
type ExecutionService struct {
	container      *container.DIContainer
	workflowEngine *engine.WorkflowEngine
}

func NewExecutionService(container *container.DIContainer, workflowEngine *engine.WorkflowEngine) *ExecutionService {
	return &ExecutionService{
		container:      container,
		workflowEngine: workflowEngine,
	}
}

func (s *ExecutionService) ExecuteTrigger(ctx *model.TriggerContext) ([]model.ExecutionRecord, error) {
	if ctx == nil {
		return nil, fmt.Errorf("trigger context is required")
	}
	if _, err := model.ToTriggerType(string(ctx.Trigger)); err != nil {
		return nil, err
	}
	if ctx.Record.Data == nil && ctx.Record.Id != "" {
		if stored, err := s.container.GetRecordDao().Get(ctx.Object.Id, ctx.Record.Id); err == nil {
			ctx.Record.Data = stored.Data
		}
	}
	logger.Info("executing trigger",
		zap.String("trigger", string(ctx.Trigger)),
		zap.String("object", ctx.Object.Id),
		zap.String("record", ctx.Record.Id))
	return s.workflowEngine.ExecuteTrigger(ctx)
}

func (s *ExecutionService) GetExecutionsByRule(ruleId string, limit int64) ([]model.ExecutionRecord, error) {
	return s.container.GetExecutionDao().GetByRule(ruleId, limit)
}

func (s *ExecutionService) GetRecentExecutions(limit int64) ([]model.ExecutionRecord, error) {
	return s.container.GetExecutionDao().GetRecent(limit)
}
