package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arkcrm/automation/action"
	"github.com/arkcrm/automation/condition"
	"github.com/arkcrm/automation/container"
	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/metadata"
	"github.com/arkcrm/automation/model"
)

// WorkflowEngine orchestrates rule execution for one trigger at a time:
// lookup, condition gate, ordered action dispatch, outcome classification
// and the audit write.
type WorkflowEngine struct {
	container       *container.DIContainer
	metadataService metadata.MetadataService
}

func NewWorkflowEngine(container *container.DIContainer, metadataService metadata.MetadataService) *WorkflowEngine {
	return &WorkflowEngine{
		container:       container,
		metadataService: metadataService,
	}
}

// ExecuteTrigger evaluates every active rule registered for the context's
// object and trigger kind. No matching rules is a silent no-op. Exactly one
// execution record is persisted per rule; a failed audit write propagates to
// the caller with the records persisted so far.
func (e *WorkflowEngine) ExecuteTrigger(ctx *model.TriggerContext) ([]model.ExecutionRecord, error) {
	rules, err := e.metadataService.GetActiveRules(ctx.Object.Id, ctx.Trigger)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	records := make([]model.ExecutionRecord, 0, len(rules))
	for _, rule := range rules {
		record := e.executeRule(rule, ctx)
		if err := e.container.GetExecutionDao().Save(record); err != nil {
			logger.Error("error persisting execution record",
				zap.String("rule", rule.Id), zap.String("record", ctx.Record.Id), zap.Error(err))
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (e *WorkflowEngine) executeRule(rule model.Rule, ctx *model.TriggerContext) model.ExecutionRecord {
	start := time.Now()
	record := model.ExecutionRecord{
		Id:        uuid.New().String(),
		RuleId:    rule.Id,
		RecordId:  ctx.Record.Id,
		CreatedAt: start,
	}
	if !condition.Evaluate(rule.Conditions, ctx) {
		record.Status = model.EXECUTION_SUCCESS
		record.Skipped = true
		record.Message = model.SKIP_MARKER
		record.DurationMillis = time.Since(start).Milliseconds()
		logger.Debug("rule skipped", zap.String("rule", rule.Id), zap.String("record", ctx.Record.Id))
		return record
	}

	// stable sort keeps declaration order for equal order values
	defs := make([]model.ActionDef, len(rule.Actions))
	copy(defs, rule.Actions)
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Order < defs[j].Order })

	var failures []string
	for _, def := range defs {
		result := e.executeAction(def, ctx)
		record.Results = append(record.Results, result)
		if !result.Success {
			failures = append(failures, result.Error)
		}
	}
	record.ActionsExecuted = len(record.Results)
	switch {
	case len(failures) == 0:
		record.Status = model.EXECUTION_SUCCESS
	case len(failures) == len(record.Results):
		record.Status = model.EXECUTION_FAILED
	default:
		record.Status = model.EXECUTION_PARTIAL
	}
	record.Error = strings.Join(failures, "; ")
	record.DurationMillis = time.Since(start).Milliseconds()
	logger.Info("rule executed",
		zap.String("rule", rule.Id), zap.String("record", ctx.Record.Id),
		zap.String("status", string(record.Status)), zap.Int("actions", record.ActionsExecuted))
	return record
}

// executeAction isolates one dispatch: configuration errors, executor errors
// and panics all land in this action's result without touching its siblings.
func (e *WorkflowEngine) executeAction(def model.ActionDef, ctx *model.TriggerContext) (result model.ActionResult) {
	result = model.ActionResult{ActionId: def.Id, Type: def.Type}
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Result = nil
			result.Error = fmt.Sprintf("panic in action executor: %v", r)
			logger.Error("action executor panicked", zap.String("action", def.Id), zap.Any("panic", r))
		}
	}()
	act, err := action.FromDef(def, e.container)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	value, err := act.Execute(ctx)
	if err != nil {
		result.Error = err.Error()
		logger.Warn("action failed",
			zap.String("action", def.Id), zap.String("type", def.Type), zap.Error(err))
		return result
	}
	result.Success = true
	result.Result = value
	return result
}
