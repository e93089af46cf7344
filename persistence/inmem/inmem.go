// Package inmem provides map-backed storage used by the memory storage-impl
// and by tests.
package inmem

import (
	"sync"
	"time"

	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
)

var _ persistence.WorkflowDao = new(InMemWorkflowDao)

type InMemWorkflowDao struct {
	mu        sync.Mutex
	rules     map[string]model.Rule
	variables map[string][]string
}

func NewInMemWorkflowDao() *InMemWorkflowDao {
	return &InMemWorkflowDao{
		rules:     make(map[string]model.Rule),
		variables: make(map[string][]string),
	}
}

func (dao *InMemWorkflowDao) Save(rule model.Rule) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.rules[rule.Id] = rule
	return nil
}

func (dao *InMemWorkflowDao) Get(id string) (*model.Rule, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	rule, ok := dao.rules[id]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "rule", Id: id}
	}
	return &rule, nil
}

func (dao *InMemWorkflowDao) Delete(id string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	delete(dao.rules, id)
	delete(dao.variables, id)
	return nil
}

func (dao *InMemWorkflowDao) GetByObjectAndTrigger(objectId string, trigger model.TriggerType) ([]model.Rule, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	rules := make([]model.Rule, 0)
	for _, rule := range dao.rules {
		if rule.Active && rule.ObjectId == objectId && rule.Trigger == trigger {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (dao *InMemWorkflowDao) SaveVariables(ruleId string, variables []string) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.variables[ruleId] = variables
	return nil
}

func (dao *InMemWorkflowDao) GetVariables(ruleId string) ([]string, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	variables, ok := dao.variables[ruleId]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "rule variables", Id: ruleId}
	}
	return variables, nil
}

var _ persistence.ExecutionDao = new(InMemExecutionDao)

type InMemExecutionDao struct {
	mu      sync.Mutex
	byRule  map[string][]model.ExecutionRecord
	recent  []model.ExecutionRecord
	maxSize int64
}

func NewInMemExecutionDao() *InMemExecutionDao {
	return &InMemExecutionDao{
		byRule:  make(map[string][]model.ExecutionRecord),
		maxSize: 1000,
	}
}

func (dao *InMemExecutionDao) Save(record model.ExecutionRecord) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.byRule[record.RuleId] = append(dao.byRule[record.RuleId], record)
	dao.recent = append(dao.recent, record)
	if int64(len(dao.recent)) > dao.maxSize {
		dao.recent = dao.recent[int64(len(dao.recent))-dao.maxSize:]
	}
	return nil
}

func (dao *InMemExecutionDao) GetByRule(ruleId string, limit int64) ([]model.ExecutionRecord, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	return tail(dao.byRule[ruleId], limit), nil
}

func (dao *InMemExecutionDao) GetRecent(limit int64) ([]model.ExecutionRecord, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	return tail(dao.recent, limit), nil
}

func tail(records []model.ExecutionRecord, limit int64) []model.ExecutionRecord {
	if limit > 0 && int64(len(records)) > limit {
		records = records[int64(len(records))-limit:]
	}
	out := make([]model.ExecutionRecord, len(records))
	copy(out, records)
	return out
}

var _ persistence.RecordDao = new(InMemRecordDao)

type InMemRecordDao struct {
	mu      sync.Mutex
	records map[string]map[string]model.Record
}

func NewInMemRecordDao() *InMemRecordDao {
	return &InMemRecordDao{records: make(map[string]map[string]model.Record)}
}

func (dao *InMemRecordDao) Save(objectId string, record model.Record) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	if dao.records[objectId] == nil {
		dao.records[objectId] = make(map[string]model.Record)
	}
	dao.records[objectId][record.Id] = record
	return nil
}

func (dao *InMemRecordDao) Get(objectId string, recordId string) (*model.Record, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	record, ok := dao.records[objectId][recordId]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "record", Id: recordId}
	}
	return &record, nil
}

func (dao *InMemRecordDao) UpdateField(objectId string, recordId string, field string, value any) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	record, ok := dao.records[objectId][recordId]
	if !ok {
		return persistence.NotFoundError{Kind: "record", Id: recordId}
	}
	if record.Data == nil {
		record.Data = make(map[string]any)
	}
	record.Data[field] = value
	record.UpdatedAt = time.Now()
	dao.records[objectId][recordId] = record
	return nil
}

var _ persistence.TaskDao = new(InMemTaskDao)

type InMemTaskDao struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func NewInMemTaskDao() *InMemTaskDao {
	return &InMemTaskDao{tasks: make(map[string]model.Task)}
}

func (dao *InMemTaskDao) Save(task model.Task) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.tasks[task.Id] = task
	return nil
}

func (dao *InMemTaskDao) Get(id string) (*model.Task, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	task, ok := dao.tasks[id]
	if !ok {
		return nil, persistence.NotFoundError{Kind: "task", Id: id}
	}
	return &task, nil
}

var _ persistence.NotificationDao = new(InMemNotificationDao)

type InMemNotificationDao struct {
	mu     sync.Mutex
	byUser map[string][]model.Notification
}

func NewInMemNotificationDao() *InMemNotificationDao {
	return &InMemNotificationDao{byUser: make(map[string][]model.Notification)}
}

func (dao *InMemNotificationDao) Save(notification model.Notification) error {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	dao.byUser[notification.UserId] = append(dao.byUser[notification.UserId], notification)
	return nil
}

func (dao *InMemNotificationDao) GetByUser(userId string, limit int64) ([]model.Notification, error) {
	dao.mu.Lock()
	defer dao.mu.Unlock()
	notifications := dao.byUser[userId]
	if limit > 0 && int64(len(notifications)) > limit {
		notifications = notifications[int64(len(notifications))-limit:]
	}
	out := make([]model.Notification, len(notifications))
	copy(out, notifications)
	return out, nil
}
