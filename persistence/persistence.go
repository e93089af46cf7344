package persistence

import (
	"fmt"

	"github.com/arkcrm/automation/model"
)

type StorageLayerError struct {
	Message string
}

func (e StorageLayerError) Error() string {
	return fmt.Sprintf("storage layer error %s", e.Message)
}

type NotFoundError struct {
	Kind string
	Id   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Id)
}

// WorkflowDao stores rule definitions plus the read-only list of template
// variables each rule exposes to an editor UI.
type WorkflowDao interface {
	Save(rule model.Rule) error
	Get(id string) (*model.Rule, error)
	Delete(id string) error
	GetByObjectAndTrigger(objectId string, trigger model.TriggerType) ([]model.Rule, error)
	SaveVariables(ruleId string, variables []string) error
	GetVariables(ruleId string) ([]string, error)
}

// ExecutionDao is append-only; records are never mutated after Save.
type ExecutionDao interface {
	Save(record model.ExecutionRecord) error
	GetByRule(ruleId string, limit int64) ([]model.ExecutionRecord, error)
	GetRecent(limit int64) ([]model.ExecutionRecord, error)
}

// RecordDao is the record-store collaborator contract: read one, update one
// field by id. UpdateField relies on the store's per-write atomicity; there
// is no engine-level locking.
type RecordDao interface {
	Get(objectId string, recordId string) (*model.Record, error)
	UpdateField(objectId string, recordId string, field string, value any) error
}

type TaskDao interface {
	Save(task model.Task) error
	Get(id string) (*model.Task, error)
}

type NotificationDao interface {
	Save(notification model.Notification) error
	GetByUser(userId string, limit int64) ([]model.Notification, error)
}
