package model

import "time"

type ExecutionStatus string

const EXECUTION_SUCCESS ExecutionStatus = "SUCCESS"
const EXECUTION_PARTIAL ExecutionStatus = "PARTIAL"
const EXECUTION_FAILED ExecutionStatus = "FAILED"

const SKIP_MARKER string = "conditions not met"

// ActionResult is the per-action entry of an execution record. Result is an
// opaque value produced by the executor; Error is set only on failure.
type ActionResult struct {
	ActionId string `json:"actionId"`
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	Result   any    `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ExecutionRecord is the append-only audit entry written exactly once per
// rule evaluation, including skipped evaluations.
type ExecutionRecord struct {
	Id              string          `json:"id"`
	RuleId          string          `json:"ruleId"`
	RecordId        string          `json:"recordId"`
	Status          ExecutionStatus `json:"status"`
	Skipped         bool            `json:"skipped"`
	Message         string          `json:"message,omitempty"`
	ActionsExecuted int             `json:"actionsExecuted"`
	Results         []ActionResult  `json:"results,omitempty"`
	Error           string          `json:"error,omitempty"`
	DurationMillis  int64           `json:"durationMillis"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type Task struct {
	Id          string    `json:"id"`
	RecordId    string    `json:"recordId"`
	ObjectId    string    `json:"objectId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AssigneeId  string    `json:"assigneeId,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	DueDate     time.Time `json:"dueDate,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Notification struct {
	Id        string         `json:"id"`
	UserId    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
