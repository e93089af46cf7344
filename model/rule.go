package model

import (
	"fmt"
	"strings"
	"time"
)

type TriggerType string

const TRIGGER_RECORD_CREATED TriggerType = "RECORD_CREATED"
const TRIGGER_RECORD_UPDATED TriggerType = "RECORD_UPDATED"
const TRIGGER_RECORD_DELETED TriggerType = "RECORD_DELETED"
const TRIGGER_FIELD_CHANGED TriggerType = "FIELD_CHANGED"
const TRIGGER_STAGE_CHANGED TriggerType = "STAGE_CHANGED"
const TRIGGER_TIME_BASED TriggerType = "TIME_BASED"

func ToTriggerType(tr string) (TriggerType, error) {
	switch TriggerType(strings.ToUpper(tr)) {
	case TRIGGER_RECORD_CREATED, TRIGGER_RECORD_UPDATED, TRIGGER_RECORD_DELETED,
		TRIGGER_FIELD_CHANGED, TRIGGER_STAGE_CHANGED, TRIGGER_TIME_BASED:
		return TriggerType(strings.ToUpper(tr)), nil
	}
	return "", fmt.Errorf("unknown trigger type %s", tr)
}

type LogicOperator string

const LOGIC_AND LogicOperator = "AND"
const LOGIC_OR LogicOperator = "OR"

type Operator string

const OP_EQUALS Operator = "equals"
const OP_NOT_EQUALS Operator = "not_equals"
const OP_CONTAINS Operator = "contains"
const OP_NOT_CONTAINS Operator = "not_contains"
const OP_STARTS_WITH Operator = "starts_with"
const OP_ENDS_WITH Operator = "ends_with"
const OP_GREATER_THAN Operator = "greater_than"
const OP_LESS_THAN Operator = "less_than"
const OP_GREATER_OR_EQUAL Operator = "greater_or_equal"
const OP_LESS_OR_EQUAL Operator = "less_or_equal"
const OP_IS_EMPTY Operator = "is_empty"
const OP_IS_NOT_EMPTY Operator = "is_not_empty"
const OP_IN Operator = "in"
const OP_NOT_IN Operator = "not_in"

func ToOperator(op string) (Operator, error) {
	switch Operator(strings.ToLower(op)) {
	case OP_EQUALS, OP_NOT_EQUALS, OP_CONTAINS, OP_NOT_CONTAINS, OP_STARTS_WITH,
		OP_ENDS_WITH, OP_GREATER_THAN, OP_LESS_THAN, OP_GREATER_OR_EQUAL,
		OP_LESS_OR_EQUAL, OP_IS_EMPTY, OP_IS_NOT_EMPTY, OP_IN, OP_NOT_IN:
		return Operator(strings.ToLower(op)), nil
	}
	return "", fmt.Errorf("unknown operator %s", op)
}

// Condition compares one resolved field against a value. Logic declares how
// the condition combines with the running result of the chain so far; it is
// ignored on the first condition.
type Condition struct {
	Field    string        `json:"field"`
	Operator Operator      `json:"operator"`
	Value    any           `json:"value"`
	Logic    LogicOperator `json:"logic,omitempty"`
}

// ActionDef is the stored wire form of an action. Type is kept open here so
// that rules persisted before a schema change still decode; conversion to a
// typed executor happens in the action package.
type ActionDef struct {
	Id     string         `json:"id"`
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Config map[string]any `json:"config"`
	Order  int            `json:"order"`
}

type Rule struct {
	Id         string      `json:"id"`
	ObjectId   string      `json:"objectId"`
	Name       string      `json:"name"`
	Trigger    TriggerType `json:"trigger"`
	Conditions []Condition `json:"conditions"`
	Actions    []ActionDef `json:"actions"`
	Active     bool        `json:"active"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
