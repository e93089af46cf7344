package model

import "time"

// Record is the CRM record a trigger fired for. Data carries the object's
// dynamically shaped field values keyed by field name.
type Record struct {
	Id        string         `json:"id"`
	OwnerId   string         `json:"ownerId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Data      map[string]any `json:"data"`
}

type ObjectRef struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type UserRef struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

type FieldRef struct {
	Name string `json:"name"`
	Old  any    `json:"old"`
	New  any    `json:"new"`
}

type StageChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// TriggerContext is built once per domain event and passed by reference
// through condition evaluation and action dispatch. Changes, Field and Stage
// are only present for the trigger kinds that produce them.
type TriggerContext struct {
	Trigger TriggerType            `json:"trigger"`
	Record  Record                 `json:"record"`
	Object  ObjectRef              `json:"object"`
	User    UserRef                `json:"user"`
	Changes map[string]FieldChange `json:"changes,omitempty"`
	Field   *FieldRef              `json:"field,omitempty"`
	Stage   *StageChange           `json:"stage,omitempty"`
}
