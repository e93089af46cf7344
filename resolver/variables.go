package resolver

import (
	"strings"
	"time"

	"github.com/arkcrm/automation/model"
	"github.com/oliveagle/jsonpath"
)

// Lookup resolves a dot-path against the context: the curated flat variable
// map first, then a generic path walk. The record.* special case routes any
// multi-segment record path into the record's data payload, never into the
// record struct itself.
func (r *Resolver) Lookup(path string) (any, bool) {
	if value, ok := r.vars[path]; ok {
		return value, true
	}
	expr := path
	if rest := strings.TrimPrefix(path, "record."); rest != path {
		expr = "record.data." + rest
	}
	value, err := jsonpath.JsonPathLookup(r.ctxMap, "$."+expr)
	if err != nil || value == nil {
		return nil, false
	}
	return value, true
}

func buildVariables(ctx *model.TriggerContext) map[string]any {
	now := time.Now()
	vars := map[string]any{
		"record.id":          ctx.Record.Id,
		"record.owner_id":    ctx.Record.OwnerId,
		"record.created_at":  ctx.Record.CreatedAt.Format(time.RFC3339),
		"record.updated_at":  ctx.Record.UpdatedAt.Format(time.RFC3339),
		"object.id":          ctx.Object.Id,
		"object.name":        ctx.Object.Name,
		"object.displayName": ctx.Object.DisplayName,
		"user.id":            ctx.User.Id,
		"user.email":         ctx.User.Email,
		"user.name":          ctx.User.Name,
		"now":                now.Format(time.RFC3339),
		"now.date":           now.Format("2006-01-02"),
		"now.time":           now.Format("15:04:05"),
	}
	// data keys win over record struct fields of the same name
	for k, v := range ctx.Record.Data {
		vars["record."+k] = v
	}
	for field, change := range ctx.Changes {
		vars["changes."+field+".old"] = change.Old
		vars["changes."+field+".new"] = change.New
	}
	if ctx.Field != nil {
		vars["field.name"] = ctx.Field.Name
		vars["field.old"] = ctx.Field.Old
		vars["field.new"] = ctx.Field.New
	}
	if ctx.Stage != nil {
		vars["stage.old"] = ctx.Stage.Old
		vars["stage.new"] = ctx.Stage.New
	}
	return vars
}

func buildContextMap(ctx *model.TriggerContext) map[string]any {
	m := map[string]any{
		"trigger": string(ctx.Trigger),
		"record": map[string]any{
			"id":         ctx.Record.Id,
			"owner_id":   ctx.Record.OwnerId,
			"created_at": ctx.Record.CreatedAt.Format(time.RFC3339),
			"updated_at": ctx.Record.UpdatedAt.Format(time.RFC3339),
			"data":       ctx.Record.Data,
		},
		"object": map[string]any{
			"id":          ctx.Object.Id,
			"name":        ctx.Object.Name,
			"displayName": ctx.Object.DisplayName,
		},
		"user": map[string]any{
			"id":    ctx.User.Id,
			"email": ctx.User.Email,
			"name":  ctx.User.Name,
		},
	}
	if len(ctx.Changes) > 0 {
		changes := make(map[string]any, len(ctx.Changes))
		for field, change := range ctx.Changes {
			changes[field] = map[string]any{"old": change.Old, "new": change.New}
		}
		m["changes"] = changes
	}
	if ctx.Field != nil {
		m["field"] = map[string]any{"name": ctx.Field.Name, "old": ctx.Field.Old, "new": ctx.Field.New}
	}
	if ctx.Stage != nil {
		m["stage"] = map[string]any{"old": ctx.Stage.Old, "new": ctx.Stage.New}
	}
	return m
}
