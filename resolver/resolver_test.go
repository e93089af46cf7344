package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arkcrm/automation/model"
)

func testContext() *model.TriggerContext {
	return &model.TriggerContext{
		Trigger: model.TRIGGER_RECORD_CREATED,
		Record: model.Record{
			Id:        "rec-1",
			OwnerId:   "owner-1",
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
			Data: map[string]any{
				"email":  "jane@example.com",
				"amount": 42.5,
				"address": map[string]any{
					"city": "Vilnius",
				},
			},
		},
		Object: model.ObjectRef{Id: "obj-1", Name: "deals", DisplayName: "Deals"},
		User:   model.UserRef{Id: "user-1", Email: "ops@example.com", Name: "Ops"},
	}
}

func TestResolveStringIdentityWithoutTokens(t *testing.T) {
	r := New(testContext())
	require.Equal(t, "plain text, no tokens", r.ResolveString("plain text, no tokens"))
}

func TestResolveStringUnresolvedTokenKeptVerbatim(t *testing.T) {
	r := New(testContext())
	require.Equal(t, "hello {{nope.path}}", r.ResolveString("hello {{nope.path}}"))
}

func TestResolveStringTrimsPlaceholderWhitespace(t *testing.T) {
	r := New(testContext())
	require.Equal(t, "jane@example.com", r.ResolveString("{{ record.email }}"))
}

func TestResolveStringMixedSegments(t *testing.T) {
	r := New(testContext())
	out := r.ResolveString("deal for {{record.email}} owned by {{user.name}}")
	require.Equal(t, "deal for jane@example.com owned by Ops", out)
}

func TestResolveStringUnterminatedTokenIsLiteral(t *testing.T) {
	r := New(testContext())
	require.Equal(t, "broken {{record.email", r.ResolveString("broken {{record.email"))
}

func TestRecordPathReadsDataPayloadOverStructField(t *testing.T) {
	ctx := testContext()
	ctx.Record.Data["id"] = "data-id"
	r := New(ctx)
	require.Equal(t, "data-id", r.ResolveString("{{record.id}}"))
}

func TestRecordPathFallsBackToNestedData(t *testing.T) {
	r := New(testContext())
	require.Equal(t, "Vilnius", r.ResolveString("{{record.address.city}}"))
}

func TestStageVariables(t *testing.T) {
	ctx := testContext()
	ctx.Trigger = model.TRIGGER_STAGE_CHANGED
	ctx.Stage = &model.StageChange{Old: "lead", New: "qualified"}
	r := New(ctx)
	out := r.ResolveString("Stage: {{stage.old}} -> {{stage.new}}")
	require.Equal(t, "Stage: lead -> qualified", out)
}

func TestChangesAndFieldVariables(t *testing.T) {
	ctx := testContext()
	ctx.Trigger = model.TRIGGER_RECORD_UPDATED
	ctx.Changes = map[string]model.FieldChange{
		"status": {Old: "open", New: "won"},
	}
	ctx.Field = &model.FieldRef{Name: "status", Old: "open", New: "won"}
	r := New(ctx)
	require.Equal(t, "open -> won", r.ResolveString("{{changes.status.old}} -> {{changes.status.new}}"))
	require.Equal(t, "status", r.ResolveString("{{field.name}}"))
}

func TestResolveConfigWalksNestedValues(t *testing.T) {
	r := New(testContext())
	config := map[string]any{
		"subject": "Deal {{record.id}}",
		"count":   3,
		"enabled": true,
		"nested": map[string]any{
			"city": "{{record.address.city}}",
		},
		"list": []any{"{{user.email}}", 7},
	}
	resolved := r.ResolveConfig(config)
	require.Equal(t, "Deal rec-1", resolved["subject"])
	require.Equal(t, 3, resolved["count"])
	require.Equal(t, true, resolved["enabled"])
	require.Equal(t, "Vilnius", resolved["nested"].(map[string]any)["city"])
	require.Equal(t, []any{"ops@example.com", 7}, resolved["list"])
}

func TestLookupCuratedBeforeGeneric(t *testing.T) {
	r := New(testContext())
	value, ok := r.Lookup("object.displayName")
	require.True(t, ok)
	require.Equal(t, "Deals", value)

	_, ok = r.Lookup("object.missing")
	require.False(t, ok)
}
