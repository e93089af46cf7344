package resolver

import (
	"fmt"
	"strings"

	"github.com/arkcrm/automation/model"
)

// Resolver materializes {{path}} placeholders against a single trigger
// context. Build one per action dispatch so field mutations made by earlier
// actions are visible to later templates.
type Resolver struct {
	vars   map[string]any
	ctxMap map[string]any
}

func New(ctx *model.TriggerContext) *Resolver {
	return &Resolver{
		vars:   buildVariables(ctx),
		ctxMap: buildContextMap(ctx),
	}
}

type segmentKind int

const literalSegment segmentKind = 0
const placeholderSegment segmentKind = 1

type segment struct {
	kind segmentKind
	text string // literal text, or the raw token including braces
	path string // trimmed placeholder path
}

// parseTemplate splits s into a stream of literal and placeholder segments.
// A "{{" with no closing "}}" is treated as literal text.
func parseTemplate(s string) []segment {
	var segments []segment
	for len(s) > 0 {
		start := strings.Index(s, "{{")
		if start < 0 {
			segments = append(segments, segment{kind: literalSegment, text: s})
			break
		}
		end := strings.Index(s[start+2:], "}}")
		if end < 0 {
			segments = append(segments, segment{kind: literalSegment, text: s})
			break
		}
		if start > 0 {
			segments = append(segments, segment{kind: literalSegment, text: s[:start]})
		}
		raw := s[start : start+2+end+2]
		path := strings.TrimSpace(s[start+2 : start+2+end])
		segments = append(segments, segment{kind: placeholderSegment, text: raw, path: path})
		s = s[start+2+end+2:]
	}
	return segments
}

// ResolveString replaces every resolvable placeholder in s. Placeholders
// whose path yields no value are left verbatim, braces included, so a
// partially configured action stays inspectable.
func (r *Resolver) ResolveString(s string) string {
	segments := parseTemplate(s)
	if len(segments) == 1 && segments[0].kind == literalSegment {
		return s
	}
	var b strings.Builder
	for _, seg := range segments {
		if seg.kind == literalSegment {
			b.WriteString(seg.text)
			continue
		}
		value, ok := r.Lookup(seg.path)
		if !ok {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(fmt.Sprintf("%v", value))
	}
	return b.String()
}

// ResolveConfig walks a nested config map and resolves every string leaf.
// Non-string, non-container leaves pass through untouched.
func (r *Resolver) ResolveConfig(config map[string]any) map[string]any {
	output := make(map[string]any, len(config))
	for k, v := range config {
		output[k] = r.resolveValue(v)
	}
	return output
}

func (r *Resolver) resolveValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return r.ResolveConfig(value)
	case []any:
		output := make([]any, 0, len(value))
		for _, item := range value {
			output = append(output, r.resolveValue(item))
		}
		return output
	case string:
		return r.ResolveString(value)
	default:
		return v
	}
}
