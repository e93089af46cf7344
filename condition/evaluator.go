package condition

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/resolver"
	"go.uber.org/zap"
)

// Evaluate folds the condition chain strictly left to right. The first
// condition seeds the accumulator; each later condition combines with it via
// its own Logic operator. There is no precedence and no grouping. An empty
// chain means the rule runs unconditionally.
func Evaluate(conditions []model.Condition, ctx *model.TriggerContext) bool {
	if len(conditions) == 0 {
		return true
	}
	res := resolver.New(ctx)
	result := evaluateOne(conditions[0], res)
	for _, cond := range conditions[1:] {
		if cond.Logic == model.LOGIC_OR {
			result = result || evaluateOne(cond, res)
		} else {
			result = result && evaluateOne(cond, res)
		}
	}
	return result
}

// evaluateOne never returns an error: a malformed condition or unknown
// operator evaluates to false so a broken rule stays silent instead of
// crashing the trigger path.
func evaluateOne(cond model.Condition, res *resolver.Resolver) bool {
	fieldValue, _ := res.Lookup(cond.Field)
	switch cond.Operator {
	case model.OP_EQUALS:
		return valueEquals(fieldValue, cond.Value)
	case model.OP_NOT_EQUALS:
		return !valueEquals(fieldValue, cond.Value)
	case model.OP_CONTAINS:
		return strings.Contains(lower(fieldValue), lower(cond.Value))
	case model.OP_NOT_CONTAINS:
		return !strings.Contains(lower(fieldValue), lower(cond.Value))
	case model.OP_STARTS_WITH:
		return strings.HasPrefix(lower(fieldValue), lower(cond.Value))
	case model.OP_ENDS_WITH:
		return strings.HasSuffix(lower(fieldValue), lower(cond.Value))
	case model.OP_GREATER_THAN:
		return compareNumeric(fieldValue, cond.Value, func(a, b float64) bool { return a > b })
	case model.OP_LESS_THAN:
		return compareNumeric(fieldValue, cond.Value, func(a, b float64) bool { return a < b })
	case model.OP_GREATER_OR_EQUAL:
		return compareNumeric(fieldValue, cond.Value, func(a, b float64) bool { return a >= b })
	case model.OP_LESS_OR_EQUAL:
		return compareNumeric(fieldValue, cond.Value, func(a, b float64) bool { return a <= b })
	case model.OP_IS_EMPTY:
		return isEmpty(fieldValue)
	case model.OP_IS_NOT_EMPTY:
		return !isEmpty(fieldValue)
	case model.OP_IN:
		return inList(fieldValue, cond.Value)
	case model.OP_NOT_IN:
		list, ok := cond.Value.([]any)
		if !ok {
			return false
		}
		return !contains(list, fieldValue)
	default:
		logger.Debug("unknown condition operator", zap.String("operator", string(cond.Operator)))
		return false
	}
}

// valueEquals compares with numeric widening so a stored 5 matches a decoded
// 5.0, but otherwise requires identical values.
func valueEquals(a, b any) bool {
	if af, aok := toNumber(a); aok {
		if bf, bok := toNumber(b); bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func lower(v any) string {
	if v == nil {
		return ""
	}
	return strings.ToLower(fmt.Sprintf("%v", v))
}

// compareNumeric treats a non-numeric operand as a failed comparison, not an
// error.
func compareNumeric(field any, value any, cmp func(a, b float64) bool) bool {
	a, ok := toNumber(field)
	if !ok {
		return false
	}
	b, ok := toNumber(value)
	if !ok {
		return false
	}
	return cmp(a, b)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

func inList(field any, value any) bool {
	list, ok := value.([]any)
	if !ok {
		return false
	}
	return contains(list, field)
}

func contains(list []any, v any) bool {
	for _, item := range list {
		if valueEquals(item, v) {
			return true
		}
	}
	return false
}
