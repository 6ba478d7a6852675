package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const defaultPlainType = "Estimator"

// Describe returns a one-line representation of an estimator.
// Ensembles are described shallowly, listing member names only.
func Describe(est Estimator) string {
	if IsNil(est) {
		return "<nil>"
	}

	switch est := est.(type) {
	case *Plain:
		return plainType(est) + "(" + joinParams(est.Params, "=") + ")"
	case *Voting:
		return fmt.Sprintf("VotingEnsemble(estimators=%s, weights=%s)",
			FormatNames(est.Estimators), FormatWeights(est.Weights))
	case *Stacking:
		return fmt.Sprintf("StackingEnsemble(meta_learner=%s, base_learners=%s)",
			shortName(est.MetaLearner), FormatNames(est.BaseLearners))
	default:
		return "<nil>"
	}
}

// FormatParams renders a parameter mapping with keys in sorted order.
func FormatParams(params map[string]any) string {
	return "{" + joinParams(params, ": ") + "}"
}

// FormatNames renders member names as a list.
func FormatNames(members []Member) string {
	names := make([]string, len(members))
	for i, member := range members {
		names[i] = member.Name
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// FormatWeights renders weights with the shortest exact representation.
func FormatWeights(weights []float64) string {
	values := make([]string, len(weights))
	for i, weight := range weights {
		values[i] = strconv.FormatFloat(weight, 'g', -1, 64)
	}

	return "[" + strings.Join(values, ", ") + "]"
}

// IsNil reports whether est is nil or holds a nil pointer.
func IsNil(est Estimator) bool {
	switch est := est.(type) {
	case *Plain:
		return est == nil
	case *Voting:
		return est == nil
	case *Stacking:
		return est == nil
	default:
		return est == nil
	}
}

func plainType(est *Plain) string {
	if est.Type == "" {
		return defaultPlainType
	}

	return est.Type
}

func shortName(est Estimator) string {
	if IsNil(est) {
		return "<nil>"
	}

	switch est := est.(type) {
	case *Plain:
		return plainType(est)
	case *Voting:
		return "VotingEnsemble"
	case *Stacking:
		return "StackingEnsemble"
	default:
		return "<nil>"
	}
}

func joinParams(params map[string]any, sep string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + sep + formatValue(params[key])
	}

	return strings.Join(parts, ", ")
}

func formatValue(value any) string {
	switch value := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(value)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32)
	case map[string]any:
		return FormatParams(value)
	case []any:
		items := make([]string, len(value))
		for i, item := range value {
			items[i] = formatValue(item)
		}

		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(value)
	}
}
