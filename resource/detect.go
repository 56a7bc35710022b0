package resource

import "dogctl/faults"

// Kind is one of the four remote resource types manageable declaratively.
type Kind string

const (
	KindMonitor   Kind = "monitor"
	KindDashboard Kind = "dashboard"
	KindSLO       Kind = "slo"
	KindDowntime  Kind = "downtime"
)

func Kinds() []Kind {
	return []Kind{KindMonitor, KindDashboard, KindSLO, KindDowntime}
}

// Detect infers the resource kind from structural signals. The checks run in
// fixed priority order and the first match wins:
//
//  1. dashboard: "layout_type" or "widgets" key present
//  2. slo: "thresholds" key present and "type" is "metric" or "monitor"
//  3. downtime: "scope" value is an array
//  4. monitor: "query" key present
//
// A "scope" holding a string is not a downtime signal and falls through to
// the monitor check.
func Detect(document Document) (Kind, error) {
	if _, found := document["layout_type"]; found {
		return KindDashboard, nil
	}
	if _, found := document["widgets"]; found {
		return KindDashboard, nil
	}

	if _, found := document["thresholds"]; found {
		if sloType, isString := document["type"].(string); isString {
			if sloType == "metric" || sloType == "monitor" {
				return KindSLO, nil
			}
		}
	}

	if _, isList := document["scope"].([]any); isList {
		return KindDowntime, nil
	}

	if _, found := document["query"]; found {
		return KindMonitor, nil
	}

	return "", faults.NewTypedError(
		faults.ValidationError,
		"Cannot detect resource type from JSON structure",
		nil,
	)
}
