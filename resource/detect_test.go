package resource

import (
	"strings"
	"testing"

	"dogctl/faults"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		document Document
		want     Kind
	}{
		{
			name:     "dashboard by layout_type",
			document: Document{"layout_type": "ordered", "title": "svc"},
			want:     KindDashboard,
		},
		{
			name:     "dashboard by widgets",
			document: Document{"widgets": []any{}},
			want:     KindDashboard,
		},
		{
			name:     "dashboard wins over monitor signals",
			document: Document{"widgets": []any{}, "query": "avg:system.cpu{*}"},
			want:     KindDashboard,
		},
		{
			name:     "dashboard wins over slo signals",
			document: Document{"layout_type": "free", "thresholds": []any{}, "type": "metric"},
			want:     KindDashboard,
		},
		{
			name:     "slo metric type",
			document: Document{"thresholds": []any{map[string]any{"timeframe": "30d"}}, "type": "metric"},
			want:     KindSLO,
		},
		{
			name:     "slo monitor type",
			document: Document{"thresholds": []any{}, "type": "monitor"},
			want:     KindSLO,
		},
		{
			name: "slo wins even with structured query object",
			document: Document{
				"thresholds": []any{},
				"type":       "metric",
				"query":      map[string]any{"numerator": "good", "denominator": "all"},
			},
			want: KindSLO,
		},
		{
			name:     "downtime by scope list",
			document: Document{"scope": []any{"env:prod"}, "message": "Maintenance window"},
			want:     KindDowntime,
		},
		{
			name:     "monitor by query",
			document: Document{"name": "CPU Alert", "type": "metric alert", "query": "avg:system.cpu{*} > 90"},
			want:     KindMonitor,
		},
		{
			name:     "string scope falls through to monitor",
			document: Document{"scope": "env:prod", "query": "avg:system.cpu{*}"},
			want:     KindMonitor,
		},
		{
			name:     "thresholds with alien type falls through to monitor",
			document: Document{"thresholds": []any{}, "type": "metric alert", "query": "q"},
			want:     KindMonitor,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := Detect(testCase.document)
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if got != testCase.want {
				t.Fatalf("Detect() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestDetectFailure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		document Document
	}{
		{name: "empty document", document: Document{}},
		{name: "no signals", document: Document{"name": "orphan"}},
		{name: "string scope without query", document: Document{"scope": "env:prod"}},
		{name: "thresholds without matching type", document: Document{"thresholds": []any{}, "type": "other"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := Detect(testCase.document)
			if err == nil {
				t.Fatalf("expected classification error")
			}
			if !faults.IsCategory(err, faults.ValidationError) {
				t.Fatalf("expected validation category, got %v", err)
			}
			if !strings.Contains(err.Error(), "Cannot detect resource type") {
				t.Fatalf("error must name the detection failure, got %q", err.Error())
			}
		})
	}
}
