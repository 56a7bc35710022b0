package common

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "single", raw: "env:prod", want: []string{"env:prod"}},
		{name: "dedup and sort", raw: "team:sre, env:prod,team:sre", want: []string{"env:prod", "team:sre"}},
		{name: "blank entries skipped", raw: "a,,b, ", want: []string{"a", "b"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := ParseTags(testCase.raw); !reflect.DeepEqual(got, testCase.want) {
				t.Fatalf("ParseTags(%q) = %v, want %v", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	tags := []string{"a", "b", "c", "d", "e"}
	if got := FormatTags(tags, 3); got != "a, b, c, +2 more" {
		t.Fatalf("FormatTags() = %q", got)
	}
	if got := FormatTags(tags, 0); got != "a, b, c, d, e" {
		t.Fatalf("FormatTags() without limit = %q", got)
	}
	if got := FormatTags(nil, 3); got != "" {
		t.Fatalf("FormatTags(nil) = %q", got)
	}
}
