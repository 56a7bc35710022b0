package common

import (
	"fmt"
	"sort"
	"strings"
)

// ParseTags splits a comma-separated tag list, deduplicates it, and
// returns the tags sorted.
func ParseTags(raw string) []string {
	seen := map[string]struct{}{}
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, found := seen[trimmed]; found {
			continue
		}
		seen[trimmed] = struct{}{}
		tags = append(tags, trimmed)
	}
	sort.Strings(tags)
	return tags
}

// FormatTags renders up to limit tags, summarizing the overflow as
// "+N more".
func FormatTags(tags []string, limit int) string {
	if len(tags) == 0 {
		return ""
	}
	if limit <= 0 || len(tags) <= limit {
		return strings.Join(tags, ", ")
	}
	return fmt.Sprintf("%s, +%d more", strings.Join(tags[:limit], ", "), len(tags)-limit)
}

// TagStrings extracts a []string from a decoded JSON tag list.
func TagStrings(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
