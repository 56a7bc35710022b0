package common

import (
	"strconv"
	"strings"
	"time"

	"dogctl/faults"
)

var relativeSpans = map[string]time.Duration{
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"12h": 12 * time.Hour,
	"24h": 24 * time.Hour,
	"2d":  48 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// ParseTimeSpec accepts "now", a relative span like "30m" or "7d"
// meaning that long ago, a unix timestamp, or an RFC 3339 datetime.
func ParseTimeSpec(spec string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(strings.ToLower(spec))
	if trimmed == "" || trimmed == "now" {
		return now, nil
	}

	if span, found := relativeSpans[trimmed]; found {
		return now.Add(-span), nil
	}
	if span, err := time.ParseDuration(trimmed); err == nil {
		return now.Add(-span), nil
	}
	if epoch, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.Unix(epoch, 0), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, strings.TrimSpace(spec)); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, faults.NewTypedError(faults.ValidationError, "invalid time specification: "+spec, nil).
		WithHint("use now, a relative span like 30m or 7d, a unix timestamp, or an ISO datetime")
}

// ParseUntil resolves an end-time spec into unix seconds; relative
// spans run into the future.
func ParseUntil(spec string) (int64, error) {
	now := time.Now()
	trimmed := strings.TrimSpace(strings.ToLower(spec))
	if span, found := relativeSpans[trimmed]; found {
		return now.Add(span).Unix(), nil
	}
	if span, err := time.ParseDuration(trimmed); err == nil {
		return now.Add(span).Unix(), nil
	}

	until, err := ParseTimeSpec(spec, now)
	if err != nil {
		return 0, err
	}
	if !until.After(now) {
		return 0, ValidationError("end time must be in the future: "+spec, nil)
	}
	return until.Unix(), nil
}

// ParseTimeRange resolves a from/to pair into unix seconds, rejecting
// inverted ranges.
func ParseTimeRange(fromSpec, toSpec string) (int64, int64, error) {
	now := time.Now()
	from, err := ParseTimeSpec(fromSpec, now)
	if err != nil {
		return 0, 0, err
	}
	to, err := ParseTimeSpec(toSpec, now)
	if err != nil {
		return 0, 0, err
	}
	if !from.Before(to) {
		return 0, 0, ValidationError("time range start must precede its end", nil)
	}
	return from.Unix(), to.Unix(), nil
}
