package util

import (
	"strconv"
	"time"
)

// unixMillisCutoff separates unix seconds from unix milliseconds (year 2286 in seconds).
const unixMillisCutoff = 1e11

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds or milliseconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseFloat(s, 64); err == nil {
		return ParseUnix(ts)
	}
	return time.Time{}, false
}

// ParseUnix reads a positive unix timestamp in seconds or milliseconds.
func ParseUnix(ts float64) (time.Time, bool) {
	if ts <= 0 || ts != ts {
		return time.Time{}, false
	}
	if ts >= unixMillisCutoff {
		return time.UnixMilli(int64(ts)), true
	}
	return time.Unix(int64(ts), 0), true
}

// ParseTimeValue accepts the shapes upstream JSON uses for timestamps.
func ParseTimeValue(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		return ParseTime(t)
	case float64:
		return ParseUnix(t)
	case int64:
		return ParseUnix(float64(t))
	case int:
		return ParseUnix(float64(t))
	}
	return time.Time{}, false
}
