package utils

import "time"

// Domain timestamps are stored as unix seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t int64) string {
	if t <= 0 {
		return ""
	}
	return FromUnixSeconds(t).Format(time.RFC3339)
}

func Int64Ptr(v int64) *int64 { return &v }
