package units

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical timestamp layout: UTC with milliseconds
const TimeLayout = "2006-01-02T15:04:05.000Z"

// blockchairLayout is used by Blockchair for every timestamp
const blockchairLayout = "2006-01-02 15:04:05"

// FormatTime renders t in the canonical layout
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// FromUnix renders a unix timestamp in seconds
func FromUnix(sec int64) string {
	return FormatTime(time.Unix(sec, 0))
}

// FromUnixMilli renders a unix timestamp in milliseconds
func FromUnixMilli(ms int64) string {
	return FormatTime(time.UnixMilli(ms))
}

// Now renders the current time. It is used for entities that have no
// timestamp of their own yet, such as mempool transactions.
func Now() string {
	return FormatTime(time.Now())
}

// ParseTime accepts RFC 3339 and Blockchair's "2006-01-02 15:04:05" (UTC)
// and renders the result in the canonical layout.
func ParseTime(s string) (string, error) {
	for _, layout := range []string{time.RFC3339Nano, blockchairLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FormatTime(t), nil
		}
	}
	return "", fmt.Errorf("unrecognised time %q", s)
}
