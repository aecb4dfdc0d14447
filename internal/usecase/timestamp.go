package usecase

import (
	"strings"
	"time"
)

// timestampLayout is ISO-8601 with ':' replaced by '.', fixed width in UTC,
// so string order of keys equals chronological order.
const timestampLayout = "2006-01-02T15.04.05.000Z"

const fullSuffix = "_full"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp reads a key segment written by FormatTimestamp, with or
// without the "_full" marker.
func ParseTimestamp(segment string) (ts time.Time, full bool, ok bool) {
	segment = strings.TrimSuffix(segment, "/")
	if strings.HasSuffix(segment, fullSuffix) {
		full = true
		segment = strings.TrimSuffix(segment, fullSuffix)
	}
	ts, err := time.Parse(timestampLayout, segment)
	if err != nil {
		return time.Time{}, false, false
	}
	return ts, full, true
}
