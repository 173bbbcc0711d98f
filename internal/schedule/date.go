package schedule

import (
	"strings"
	"time"
)

// Recognized calendar date layouts. Timestamp values are reduced to their
// date part before these are tried.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// NormalizeDate converts the textual date shapes seen in the store into a
// canonical calendar day at local midnight. It returns parsed == false when
// no recognized layout matched and the current date was used instead; the
// caller decides how to surface that, so conflict checks stay best-effort
// instead of failing hard on one bad row.
func NormalizeDate(raw string) (day time.Time, parsed bool) {
	s := strings.TrimSpace(raw)

	// Timestamps like "2024-06-10T00:00:00.000Z" carry the date up front.
	if datePart, _, found := strings.Cut(s, "T"); found {
		s = datePart
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return atMidnight(t), true
		}
	}

	return atMidnight(time.Now()), false
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
