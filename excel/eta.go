package excel

import (
	"fmt"
	"regexp"
	"time"
)

// ReplyOffsetDays is added to every extracted ETA to produce the reply-by
// date written into the report.
const ReplyOffsetDays = 7

// Matches carrier annotations like "ETA Rotterdam: 1/10/26; Boat Name:...".
// The location label is any run of non-colon characters after the ETA
// token; only the first occurrence in the text is considered.
var etaPattern = regexp.MustCompile(`ETA\s+[^:]+:\s*(\d{1,2}/\d{1,2}/\d{2,4})`)

// ExtractETAFromText pulls an ETA date out of free-text annotation and
// returns it shifted by the reply offset. ok is false when the text has no
// ETA token or the date token does not parse; callers then try the next
// candidate field.
func ExtractETAFromText(text string) (time.Time, bool) {
	match := etaPattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}

	date, err := parseShortDate(match[1])
	if err != nil {
		return time.Time{}, false
	}
	return date.AddDate(0, 0, ReplyOffsetDays), true
}

// ETAFromDate shifts a structured ETA date cell by the reply offset.
func ETAFromDate(d time.Time) time.Time {
	return d.AddDate(0, 0, ReplyOffsetDays)
}

func parseShortDate(s string) (time.Time, error) {
	if d, err := time.Parse("1/2/06", s); err == nil {
		return d, nil
	}
	if d, err := time.Parse("1/2/2006", s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// parseDateCell handles the formats a structured date cell comes back as
// from excelize, depending on how the producing tool styled it.
func parseDateCell(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "1/2/06", "1/2/2006", "01-02-06", "2006-01-02 15:04:05"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// FormatShortDate renders a date as M/D/YY without zero padding, the form
// the report's Reply column uses.
func FormatShortDate(d time.Time) string {
	return fmt.Sprintf("%d/%d/%02d", int(d.Month()), d.Day(), d.Year()%100)
}
