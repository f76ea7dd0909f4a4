// Package dateutils provides date helpers for bureau report fields.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts seen in bureau reports.
const (
	DateLayoutCompact = "20060102"
	DateLayoutISO     = "2006-01-02"
)

// ExpandCompactDate rewrites an 8-character YYYYMMDD value as YYYY-MM-DD.
// Any other value, including the empty string, is returned unchanged. The
// digits are not checked for being a valid calendar date.
func ExpandCompactDate(raw string) string {
	r := []rune(raw)
	if len(r) != len(DateLayoutCompact) {
		return raw
	}
	return string(r[0:4]) + "-" + string(r[4:6]) + "-" + string(r[6:8])
}

// ParseReportDate parses a bureau date in compact or ISO form.
func ParseReportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayoutCompact, DateLayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
