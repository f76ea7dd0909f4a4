package bureauparser

import (
	"strconv"
	"strings"

	"fjacquet/credit-report/internal/dateutils"
	"fjacquet/credit-report/internal/models"
)

// parseLeadingInt reads an optionally signed run of ASCII digits at the start
// of s, ignoring anything after it ("12abc" is 12, "abc" fails). Values that
// do not fit in an int64 fail.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func intOrZero(s string) int64 {
	v, _ := parseLeadingInt(s)
	return v
}

// countOrZero is intOrZero for summary counts and balances, which are never
// negative.
func countOrZero(s string) int64 {
	if v := intOrZero(s); v > 0 {
		return v
	}
	return 0
}

func parseScore(s string) *int {
	v, ok := parseLeadingInt(s)
	if !ok {
		return nil
	}
	return models.IntPtr(int(v))
}

// normalizeGender maps bureau gender codes: "1" is male, any other code is
// female, and no code is nil.
func normalizeGender(code string) *models.Gender {
	switch code {
	case "":
		return nil
	case "1":
		return models.GenderPtr(models.GenderMale)
	default:
		return models.GenderPtr(models.GenderFemale)
	}
}

func formatDateOfBirth(raw string) string {
	return dateutils.ExpandCompactDate(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
