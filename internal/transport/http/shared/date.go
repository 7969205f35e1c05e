package shared

import (
	"net/http"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(DayLayout, value)
}

// DayKey normalises an optional date query value to YYYY-MM-DD in loc.
func DayKey(value string, loc *time.Location) (string, error) {
	parsed, err := ParseDate(value)
	if err != nil || parsed.IsZero() {
		return "", err
	}
	if loc != nil && len(value) > len(DayLayout) {
		parsed = parsed.In(loc)
	}
	return parsed.Format(DayLayout), nil
}

// DateRange reads the optional startDate and endDate query values as day
// keys in loc, recording issues on v.
func DateRange(v *Validator, r *http.Request, loc *time.Location) (string, string) {
	q := r.URL.Query()
	start, err := DayKey(strings.TrimSpace(q.Get("startDate")), loc)
	if err != nil {
		v.Add("startDate", "must be a valid date in YYYY-MM-DD format")
	}
	end, err := DayKey(strings.TrimSpace(q.Get("endDate")), loc)
	if err != nil {
		v.Add("endDate", "must be a valid date in YYYY-MM-DD format")
	}
	if start != "" && end != "" && end < start {
		v.Add("startDate", "must be on or before endDate")
		v.Add("endDate", "must be on or after startDate")
	}
	return start, end
}
