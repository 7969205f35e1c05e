package core

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NormalizeClock accepts "H:MM", "HH:MM" or "HH:MM:SS" and returns "HH:MM".
// An empty value stays empty.
func NormalizeClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(ClockLayout), nil
		}
	}
	if len(value) == 4 && value[1] == ':' {
		return NormalizeClock("0" + value)
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidClock, value)
}

// NormalizeSchedule canonicalises every clock field and checks each window.
// The shift may cross midnight (22:00-06:00); breaks may only do so inside an
// overnight shift. Optional windows must be given in full.
func NormalizeSchedule(s *Schedule) error {
	s.Name = strings.TrimSpace(s.Name)
	fields := []*string{&s.StartTime, &s.EndTime, &s.BreakfastStart, &s.BreakfastEnd, &s.LunchStart, &s.LunchEnd}
	for _, field := range fields {
		normalized, err := NormalizeClock(*field)
		if err != nil {
			return err
		}
		*field = normalized
	}
	if s.StartTime == "" || s.EndTime == "" {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidClock)
	}
	if s.ToleranceMinutes < 0 || s.ToleranceMinutes > MaxToleranceMinutes {
		return fmt.Errorf("tolerance must be between 0 and %d minutes", MaxToleranceMinutes)
	}

	overnight := s.Overnight()
	windows := []struct {
		name       string
		start, end string
		mayWrap    bool
	}{
		{"shift", s.StartTime, s.EndTime, true},
		{"breakfast", s.BreakfastStart, s.BreakfastEnd, overnight},
		{"lunch", s.LunchStart, s.LunchEnd, overnight},
	}
	for _, w := range windows {
		if w.start == "" && w.end == "" {
			continue
		}
		if w.start == "" || w.end == "" {
			return fmt.Errorf("%w: %s window needs both start and end", ErrInvalidWindow, w.name)
		}
		if w.end == w.start {
			return fmt.Errorf("%w: %s starts and ends at %s", ErrInvalidWindow, w.name, w.start)
		}
		// HH:MM strings compare in clock order.
		if w.end < w.start && !w.mayWrap {
			return fmt.Errorf("%w: %s ends before it starts", ErrInvalidWindow, w.name)
		}
	}
	return nil
}

// Overnight reports whether the shift ends on the day after it starts.
func (s Schedule) Overnight() bool {
	return s.EndTime != "" && s.StartTime != "" && s.EndTime < s.StartTime
}

// SortAreas de-duplicates and orders department names using Spanish collation,
// so "Área" sorts next to "Area" rather than after "Z".
func SortAreas(areas []string) []string {
	seen := make(map[string]struct{}, len(areas))
	out := make([]string, 0, len(areas))
	for _, area := range areas {
		area = strings.TrimSpace(area)
		if area == "" {
			continue
		}
		if _, ok := seen[area]; ok {
			continue
		}
		seen[area] = struct{}{}
		out = append(out, area)
	}
	collate.New(language.Spanish, collate.IgnoreCase).SortStrings(out)
	return out
}
