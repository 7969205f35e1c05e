package attendance

import (
	"fmt"
	"math"
	"time"
)

// NextStep maps the number of events already recorded today to the type and
// label of the next one. ok is false once the day is complete.
func NextStep(n int) (EventType, string, bool) {
	if n < 0 || n >= len(sequence) {
		return "", "", false
	}
	return sequence[n].Type, sequence[n].Label, true
}

func Label(t EventType) string {
	return labels[t]
}

func ValidType(t EventType) bool {
	_, ok := labels[t]
	return ok
}

// ClosesDay reports whether an event of type t ends the employee's day.
func ClosesDay(t EventType) bool {
	return t == TypeSalidaGeneral || t == TypeAutoCheckout
}

// DateKey is the calendar date of t in loc, as stored in the ledger.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// CooldownRemaining returns the whole seconds left before a scan at now is
// allowed, or zero when the cooldown has elapsed.
func CooldownRemaining(last, now time.Time) int {
	elapsed := now.Sub(last)
	if elapsed >= Cooldown {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return int(math.Ceil((Cooldown - elapsed).Seconds()))
}

// FormatWorked renders d as "{h}h {m}m", truncating seconds.
func FormatWorked(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// PastCutoff reports whether now is at or after the auto-checkout hour in loc.
func PastCutoff(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Hour() >= CutoffHour
}

// PendingCheckouts returns, in first-seen order, the employees whose events
// include an entrada but no closing event.
func PendingCheckouts(events []Event) []string {
	type state struct{ entered, closed bool }
	var order []string
	states := map[string]*state{}
	for _, ev := range events {
		st, ok := states[ev.EmployeeID]
		if !ok {
			st = &state{}
			states[ev.EmployeeID] = st
			order = append(order, ev.EmployeeID)
		}
		if ev.Type == TypeEntrada {
			st.entered = true
		}
		if ClosesDay(ev.Type) {
			st.closed = true
		}
	}

	var out []string
	for _, id := range order {
		if st := states[id]; st.entered && !st.closed {
			out = append(out, id)
		}
	}
	return out
}

// ComputeStats derives the daily counters from per-type event counts.
func ComputeStats(counts map[EventType]int) Stats {
	stats := Stats{
		CheckIns:  counts[TypeEntrada],
		CheckOuts: counts[TypeSalidaGeneral] + counts[TypeAutoCheckout],
	}
	if active := stats.CheckIns - stats.CheckOuts; active > 0 {
		stats.ActiveEmployees = active
	}
	return stats
}

// Message is the confirmation shown on the kiosk after a successful scan.
func Message(label string) string {
	return label + " exitosa"
}

// CooldownMessage is the kiosk text for a scan rejected by the cooldown.
func CooldownMessage(remaining int) string {
	return fmt.Sprintf("Por favor espera %d segundos antes de registrar nuevamente", remaining)
}

const DayCompleteMessage = "Ya se han completado todos los registros del día"
